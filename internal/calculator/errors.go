package calculator

import (
	"errors"
	"fmt"
)

// ErrUnknownSymbol is returned for input outside 0-9 + - * / = C
var ErrUnknownSymbol = errors.New("unknown symbol")

// ErrorDisplay is shown instead of a result when dividing by zero
const ErrorDisplay = "Error"

// SymbolError reports an input token that could not be parsed
type SymbolError struct {
	Input string
}

// Error implements the error interface
func (e *SymbolError) Error() string {
	return fmt.Sprintf("%s: %q (expected 0-9, +, -, *, /, = or C)", ErrUnknownSymbol, e.Input)
}

// Unwrap allows errors.Is(err, ErrUnknownSymbol)
func (e *SymbolError) Unwrap() error {
	return ErrUnknownSymbol
}
