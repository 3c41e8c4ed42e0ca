// Package calculator implements the four-function calculator that tile presses drive.
//
// The calculator evaluates eagerly, left to right, one pending operation at a time.
// Apply is a pure function: callers own the State value and decide what to do with
// the result (record history, notify observers, persist).
package calculator

// ParseSymbol validates a single input token
func ParseSymbol(input string) (Symbol, error) {
	if len(input) != 1 {
		return Symbol{}, &SymbolError{Input: input}
	}

	c := input[0]
	switch {
	case c >= '0' && c <= '9':
		return Symbol{Kind: SymbolDigit, Text: input}, nil
	case Operator(input).Valid():
		return Symbol{Kind: SymbolOperator, Text: input}, nil
	case Command(input) == CmdEquals:
		return Symbol{Kind: SymbolEquals, Text: input}, nil
	case Command(input) == CmdClear:
		return Symbol{Kind: SymbolClear, Text: input}, nil
	}

	return Symbol{}, &SymbolError{Input: input}
}

// MustSymbol parses a token and panics on failure. Intended for constants and tests.
func MustSymbol(input string) Symbol {
	sym, err := ParseSymbol(input)
	if err != nil {
		panic(err)
	}
	return sym
}

// Apply returns the state that follows s after input sym.
// The boolean is false only for no-op transitions, which must not be recorded in history.
func Apply(s State, sym Symbol) (State, bool) {
	switch sym.Kind {
	case SymbolClear:
		return Initial(), true
	case SymbolEquals:
		return applyEquals(s)
	case SymbolOperator:
		return applyOperator(s, sym.Operator()), true
	case SymbolDigit:
		return applyDigit(s, sym.Text), true
	}
	return s, false
}

func applyEquals(s State) (State, bool) {
	pending, ok := s.Pending.Get()
	if !ok {
		return s, false
	}

	return State{
		Display:             Evaluate(pending.Left, s.Display, pending.Op),
		Pending:             None[Operation](),
		WaitingForNewNumber: true,
	}, true
}

func applyOperator(s State, op Operator) State {
	// Chain: fold the pending operation before starting the next one
	if pending, ok := s.Pending.Get(); ok && !s.WaitingForNewNumber {
		result := Evaluate(pending.Left, s.Display, pending.Op)
		return State{
			Display:             result + " " + string(op),
			Pending:             Some(Operation{Left: result, Op: op}),
			WaitingForNewNumber: true,
		}
	}

	return State{
		Display:             s.Display + " " + string(op),
		Pending:             Some(Operation{Left: s.Display, Op: op}),
		WaitingForNewNumber: true,
	}
}

func applyDigit(s State, digit string) State {
	next := s
	switch {
	case s.WaitingForNewNumber:
		next.Display = digit
		next.WaitingForNewNumber = false
	case s.Display == "0":
		next.Display = digit
	default:
		next.Display = s.Display + digit
	}
	return next
}
