package calculator

// Operator is one of the four arithmetic operators a tile can carry
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
)

// Valid reports whether the operator is one of + - * /
func (o Operator) Valid() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	default:
		return false
	}
}

// Command is a non-arithmetic input
type Command string

const (
	CmdEquals Command = "="
	CmdClear  Command = "C"
)

// SymbolKind classifies a parsed input token
type SymbolKind int

const (
	SymbolDigit SymbolKind = iota
	SymbolOperator
	SymbolEquals
	SymbolClear
)

// String returns the kind name
func (k SymbolKind) String() string {
	switch k {
	case SymbolDigit:
		return "digit"
	case SymbolOperator:
		return "operator"
	case SymbolEquals:
		return "equals"
	case SymbolClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Symbol is a single validated input token
type Symbol struct {
	Kind SymbolKind
	Text string
}

// String returns the token text
func (s Symbol) String() string {
	return s.Text
}

// Operator returns the symbol as an operator. Only meaningful for SymbolOperator.
func (s Symbol) Operator() Operator {
	return Operator(s.Text)
}

// Option holds a value that may be absent
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty option
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present
func (o Option[T]) IsSome() bool {
	return o.ok
}

// Operation is a pending operator together with its recorded left operand
type Operation struct {
	Left string
	Op   Operator
}

// State is the calculator display state.
// State values are comparable; two states are equal iff every field matches.
type State struct {
	Display             string
	Pending             Option[Operation]
	WaitingForNewNumber bool
}

// Initial returns the power-on state
func Initial() State {
	return State{Display: "0"}
}

// PreviousValue returns the recorded left operand, if an operation is pending
func (s State) PreviousValue() (string, bool) {
	op, ok := s.Pending.Get()
	return op.Left, ok
}

// CurrentOperation returns the pending operator, if any
func (s State) CurrentOperation() (Operator, bool) {
	op, ok := s.Pending.Get()
	return op.Op, ok
}
