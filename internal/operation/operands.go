package op

var (
	_           Operand
	OpenParen   = openParen{}
	ClosedParen = closeParen{}
	Add         = add{}
	Sub         = sub{}
	Mult        = mult{}
	Div         = div{}
	Mod         = mod{}
	Pow         = pow{}
	Neg         = neg{}
	Equals      = equals{}
)

// Operands lists every symbol the tokenizer accepts. Neg shares its symbol
// with Sub and is resolved by the parser, so it is left out.
var Operands = []Operand{OpenParen, ClosedParen, Add, Sub, Mult, Div, Mod, Pow, Equals}

// Precedence levels used by the recursive-descent parser.
const (
	RelationPriority = iota
	AdditivePriority
	MultiplicativePriority
	ExponentPriority
	PrefixPriority
)

var OperationPriority = map[Operand]int{
	OpenParen:   RelationPriority,
	ClosedParen: RelationPriority,
	Equals:      RelationPriority,
	Add:         AdditivePriority,
	Sub:         AdditivePriority,
	Mult:        MultiplicativePriority,
	Div:         MultiplicativePriority,
	Mod:         MultiplicativePriority,
	Pow:         ExponentPriority,
	Neg:         PrefixPriority,
}

// Lookup returns the tokenizer-level operand for symbol.
func Lookup(symbol string) (Operand, bool) {
	for _, o := range Operands {
		if o.Symbol() == symbol {
			return o, true
		}
	}
	return nil, false
}

// Binary returns the binary operand for symbol, if any.
func Binary(symbol string) (BinaryOperand, bool) {
	o, ok := Lookup(symbol)
	if !ok {
		return nil, false
	}
	b, ok := o.(BinaryOperand)
	return b, ok
}

// Prefix returns the prefix operand for symbol, if any.
func Prefix(symbol string) (PrefixOperand, bool) {
	if symbol == Neg.Symbol() {
		return Neg, true
	}
	return nil, false
}

// Priority reports the binary precedence of symbol, or -1 when symbol is
// not a binary operator.
func Priority(symbol string) int {
	b, ok := Binary(symbol)
	if !ok {
		return -1
	}
	return OperationPriority[b]
}
