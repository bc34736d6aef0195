package lexer

// Kind classifies a Token
type Kind int

const (
	// Invalid is the zero value and is never produced by Tokenize
	Invalid Kind = iota
	// Variable is a sigil-prefixed or bare identifier
	Variable
	// Operator is an assignment, comma or arithmetic operator
	Operator
	// HashStart opens a hash literal ("{")
	HashStart
	// HashEnd closes a hash literal ("}")
	HashEnd
	// Newline terminates a statement
	Newline
	// Unit is a number with an optional unit or percent sign
	Unit
	// Color is a hex color
	Color
	// String is a quoted string, quotes included
	String
)

var kindNames = [...]string{
	Invalid:   "INVALID",
	Variable:  "VARIABLE",
	Operator:  "OPERATOR",
	HashStart: "HASH_START",
	HashEnd:   "HASH_END",
	Newline:   "NEWLINE",
	Unit:      "UNIT",
	Color:     "COLOR",
	String:    "STRING",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "INVALID"
	}
	return kindNames[k]
}

// Token is a lexical unit. Positions are not retained.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	if t.Kind == Newline {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + t.Text + ")"
}
