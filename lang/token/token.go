package token

// Kind identifies the lexical category of a Token. The set is closed; see
// Token for the struct that pairs a Kind with its lexeme and position.
type Kind int8

//nolint:revive
const (
	ILLEGAL Kind = iota
	EOF

	// Tokens with values
	Symbol
	Integer
	Float
	Bool
	String
	Null

	Operator

	// Punctuation and sigils
	Assign     // <-
	Call       // @
	Function   // $
	LeftParen  // (
	RightParen // )
	LeftBrace  // {
	RightBrace // }
	LeftSquare // [
	RightSquare
	Dot       // .
	Colon     // :
	Separator // ,
	Newline

	// Keywords
	Return
	If
	Else
	Loop
	Include

	// Discarded by the lexer, never reach the parser; kept for
	// completeness with the closed token-kind enumeration in spec.md §4.1.
	Comment
	Whitespace

	maxKind
)

var kindNames = [...]string{
	ILLEGAL:     "illegal token",
	EOF:         "end of file",
	Symbol:      "symbol",
	Integer:     "integer literal",
	Float:       "float literal",
	Bool:        "bool literal",
	String:      "string literal",
	Null:        "null",
	Operator:    "operator",
	Assign:      "<-",
	Call:        "@",
	Function:    "$",
	LeftParen:   "(",
	RightParen:  ")",
	LeftBrace:   "{",
	RightBrace:  "}",
	LeftSquare:  "[",
	RightSquare: "]",
	Dot:         ".",
	Colon:       ":",
	Separator:   ",",
	Newline:     "newline",
	Return:      "return",
	If:          "if",
	Else:        "else",
	Loop:        "loop",
	Include:     "include",
	Comment:     "comment",
	Whitespace:  "whitespace",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown token kind"
}

// keywords maps reserved identifiers to their dedicated Kind, per spec.md
// §4.1: "true", "false", "null", "return", "if", "else", "loop", "include"
// map to their own kinds rather than Symbol.
var keywords = map[string]Kind{
	"null":    Null,
	"return":  Return,
	"if":      If,
	"else":    Else,
	"loop":    Loop,
	"include": Include,
}

// LookupIdent returns Bool for "true"/"false", the dedicated keyword Kind for
// other reserved words, and Symbol otherwise.
func LookupIdent(lit string) Kind {
	if lit == "true" || lit == "false" {
		return Bool
	}
	if k, ok := keywords[lit]; ok {
		return k
	}
	return Symbol
}

// Token is a single lexical token: its kind, the exact source text it was
// scanned from (the lexeme), and the frozen position of its first character.
type Token struct {
	Kind     Kind
	Lexeme   string
	Position Pos
}

func (t Token) String() string {
	if t.Lexeme != "" {
		return t.Lexeme
	}
	return t.Kind.String()
}
