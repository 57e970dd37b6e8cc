package savefile

// TokenType represents the lexical class of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdentifier
	TokenString
	TokenNumber
	TokenDate
	TokenEquals
	TokenOpenBrace
	TokenCloseBrace
)

// String returns a readable name for the token type
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdentifier:
		return "identifier"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenDate:
		return "date"
	case TokenEquals:
		return "equals"
	case TokenOpenBrace:
		return "open brace"
	case TokenCloseBrace:
		return "close brace"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit of a save file. Value holds the raw text
// without surrounding quotes; Offset is the byte position of the token's
// first byte in the input (the opening quote for strings).
type Token struct {
	Type   TokenType
	Value  string
	Offset int
}
