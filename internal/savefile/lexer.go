package savefile

import (
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes raw save bytes into a lazy token stream. The same input
// can be re-tokenized from scratch with Reset.
type Lexer struct {
	data []byte
	pos  int
}

// NewLexer creates a lexer over raw save bytes. The lexer never mutates
// or copies the input.
func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data}
}

// Reset rewinds the lexer to the start of the input
func (l *Lexer) Reset() {
	l.pos = 0
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.data)
}

// skipWhitespace skips whitespace and # comments, which are not emitted
func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch l.data[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		case '#':
			for !l.atEnd() && l.data[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// Next returns the next token, advancing the lexer. At end of input it
// returns a token of type TokenEOF.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	if l.atEnd() {
		return Token{Type: TokenEOF, Offset: l.pos}, nil
	}

	switch b := l.data[l.pos]; b {
	case '=':
		tok := Token{Type: TokenEquals, Value: "=", Offset: l.pos}
		l.pos++
		return tok, nil

	case '{':
		tok := Token{Type: TokenOpenBrace, Value: "{", Offset: l.pos}
		l.pos++
		return tok, nil

	case '}':
		tok := Token{Type: TokenCloseBrace, Value: "}", Offset: l.pos}
		l.pos++
		return tok, nil

	case '"':
		return l.readString()

	default:
		return l.readBare()
	}
}

// Tokenize consumes the remaining input and returns all tokens, ending
// with a TokenEOF entry.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// readString reads a quoted string. Quotes cannot be escaped in the save
// format; the next '"' always terminates the string.
func (l *Lexer) readString() (Token, error) {
	start := l.pos
	l.pos++ // opening quote

	var sb strings.Builder
	for !l.atEnd() {
		b := l.data[l.pos]
		if b == '"' {
			l.pos++
			return Token{Type: TokenString, Value: sb.String(), Offset: start}, nil
		}
		if b < 0x80 {
			if b < 0x20 && b != '\t' {
				return Token{}, &MalformedEncodingError{Offset: l.pos, Byte: b}
			}
			sb.WriteByte(b)
			l.pos++
			continue
		}
		r, size := utf8.DecodeRune(l.data[l.pos:])
		if r == utf8.RuneError && size == 1 {
			return Token{}, &MalformedEncodingError{Offset: l.pos, Byte: b}
		}
		sb.Write(l.data[l.pos : l.pos+size])
		l.pos += size
	}

	return Token{}, &UnterminatedStringError{Offset: start}
}

// readBare reads an unquoted token, ending at whitespace or punctuation,
// then classifies it as a date, number, or identifier.
func (l *Lexer) readBare() (Token, error) {
	start := l.pos
	for !l.atEnd() {
		b := l.data[l.pos]
		if isSpaceByte(b) || isReservedByte(b) {
			break
		}
		if b < 0x80 {
			if b < 0x20 {
				return Token{}, &MalformedEncodingError{Offset: l.pos, Byte: b}
			}
			l.pos++
			continue
		}
		r, size := utf8.DecodeRune(l.data[l.pos:])
		if r == utf8.RuneError && size == 1 {
			return Token{}, &MalformedEncodingError{Offset: l.pos, Byte: b}
		}
		l.pos += size
	}

	value := string(l.data[start:l.pos])
	return Token{Type: classifyBare(value), Value: value, Offset: start}, nil
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func isReservedByte(b byte) bool {
	switch b {
	case '=', '{', '}', '"', '#':
		return true
	}
	return false
}

func classifyBare(s string) TokenType {
	if isDateLiteral(s) {
		return TokenDate
	}
	if isNumberLiteral(s) {
		return TokenNumber
	}
	return TokenIdentifier
}

// isNumberLiteral accepts integers and decimals with an optional sign
func isNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i++
	}
	digits, dots := 0, 0
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// isDateLiteral accepts game date literals: y.m.d with an optional
// trailing hour part (y.m.d.h)
func isDateLiteral(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 && len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for i := 0; i < len(p); i++ {
			if p[i] < '0' || p[i] > '9' {
				return false
			}
		}
	}
	return true
}
