package savefile

import "fmt"

// MalformedEncodingError reports bytes that are not valid text where text
// is expected. Offset is the position of the first offending byte.
type MalformedEncodingError struct {
	Offset int
	Byte   byte
}

func (e *MalformedEncodingError) Error() string {
	return fmt.Sprintf("malformed encoding: invalid byte 0x%02x at offset %d", e.Byte, e.Offset)
}

// UnterminatedStringError reports a quoted string with no closing quote
// before end of input. Offset is the position of the opening quote.
type UnterminatedStringError struct {
	Offset int
}

func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("unterminated string starting at offset %d", e.Offset)
}

// UnbalancedBracesError reports a brace without a match. Offset is the
// position of the unmatched brace; for a missing closing brace it points
// at the opening brace left dangling.
type UnbalancedBracesError struct {
	Offset int
	Brace  byte
}

func (e *UnbalancedBracesError) Error() string {
	return fmt.Sprintf("unbalanced braces: unmatched '%c' at offset %d", e.Brace, e.Offset)
}

// DepthExceededError reports nesting past the configured safety limit.
type DepthExceededError struct {
	Offset int
	Limit  int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("nesting depth exceeds limit %d at offset %d", e.Limit, e.Offset)
}

// SyntaxError reports a token that cannot start or continue an entry,
// such as a stray '=' with no key before it.
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Message)
}

// SchemaMismatchError reports a field whose value does not convert to the
// shape the schema declares. The value is never silently coerced.
type SchemaMismatchError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch on field %q: expected %s, found %s", e.Field, e.Expected, e.Actual)
}
