package savefile

import "unicode/utf8"

// Section is one top-level entry of a save file located by its raw byte
// span, so callers can copy or drop whole blocks without building a tree.
type Section struct {
	Name  string
	Start int // first byte of the name
	End   int // one past the last byte of the value
}

// ScanSections locates every top-level section of a save by brace counting.
// Strings and comments are skipped, so braces inside them do not count.
// The scan shares the decoder's error taxonomy but touches only block
// boundaries, which keeps it cheap enough for whole-directory sweeps.
func ScanSections(data []byte) ([]Section, error) {
	var sections []Section
	pos := 0

	for {
		pos = skipInert(data, pos)
		if pos >= len(data) {
			return sections, nil
		}

		if data[pos] == '}' {
			return nil, &UnbalancedBracesError{Offset: pos, Brace: '}'}
		}
		if data[pos] == '=' {
			return nil, &SyntaxError{Offset: pos, Message: "'=' with no key before it"}
		}

		start := pos
		name, next, err := readSectionName(data, pos)
		if err != nil {
			return nil, err
		}
		pos = next

		pos = skipInert(data, pos)
		if pos < len(data) && data[pos] == '=' {
			pos = skipInert(data, pos+1)
			end, err := skipValue(data, pos)
			if err != nil {
				return nil, err
			}
			pos = end
		}

		sections = append(sections, Section{Name: name, Start: start, End: pos})
	}
}

// Removal records one block dropped by StripSections.
type Removal struct {
	Name   string
	Offset int // first byte of the name
	Size   int // bytes removed, name through closing brace
}

// StripSections drops every block assigned to one of names, at any
// nesting depth, and returns the shrunken copy plus a record of what
// went. Spans are located with the same string and comment aware
// scanning as ScanSections, so braces inside quotes never unbalance
// the walk. Scalar assignments under a listed name are left alone:
// only block values are heavy enough to be worth stripping.
func StripSections(data []byte, names []string) ([]byte, []Removal, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}

	var removals []Removal
	pos := 0
	for pos < len(data) {
		pos = skipInert(data, pos)
		if pos >= len(data) {
			break
		}
		switch data[pos] {
		case '{', '}':
			pos++
		case '=':
			pos++
		case '"':
			end, err := skipString(data, pos)
			if err != nil {
				return nil, nil, err
			}
			pos = end
		default:
			start := pos
			name, next, err := readSectionName(data, pos)
			if err != nil {
				return nil, nil, err
			}
			pos = skipInert(data, next)
			if pos >= len(data) || data[pos] != '=' {
				continue
			}
			pos = skipInert(data, pos+1)
			if pos < len(data) && data[pos] == '{' && drop[name] {
				end, err := skipBlock(data, pos)
				if err != nil {
					return nil, nil, err
				}
				removals = append(removals, Removal{Name: name, Offset: start, Size: end - start})
				pos = end
			}
		}
	}

	if len(removals) == 0 {
		return data, nil, nil
	}

	out := make([]byte, 0, len(data))
	prev := 0
	for _, r := range removals {
		out = append(out, data[prev:r.Offset]...)
		prev = r.Offset + r.Size
	}
	out = append(out, data[prev:]...)
	return out, removals, nil
}

// skipInert advances past whitespace and comments.
func skipInert(data []byte, pos int) int {
	for pos < len(data) {
		switch data[pos] {
		case ' ', '\t', '\r', '\n':
			pos++
		case '#':
			for pos < len(data) && data[pos] != '\n' {
				pos++
			}
		default:
			return pos
		}
	}
	return pos
}

func readSectionName(data []byte, pos int) (string, int, error) {
	if data[pos] == '"' {
		end, err := skipString(data, pos)
		if err != nil {
			return "", 0, err
		}
		return string(data[pos+1 : end-1]), end, nil
	}
	if data[pos] == '{' {
		// a keyless top-level block has no name
		end, err := skipBlock(data, pos)
		return "", end, err
	}

	start := pos
	for pos < len(data) && !isSpaceByte(data[pos]) && !isReservedByte(data[pos]) {
		if data[pos] < 0x20 {
			return "", 0, &MalformedEncodingError{Offset: pos, Byte: data[pos]}
		}
		pos++
	}
	return string(data[start:pos]), pos, nil
}

// skipValue advances past one value: a block, a string, or a bare word.
func skipValue(data []byte, pos int) (int, error) {
	if pos >= len(data) {
		return 0, &SyntaxError{Offset: pos, Message: "expected a value, found end of input"}
	}
	switch data[pos] {
	case '{':
		return skipBlock(data, pos)
	case '"':
		return skipString(data, pos)
	case '}', '=':
		return 0, &SyntaxError{Offset: pos, Message: "expected a value, found '" + string(data[pos]) + "'"}
	default:
		for pos < len(data) && !isSpaceByte(data[pos]) && !isReservedByte(data[pos]) {
			pos++
		}
		return pos, nil
	}
}

// skipBlock advances from an opening brace to just past its match.
func skipBlock(data []byte, pos int) (int, error) {
	open := pos
	depth := 0
	for pos < len(data) {
		switch data[pos] {
		case '{':
			depth++
			pos++
		case '}':
			depth--
			pos++
			if depth == 0 {
				return pos, nil
			}
		case '"':
			end, err := skipString(data, pos)
			if err != nil {
				return 0, err
			}
			pos = end
		case '#':
			for pos < len(data) && data[pos] != '\n' {
				pos++
			}
		default:
			pos++
		}
	}
	return 0, &UnbalancedBracesError{Offset: open, Brace: '{'}
}

// skipString advances from an opening quote to just past the closing one.
func skipString(data []byte, pos int) (int, error) {
	open := pos
	pos++
	for pos < len(data) {
		if data[pos] == '"' {
			return pos + 1, nil
		}
		if data[pos] < 0x80 {
			pos++
			continue
		}
		_, size := utf8.DecodeRune(data[pos:])
		pos += size
	}
	return 0, &UnterminatedStringError{Offset: open}
}
