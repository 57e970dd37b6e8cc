package savefile

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// NormalizeEncoding returns save text as UTF-8. A UTF-8 byte order mark is
// stripped, and input that is not valid UTF-8 is transcoded from
// Windows-1252, which older game builds wrote on disk.
func NormalizeEncoding(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		offset, b := firstInvalidByte(data)
		return nil, &MalformedEncodingError{Offset: offset, Byte: b}
	}
	return decoded, nil
}

func firstInvalidByte(data []byte) (int, byte) {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i, data[i]
		}
		i += size
	}
	return len(data), 0
}
