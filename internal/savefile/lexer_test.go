package savefile

import (
	"errors"
	"testing"
)

func TestLexer_TokenSequence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "keyed scalar",
			input: "player=\"GER\"",
			want: []Token{
				{Type: TokenIdentifier, Value: "player"},
				{Type: TokenEquals, Value: "="},
				{Type: TokenString, Value: "GER"},
			},
		},
		{
			name:  "numbers keep sign and fraction",
			input: "stability=-0.5 political_power=150",
			want: []Token{
				{Type: TokenIdentifier, Value: "stability"},
				{Type: TokenEquals, Value: "="},
				{Type: TokenNumber, Value: "-0.5"},
				{Type: TokenIdentifier, Value: "political_power"},
				{Type: TokenEquals, Value: "="},
				{Type: TokenNumber, Value: "150"},
			},
		},
		{
			name:  "date literals",
			input: "date=1936.1.1 session=1936.1.1.12",
			want: []Token{
				{Type: TokenIdentifier, Value: "date"},
				{Type: TokenEquals, Value: "="},
				{Type: TokenDate, Value: "1936.1.1"},
				{Type: TokenIdentifier, Value: "session"},
				{Type: TokenEquals, Value: "="},
				{Type: TokenDate, Value: "1936.1.1.12"},
			},
		},
		{
			name:  "two dotted numeric parts stay a number",
			input: "1936.1",
			want: []Token{
				{Type: TokenNumber, Value: "1936.1"},
			},
		},
		{
			name:  "dotted words stay identifiers",
			input: "ger.1 news.23",
			want: []Token{
				{Type: TokenIdentifier, Value: "ger.1"},
				{Type: TokenIdentifier, Value: "news.23"},
			},
		},
		{
			name:  "braces around elements",
			input: "ideas={ great_depression volunteer_only }",
			want: []Token{
				{Type: TokenIdentifier, Value: "ideas"},
				{Type: TokenEquals, Value: "="},
				{Type: TokenOpenBrace, Value: "{"},
				{Type: TokenIdentifier, Value: "great_depression"},
				{Type: TokenIdentifier, Value: "volunteer_only"},
				{Type: TokenCloseBrace, Value: "}"},
			},
		},
		{
			name:  "comments run to end of line",
			input: "a=1 # b=2\nc=3",
			want: []Token{
				{Type: TokenIdentifier, Value: "a"},
				{Type: TokenEquals, Value: "="},
				{Type: TokenNumber, Value: "1"},
				{Type: TokenIdentifier, Value: "c"},
				{Type: TokenEquals, Value: "="},
				{Type: TokenNumber, Value: "3"},
			},
		},
		{
			name:  "quoted text keeps spaces and punctuation",
			input: "name=\"New York #1\"",
			want: []Token{
				{Type: TokenIdentifier, Value: "name"},
				{Type: TokenEquals, Value: "="},
				{Type: TokenString, Value: "New York #1"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "comment only",
			input: "# nothing here\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewLexer([]byte(tt.input)).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if tokens[len(tokens)-1].Type != TokenEOF {
				t.Fatalf("last token = %v, want EOF", tokens[len(tokens)-1].Type)
			}
			tokens = tokens[:len(tokens)-1]
			if len(tokens) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.want), tokens)
			}
			for i, want := range tt.want {
				if tokens[i].Type != want.Type || tokens[i].Value != want.Value {
					t.Errorf("token %d = {%v %q}, want {%v %q}",
						i, tokens[i].Type, tokens[i].Value, want.Type, want.Value)
				}
			}
		})
	}
}

func TestLexer_Offsets(t *testing.T) {
	input := "tag=GER # comment\nname=\"New York\""
	tokens, err := NewLexer([]byte(input)).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	wantOffsets := []struct {
		value  string
		offset int
	}{
		{"tag", 0},
		{"=", 3},
		{"GER", 4},
		{"name", 18},
		{"=", 22},
		{"New York", 23}, // offset of the opening quote
	}
	for i, want := range wantOffsets {
		if tokens[i].Value != want.value || tokens[i].Offset != want.offset {
			t.Errorf("token %d = {%q at %d}, want {%q at %d}",
				i, tokens[i].Value, tokens[i].Offset, want.value, want.offset)
		}
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	_, err := NewLexer([]byte("a=1 name=\"no closing quote")).Tokenize()

	var unterminated *UnterminatedStringError
	if !errors.As(err, &unterminated) {
		t.Fatalf("Tokenize() error = %v, want UnterminatedStringError", err)
	}
	if unterminated.Offset != 9 {
		t.Errorf("Offset = %d, want 9 (the opening quote)", unterminated.Offset)
	}
}

func TestLexer_MalformedBytes(t *testing.T) {
	tests := []struct {
		name       string
		input      []byte
		wantOffset int
	}{
		{
			name:       "invalid UTF-8 in bare word",
			input:      []byte{'t', 'a', 'g', '=', 0xff, 0xfe},
			wantOffset: 4,
		},
		{
			name:       "control byte in string",
			input:      []byte("name=\"a\x00b\""),
			wantOffset: 7,
		},
		{
			name:       "stray control byte",
			input:      []byte("a=1 \x01"),
			wantOffset: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input).Tokenize()

			var malformed *MalformedEncodingError
			if !errors.As(err, &malformed) {
				t.Fatalf("Tokenize() error = %v, want MalformedEncodingError", err)
			}
			if malformed.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", malformed.Offset, tt.wantOffset)
			}
		})
	}
}

func TestLexer_NextIsLazyAndRestartable(t *testing.T) {
	lexer := NewLexer([]byte("a=1"))

	first, err := lexer.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if first.Value != "a" {
		t.Fatalf("Next() = %q, want %q", first.Value, "a")
	}

	lexer.Reset()
	again, err := lexer.Next()
	if err != nil {
		t.Fatalf("Next() after Reset error = %v", err)
	}
	if again != first {
		t.Errorf("Next() after Reset = %+v, want %+v", again, first)
	}

	// draining past the end keeps returning EOF
	for i := 0; i < 5; i++ {
		tok, err := lexer.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if i >= 3 && tok.Type != TokenEOF {
			t.Errorf("Next() after end = %v, want EOF", tok.Type)
		}
	}
}
