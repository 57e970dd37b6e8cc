package savefile

// DefaultMaxDepth bounds nesting so that hostile or corrupted input cannot
// exhaust the stack.
const DefaultMaxDepth = 512

// Builder consumes a token sequence and produces the root node of the
// structural tree.
type Builder struct {
	tokens   []Token
	pos      int
	maxDepth int
}

// NewBuilder creates a builder over a token sequence, normally the output
// of Lexer.Tokenize.
func NewBuilder(tokens []Token) *Builder {
	return &Builder{tokens: tokens, maxDepth: DefaultMaxDepth}
}

// SetMaxDepth overrides the default nesting limit. Limits below one are
// ignored.
func (b *Builder) SetMaxDepth(limit int) {
	if limit > 0 {
		b.maxDepth = limit
	}
}

func (b *Builder) current() Token {
	if b.pos < len(b.tokens) {
		return b.tokens[b.pos]
	}
	if n := len(b.tokens); n > 0 {
		last := b.tokens[n-1]
		return Token{Type: TokenEOF, Offset: last.Offset + len(last.Value)}
	}
	return Token{Type: TokenEOF}
}

func (b *Builder) peek() Token {
	if b.pos+1 < len(b.tokens) {
		return b.tokens[b.pos+1]
	}
	return Token{Type: TokenEOF}
}

func (b *Builder) advance() {
	b.pos++
}

// Build parses the whole token sequence. The top level of a save is a
// sequence of entries, returned as an object node.
func (b *Builder) Build() (*Node, error) {
	root := &Node{kind: KindObject}
	if err := b.parseBody(root, 0, 0, true); err != nil {
		return nil, err
	}
	return root, nil
}

// parseBody fills node with entries until the block closes. At top level
// the block closes at end of input; a '}' there is unmatched. Inside a
// block it closes at '}'; end of input there means the '{' at openOffset
// was never matched.
func (b *Builder) parseBody(node *Node, depth, openOffset int, atTop bool) error {
	keyed, bare := 0, 0
	for {
		tok := b.current()
		switch tok.Type {
		case TokenEOF:
			if !atTop {
				return &UnbalancedBracesError{Offset: openOffset, Brace: '{'}
			}
			return nil

		case TokenCloseBrace:
			if atTop {
				return &UnbalancedBracesError{Offset: tok.Offset, Brace: '}'}
			}
			b.advance()
			b.finishBlock(node, keyed, bare)
			return nil

		case TokenOpenBrace:
			child, err := b.parseBlock(depth + 1)
			if err != nil {
				return err
			}
			node.pairs = append(node.pairs, Pair{Value: child})
			bare++

		case TokenEquals:
			return &SyntaxError{Offset: tok.Offset, Message: "'=' with no key before it"}

		default:
			if b.peek().Type == TokenEquals {
				key := tok
				b.advance()
				b.advance()
				val, err := b.parseValue(depth)
				if err != nil {
					return err
				}
				node.pairs = append(node.pairs, Pair{Key: key.Value, Value: val})
				keyed++
			} else {
				node.pairs = append(node.pairs, Pair{Value: scalarNode(tok)})
				b.advance()
				bare++
			}
		}
	}
}

func (b *Builder) parseValue(depth int) (*Node, error) {
	tok := b.current()
	switch tok.Type {
	case TokenOpenBrace:
		return b.parseBlock(depth + 1)
	case TokenIdentifier, TokenString, TokenNumber, TokenDate:
		b.advance()
		return scalarNode(tok), nil
	case TokenEOF:
		return nil, &SyntaxError{Offset: tok.Offset, Message: "expected a value, found end of input"}
	default:
		return nil, &SyntaxError{Offset: tok.Offset, Message: "expected a value, found " + tok.Type.String()}
	}
}

func (b *Builder) parseBlock(depth int) (*Node, error) {
	open := b.current()
	if depth > b.maxDepth {
		return nil, &DepthExceededError{Offset: open.Offset, Limit: b.maxDepth}
	}
	b.advance()

	node := &Node{kind: KindObject, offset: open.Offset}
	if err := b.parseBody(node, depth, open.Offset, false); err != nil {
		return nil, err
	}
	return node, nil
}

// finishBlock classifies a closed block. A block with no keyed entries and
// at least one bare element is an array; everything else, including the
// empty block, stays an object. Mixed blocks stay objects with empty keys
// on the bare elements.
func (b *Builder) finishBlock(node *Node, keyed, bare int) {
	if keyed > 0 || bare == 0 {
		return
	}
	node.kind = KindArray
	node.elems = make([]*Node, 0, len(node.pairs))
	for _, p := range node.pairs {
		node.elems = append(node.elems, p.Value)
	}
	node.pairs = nil
}

func scalarNode(tok Token) *Node {
	return &Node{
		kind:   KindScalar,
		value:  tok.Value,
		quoted: tok.Type == TokenString,
		offset: tok.Offset,
	}
}

// Decode tokenizes and builds in one step with the default depth limit.
func Decode(data []byte) (*Node, error) {
	tokens, err := NewLexer(data).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewBuilder(tokens).Build()
}

// DecodeWithDepth is Decode with an explicit nesting limit.
func DecodeWithDepth(data []byte, maxDepth int) (*Node, error) {
	tokens, err := NewLexer(data).Tokenize()
	if err != nil {
		return nil, err
	}
	builder := NewBuilder(tokens)
	builder.SetMaxDepth(maxDepth)
	return builder.Build()
}
