package savefile

import (
	"bytes"
	"strconv"
)

// NodeKind discriminates the three structural variants of a Node.
type NodeKind int

const (
	KindScalar NodeKind = iota
	KindObject
	KindArray
)

func (k NodeKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Pair is one entry of an Object node. Keys repeat freely and entries keep
// their source order. A block element without a key (a positional value
// inside a keyed block) carries an empty Key.
type Pair struct {
	Key   string
	Value *Node
}

// Node is one element of a decoded save tree: a scalar leaf, an object of
// ordered key/value pairs, or an array of ordered elements.
type Node struct {
	kind   NodeKind
	value  string
	quoted bool
	pairs  []Pair
	elems  []*Node
	offset int
}

// Kind returns the structural variant of the node.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Offset returns the byte position in the source where the node started.
func (n *Node) Offset() int {
	return n.offset
}

// Value returns the raw text of a scalar, without surrounding quotes.
// It is empty for objects and arrays.
func (n *Node) Value() string {
	return n.value
}

// Quoted reports whether a scalar was written as a quoted string.
func (n *Node) Quoted() bool {
	return n.quoted
}

// Pairs returns the ordered entries of an object node.
func (n *Node) Pairs() []Pair {
	return n.pairs
}

// Elems returns the ordered elements of an array node.
func (n *Node) Elems() []*Node {
	return n.elems
}

// Get returns the value of the first pair with the given key, or nil if
// the key is absent or the node is not an object.
func (n *Node) Get(key string) *Node {
	for _, p := range n.pairs {
		if p.Key == key {
			return p.Value
		}
	}
	return nil
}

// GetAll returns the values of every pair with the given key, in source
// order. Duplicate keys are normal in save files.
func (n *Node) GetAll(key string) []*Node {
	var out []*Node
	for _, p := range n.pairs {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

// Has reports whether the object has at least one pair with the given key.
func (n *Node) Has(key string) bool {
	return n.Get(key) != nil
}

// Float converts a scalar value to a float64. The second return is false
// for non-scalars and non-numeric text.
func (n *Node) Float() (float64, bool) {
	if n.kind != KindScalar {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int converts a scalar value to an int64.
func (n *Node) Int() (int64, bool) {
	if n.kind != KindScalar {
		return 0, false
	}
	i, err := strconv.ParseInt(n.value, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Bool converts the save format's yes/no scalars.
func (n *Node) Bool() (bool, bool) {
	if n.kind != KindScalar {
		return false, false
	}
	switch n.value {
	case "yes":
		return true, true
	case "no":
		return false, true
	}
	return false, false
}

// Serialize renders the tree back to save-file text. The output is not
// byte-identical to the source, but decoding it again yields a tree that
// is Equal to this one.
func (n *Node) Serialize() []byte {
	var buf bytes.Buffer
	if n.kind == KindObject {
		for _, p := range n.pairs {
			writePair(&buf, p, 0)
			buf.WriteByte('\n')
		}
	} else {
		n.writeTo(&buf, 0)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func writePair(buf *bytes.Buffer, p Pair, indent int) {
	writeIndent(buf, indent)
	if p.Key != "" {
		writeBareOrQuoted(buf, p.Key, false)
		buf.WriteByte('=')
	}
	p.Value.writeTo(buf, indent)
}

func (n *Node) writeTo(buf *bytes.Buffer, indent int) {
	switch n.kind {
	case KindScalar:
		writeBareOrQuoted(buf, n.value, n.quoted)

	case KindArray:
		buf.WriteByte('{')
		for _, e := range n.elems {
			buf.WriteByte(' ')
			e.writeTo(buf, indent)
		}
		buf.WriteString(" }")

	case KindObject:
		if len(n.pairs) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for _, p := range n.pairs {
			writePair(buf, p, indent+1)
			buf.WriteByte('\n')
		}
		writeIndent(buf, indent)
		buf.WriteByte('}')
	}
}

func writeIndent(buf *bytes.Buffer, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteByte('\t')
	}
}

// writeBareOrQuoted quotes values that the lexer could not read back as a
// single bare token.
func writeBareOrQuoted(buf *bytes.Buffer, s string, quoted bool) {
	if quoted || needsQuotes(s) {
		buf.WriteByte('"')
		buf.WriteString(s)
		buf.WriteByte('"')
		return
	}
	buf.WriteString(s)
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); i++ {
		if isSpaceByte(s[i]) || isReservedByte(s[i]) {
			return true
		}
	}
	return false
}

// Equal reports structural equality of two trees: kinds, scalar values,
// keys, and ordering all match. Quoting and whitespace are ignored.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindScalar:
		return a.value == b.value
	case KindArray:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for i := range a.pairs {
			if a.pairs[i].Key != b.pairs[i].Key {
				return false
			}
			if !Equal(a.pairs[i].Value, b.pairs[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
