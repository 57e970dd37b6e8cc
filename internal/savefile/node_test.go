package savefile

import (
	"strings"
	"testing"
)

func TestNode_Conversions(t *testing.T) {
	root := decodeOrFatal(t, `
		stability=0.55
		power=150
		negative=-12.5
		allowed=no
		tag=GER
		block={ a=1 }
	`)

	if f, ok := root.Get("stability").Float(); !ok || f != 0.55 {
		t.Errorf("Float() = %v %v, want 0.55", f, ok)
	}
	if i, ok := root.Get("power").Int(); !ok || i != 150 {
		t.Errorf("Int() = %v %v, want 150", i, ok)
	}
	if f, ok := root.Get("negative").Float(); !ok || f != -12.5 {
		t.Errorf("Float() = %v %v, want -12.5", f, ok)
	}
	if b, ok := root.Get("allowed").Bool(); !ok || b {
		t.Errorf("Bool() = %v %v, want false", b, ok)
	}

	if _, ok := root.Get("tag").Float(); ok {
		t.Error("Float() on a word should not convert")
	}
	if _, ok := root.Get("tag").Bool(); ok {
		t.Error("Bool() on a non yes/no word should not convert")
	}
	if _, ok := root.Get("block").Float(); ok {
		t.Error("Float() on an object should not convert")
	}
	if f, ok := root.Get("stability").Int(); ok {
		t.Errorf("Int() on a fraction = %v, want no conversion", f)
	}
}

func TestNode_MissingKeys(t *testing.T) {
	root := decodeOrFatal(t, "a=1")

	if root.Get("missing") != nil {
		t.Error("Get() on a missing key should be nil")
	}
	if root.Has("missing") {
		t.Error("Has() on a missing key should be false")
	}
	if all := root.GetAll("missing"); len(all) != 0 {
		t.Errorf("GetAll() on a missing key returned %d values", len(all))
	}
}

func TestNode_OffsetsPointIntoSource(t *testing.T) {
	input := "a={ b=1 }"
	root := decodeOrFatal(t, input)

	block := root.Get("a")
	if block.Offset() != 2 {
		t.Errorf("block offset = %d, want 2", block.Offset())
	}
	if got := block.Get("b").Offset(); got != 6 {
		t.Errorf("scalar offset = %d, want 6", got)
	}
}

func TestNode_QuotedFlag(t *testing.T) {
	root := decodeOrFatal(t, "tag=GER name=\"Germany\"")

	if root.Get("tag").Quoted() {
		t.Error("bare scalar reported as quoted")
	}
	if !root.Get("name").Quoted() {
		t.Error("quoted scalar reported as bare")
	}
}

func TestEqual_IgnoresQuoting(t *testing.T) {
	a := decodeOrFatal(t, "x=yes")
	b := decodeOrFatal(t, "x=\"yes\"")

	if !Equal(a, b) {
		t.Error("trees differing only in quoting should be equal")
	}
}

func TestEqual_OrderMatters(t *testing.T) {
	a := decodeOrFatal(t, "x=1 y=2")
	b := decodeOrFatal(t, "y=2 x=1")

	if Equal(a, b) {
		t.Error("trees with reordered pairs should not be equal")
	}
}

func TestEqual_KindMatters(t *testing.T) {
	a := decodeOrFatal(t, "x={ 1 2 }")
	b := decodeOrFatal(t, "x={ a=1 b=2 }")

	if Equal(a, b) {
		t.Error("array and object should not be equal")
	}
}

func TestSerialize_QuotesValuesThatNeedIt(t *testing.T) {
	root := decodeOrFatal(t, "name=\"New York\"")

	out := string(root.Serialize())
	if !strings.Contains(out, "\"New York\"") {
		t.Errorf("Serialize() = %q, want the spaced value quoted", out)
	}

	reparsed, err := Decode([]byte(out))
	if err != nil {
		t.Fatalf("Decode(Serialize()) error = %v", err)
	}
	if got := reparsed.Get("name").Value(); got != "New York" {
		t.Errorf("round trip value = %q, want %q", got, "New York")
	}
}
