package types

import (
	"strings"
	"testing"
)

func TestOutpointRoundtrip(t *testing.T) {
	op := Outpoint{TxID: Hash{0xDE, 0xAD}, Index: 7}
	s := op.String()
	if !strings.HasSuffix(s, "#7") {
		t.Fatalf("String() = %q", s)
	}

	parsed, err := ParseOutpoint(s)
	if err != nil {
		t.Fatalf("ParseOutpoint(%q): %v", s, err)
	}
	if parsed != op {
		t.Errorf("parsed = %v, want %v", parsed, op)
	}
}

func TestParseOutpoint_Invalid(t *testing.T) {
	zero := Hash{}
	tests := []string{
		"",
		"deadbeef",
		zero.String() + "#",
		zero.String() + "#-1",
		zero.String() + "#4294967296",
		"nothex#0",
		zero.String()[:10] + "#0",
	}
	for _, in := range tests {
		if _, err := ParseOutpoint(in); err == nil {
			t.Errorf("ParseOutpoint(%q) succeeded", in)
		}
	}
}
