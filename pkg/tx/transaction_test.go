package tx

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/Meridian-tech/meridian-pay/pkg/crypto"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

func TestBodyBytes_Layout(t *testing.T) {
	built := NewBuilder().
		SetNetwork(types.Testnet).
		AddInput(testOutpoint(7, 3)).
		AddOutput(testAddr(9), 12345).
		SetTTL(99).
		SetMetadata([]byte("abc")).
		Build()

	body := built.BodyBytes()
	wantLen := 1 + 4 + 36 + 4 + 48 + 8 + 4 + 3
	if len(body) != wantLen {
		t.Fatalf("body length %d, want %d", len(body), wantLen)
	}
	if body[0] != byte(types.Testnet) {
		t.Errorf("network byte = %d, want %d", body[0], types.Testnet)
	}
	if n := binary.LittleEndian.Uint32(body[1:5]); n != 1 {
		t.Errorf("input count = %d, want 1", n)
	}
	if idx := binary.LittleEndian.Uint32(body[37:41]); idx != 3 {
		t.Errorf("input index = %d, want 3", idx)
	}
	if string(body[len(body)-3:]) != "abc" {
		t.Errorf("metadata tail = %q", body[len(body)-3:])
	}
}

func TestID_IgnoresWitnesses(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	defer key.Zero()

	builder := NewBuilder().
		SetNetwork(types.Mainnet).
		AddInput(testOutpoint(1, 0)).
		AddOutput(testAddr(2), 500)
	unsignedID := builder.Build().ID()

	if err := builder.Sign(key); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	signed := builder.Build()
	if signed.ID() != unsignedID {
		t.Error("id changed after signing")
	}
	if len(signed.Bytes()) <= len(signed.BodyBytes()) {
		t.Error("full serialization does not extend the body")
	}
}

func TestID_CoversNetwork(t *testing.T) {
	mainnet := NewBuilder().SetNetwork(types.Mainnet).AddOutput(testAddr(1), 0).Build()
	testnet := NewBuilder().SetNetwork(types.Testnet).AddOutput(testAddr(1), 0).Build()
	if mainnet.ID() == testnet.ID() {
		t.Error("id identical across networks")
	}
}

func TestSign_OneWitnessPerInput(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	defer key.Zero()

	builder := NewBuilder().
		AddInput(testOutpoint(1, 0)).
		AddInput(testOutpoint(2, 1)).
		AddInput(testOutpoint(3, 2)).
		AddOutput(testAddr(4), 100)
	if err := builder.Sign(key); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	built := builder.Build()
	if len(built.Witnesses) != len(built.Inputs) {
		t.Fatalf("%d witnesses for %d inputs", len(built.Witnesses), len(built.Inputs))
	}

	id := built.ID()
	for i, w := range built.Witnesses {
		if !crypto.VerifySignature(id[:], w.Signature, w.PubKey) {
			t.Errorf("witness %d does not verify", i)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := NewBuilder().
		AddInput(testOutpoint(1, 0)).
		AddOutput(testAddr(2), 100).
		Build()
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	noInputs := NewBuilder().AddOutput(testAddr(1), 0).Build()
	if err := noInputs.Validate(); !errors.Is(err, ErrNoInputs) {
		t.Errorf("no inputs: err = %v", err)
	}

	noOutputs := NewBuilder().AddInput(testOutpoint(1, 0)).Build()
	if err := noOutputs.Validate(); !errors.Is(err, ErrNoOutputs) {
		t.Errorf("no outputs: err = %v", err)
	}

	dup := NewBuilder().
		AddInput(testOutpoint(1, 0)).
		AddInput(testOutpoint(1, 0)).
		AddOutput(testAddr(2), 100).
		Build()
	if err := dup.Validate(); !errors.Is(err, ErrDuplicateInput) {
		t.Errorf("duplicate input: err = %v", err)
	}

	mismatched := NewBuilder().
		AddInput(testOutpoint(1, 0)).
		AddInput(testOutpoint(2, 0)).
		AddOutput(testAddr(3), 100).
		Build()
	mismatched.Witnesses = []Witness{{PubKey: []byte{1}, Signature: []byte{2}}}
	if err := mismatched.Validate(); err == nil {
		t.Error("witness/input mismatch: expected error, got nil")
	}
}

func TestTotalOutputValue(t *testing.T) {
	built := NewBuilder().
		AddOutput(testAddr(1), 100).
		AddOutput(testAddr(2), 250).
		Build()
	total, err := built.TotalOutputValue()
	if err != nil {
		t.Fatalf("TotalOutputValue: %v", err)
	}
	if total != 350 {
		t.Errorf("total = %s, want 350", total)
	}

	overflow := NewBuilder().
		AddOutput(testAddr(1), types.MaxCoin).
		AddOutput(testAddr(2), 1).
		Build()
	if _, err := overflow.TotalOutputValue(); err == nil {
		t.Error("expected overflow error, got nil")
	}
}
