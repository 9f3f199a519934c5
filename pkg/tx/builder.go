package tx

import (
	"fmt"

	"github.com/Meridian-tech/meridian-pay/pkg/crypto"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

// Builder constructs transactions incrementally. Build returns the candidate
// unsigned; Sign attaches one key witness per input.
type Builder struct {
	tx *Transaction
}

// NewBuilder creates a new transaction builder.
func NewBuilder() *Builder {
	return &Builder{tx: &Transaction{}}
}

// SetNetwork tags the transaction with the network it is intended for.
func (b *Builder) SetNetwork(network types.Network) *Builder {
	b.tx.Network = network
	return b
}

// AddInput adds an input referencing a previous output.
func (b *Builder) AddInput(prevOut types.Outpoint) *Builder {
	b.tx.Inputs = append(b.tx.Inputs, Input{PrevOut: prevOut})
	return b
}

// AddOutput adds an output paying value to addr.
func (b *Builder) AddOutput(addr types.Address, value types.Coin) *Builder {
	b.tx.Outputs = append(b.tx.Outputs, Output{Address: addr, Value: value})
	return b
}

// SetTTL sets the last slot the transaction is valid in.
func (b *Builder) SetTTL(ttl uint64) *Builder {
	b.tx.TTL = ttl
	return b
}

// SetMetadata attaches an opaque metadata payload. The payload's size is
// part of the serialized transaction and therefore of its fee.
func (b *Builder) SetMetadata(metadata []byte) *Builder {
	b.tx.Metadata = metadata
	return b
}

// Sign appends one witness per input, all from the same key
// (single-key spending).
func (b *Builder) Sign(key crypto.Signer) error {
	id := b.tx.ID()
	sig, err := key.Sign(id[:])
	if err != nil {
		return fmt.Errorf("sign tx: %w", err)
	}
	pubKey := key.PublicKey()
	b.tx.Witnesses = b.tx.Witnesses[:0]
	for range b.tx.Inputs {
		b.tx.Witnesses = append(b.tx.Witnesses, Witness{PubKey: pubKey, Signature: sig})
	}
	return nil
}

// Build returns the constructed transaction.
// Does NOT validate — call Validate separately.
func (b *Builder) Build() *Transaction {
	return b.tx
}
