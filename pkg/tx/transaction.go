// Package tx defines Meridian transactions, the transaction builder, and
// the minimum-fee rule.
package tx

import (
	"encoding/binary"

	"github.com/Meridian-tech/meridian-pay/pkg/crypto"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

// Transaction is a Meridian transaction. A transaction without witnesses is
// a candidate: fully shaped but unsigned, usable for fee probing.
type Transaction struct {
	Network   types.Network `json:"network"`
	Inputs    []Input       `json:"inputs"`
	Outputs   []Output      `json:"outputs"`
	TTL       uint64        `json:"ttl"`      // Last slot this tx is valid in.
	Metadata  []byte        `json:"metadata"` // Opaque payload, counted in the fee.
	Witnesses []Witness     `json:"witnesses,omitempty"`
}

// Input references a UTXO being spent.
type Input struct {
	PrevOut types.Outpoint `json:"prevout"`
}

// Output defines a new UTXO paying a value to an address.
type Output struct {
	Address types.Address `json:"address"`
	Value   types.Coin    `json:"value"`
}

// Witness is a key witness: a compressed public key and a Schnorr signature
// over the transaction id.
type Witness struct {
	PubKey    []byte `json:"pubkey"`
	Signature []byte `json:"signature"`
}

// Witness sizes in bytes, used by the fee rule when sizing a transaction
// whose witnesses are assumed rather than present.
const (
	// KeyWitnessSize is count-prefixed pubkey(33) + signature(64).
	KeyWitnessSize = 4 + 33 + 64
	// LegacyWitnessSize covers old-era bootstrap witnesses, which carry
	// an attached derivation chain code and padding.
	LegacyWitnessSize = 4 + 33 + 64 + 64
)

// ID computes the transaction id: BLAKE3 over the body bytes.
// Witnesses are excluded so the id is stable across signing.
func (t *Transaction) ID() types.Hash {
	return crypto.Hash(t.BodyBytes())
}

// BodyBytes returns the canonical serialization of the transaction body.
// Layout:
//
//	network(1)
//	inputCount(4) | [txid(32) index(4)]...
//	outputCount(4) | [payment(20) stake(20) value(8)]...
//	ttl(8) | metadataLen(4) | metadata
func (t *Transaction) BodyBytes() []byte {
	var buf []byte

	buf = append(buf, byte(t.Network))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.Inputs)))
	for _, in := range t.Inputs {
		buf = append(buf, in.PrevOut.TxID[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, in.PrevOut.Index)
	}

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.Outputs)))
	for _, out := range t.Outputs {
		buf = append(buf, out.Address.Payment[:]...)
		buf = append(buf, out.Address.Stake[:]...)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(out.Value))
	}

	buf = binary.LittleEndian.AppendUint64(buf, t.TTL)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.Metadata)))
	buf = append(buf, t.Metadata...)

	return buf
}

// Bytes returns the full serialization: body followed by the witness set.
func (t *Transaction) Bytes() []byte {
	buf := t.BodyBytes()
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.Witnesses)))
	for _, w := range t.Witnesses {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(w.PubKey)))
		buf = append(buf, w.PubKey...)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(w.Signature)))
		buf = append(buf, w.Signature...)
	}
	return buf
}

// TotalOutputValue returns the sum of all output values with overflow
// checking.
func (t *Transaction) TotalOutputValue() (types.Coin, error) {
	var total types.Coin
	var err error
	for _, out := range t.Outputs {
		if total, err = total.Add(out.Value); err != nil {
			return 0, err
		}
	}
	return total, nil
}
