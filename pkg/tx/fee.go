package tx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

// DefaultMaxTxSize is the protocol default when the parameter file omits
// maxTxSize.
const DefaultMaxTxSize = 16384

// PParams are the protocol parameters the fee rule depends on.
// The minimum fee of a transaction of serialized size s is
//
//	minFeeA*s + minFeeB
//
// which is linear in the input count for a fixed output/witness/metadata
// shape.
type PParams struct {
	MinFeeA   types.Coin `json:"minFeeA"`
	MinFeeB   types.Coin `json:"minFeeB"`
	MaxTxSize uint32     `json:"maxTxSize,omitempty"`
}

// ParsePParams decodes protocol parameters from JSON. Unknown fields and
// negative coefficients are rejected; a missing maxTxSize falls back to
// DefaultMaxTxSize.
func ParsePParams(data []byte) (PParams, error) {
	var pp PParams
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&pp); err != nil {
		return PParams{}, fmt.Errorf("parse protocol parameters: %w", err)
	}
	if pp.MaxTxSize == 0 {
		pp.MaxTxSize = DefaultMaxTxSize
	}
	return pp, nil
}

// LoadPParams reads and parses a protocol parameter file.
func LoadPParams(path string) (PParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PParams{}, fmt.Errorf("read protocol parameters: %w", err)
	}
	return ParsePParams(data)
}

// Calculator computes minimum fees under a fixed set of protocol
// parameters. It is a deterministic, side-effect-free function of the
// transaction shape, so it can price candidates whose inputs do not exist.
type Calculator struct {
	PP PParams
}

// Fee returns the minimum fee for the transaction, sizing the witness set
// from the given counts rather than from attached witnesses. Passing counts
// lets an unsigned candidate be priced as if signed.
func (c Calculator) Fee(t *Transaction, numKeyWitnesses, numLegacyWitnesses int) (types.Coin, error) {
	if numKeyWitnesses < 0 || numLegacyWitnesses < 0 {
		return 0, fmt.Errorf("fee: negative witness count")
	}

	size := len(t.BodyBytes()) +
		4 + // witness set count
		KeyWitnessSize*numKeyWitnesses +
		LegacyWitnessSize*numLegacyWitnesses
	if size > int(c.PP.MaxTxSize) {
		return 0, fmt.Errorf("fee: transaction size %d exceeds protocol maximum %d", size, c.PP.MaxTxSize)
	}

	scaled, err := c.PP.MinFeeA.Mul(types.Coin(size))
	if err != nil {
		return 0, fmt.Errorf("fee: %w", err)
	}
	fee, err := scaled.Add(c.PP.MinFeeB)
	if err != nil {
		return 0, fmt.Errorf("fee: %w", err)
	}
	return fee, nil
}
