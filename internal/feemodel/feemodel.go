// Package feemodel derives a linear fee model from a fee oracle.
//
// The Meridian fee of a transaction is (near-)linear in its input count for
// a fixed output/witness/metadata shape, so two oracle probes — one with
// zero inputs, one with a single synthetic input — recover the intercept
// and slope without reimplementing the ledger's fee formula.
package feemodel

import (
	"errors"
	"fmt"

	"github.com/Meridian-tech/meridian-pay/pkg/tx"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

// Oracle prices a fully specified candidate transaction. Implementations
// must be deterministic, side-effect-free functions of the transaction
// shape and protocol coefficients; tx.Calculator is the production one.
//
// Witness counts are passed separately so an unsigned candidate can be
// priced as if signed.
type Oracle interface {
	Fee(t *tx.Transaction, numKeyWitnesses, numLegacyWitnesses int) (types.Coin, error)
}

// FeeParams is the two-parameter linear fee model: a transaction spending
// n inputs costs at least FeeBase + n·FeePerInput.
//
// A FeeParams value is only valid for the exact (network, protocol
// parameters, metadata payload) combination it was estimated with; changing
// the metadata payload size changes the serialized transaction and with it
// the fee.
type FeeParams struct {
	FeeBase     types.Coin `json:"feeBase"`
	FeePerInput types.Coin `json:"feePerInput"`
}

// ErrNegativeMarginalFee reports an oracle that priced a one-input
// transaction below a zero-input one, violating the linearity assumption.
var ErrNegativeMarginalFee = errors.New("negative marginal fee")

// Estimate probes the oracle twice and returns the fee model for the given
// network, expiry bound, and metadata payload.
//
// Both probes use the same shape: one zero-value output to the synthetic
// probe address, the metadata payload, one assumed key witness, and no
// legacy witnesses. The second probe adds a single synthetic input
// reference; the oracle prices transaction shape, so the input does not
// need to exist.
//
// Estimate is a pure function of its arguments — identical inputs yield
// identical FeeParams. Oracle failures (e.g. malformed protocol parameters)
// are propagated, not retried.
func Estimate(oracle Oracle, network types.Network, ttl uint64, metadata []byte) (FeeParams, error) {
	addr, err := ProbeAddress()
	if err != nil {
		return FeeParams{}, fmt.Errorf("probe identity: %w", err)
	}

	base := tx.NewBuilder().
		SetNetwork(network).
		SetTTL(ttl).
		SetMetadata(metadata).
		AddOutput(addr, 0).
		Build()
	feeBase, err := oracle.Fee(base, 1, 0)
	if err != nil {
		return FeeParams{}, fmt.Errorf("base probe: %w", err)
	}

	oneInput := tx.NewBuilder().
		SetNetwork(network).
		SetTTL(ttl).
		SetMetadata(metadata).
		AddInput(ProbeInput()).
		AddOutput(addr, 0).
		Build()
	feeWithOne, err := oracle.Fee(oneInput, 1, 0)
	if err != nil {
		return FeeParams{}, fmt.Errorf("marginal probe: %w", err)
	}

	perInput, err := feeWithOne.Sub(feeBase)
	if err != nil {
		return FeeParams{}, fmt.Errorf("%w: base fee %s, fee with one input %s",
			ErrNegativeMarginalFee, feeBase, feeWithOne)
	}

	return FeeParams{FeeBase: feeBase, FeePerInput: perInput}, nil
}

// Target returns the fee target for a transaction spending n inputs:
// FeeBase + n·FeePerInput, with checked arithmetic.
func (p FeeParams) Target(n int) (types.Coin, error) {
	if n < 0 {
		return 0, fmt.Errorf("fee target: negative input count %d", n)
	}
	marginal, err := p.FeePerInput.Mul(types.Coin(n))
	if err != nil {
		return 0, err
	}
	return p.FeeBase.Add(marginal)
}
