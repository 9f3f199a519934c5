// Package funding selects unspent sources sufficient to cover the fee they
// themselves incur under a linear fee model.
package funding

import (
	"errors"
	"fmt"

	"github.com/Meridian-tech/meridian-pay/internal/feemodel"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

// Selection errors.
var (
	// ErrNoSources means selection was invoked with no candidates, or the
	// fee target was met before consuming any (a valid selection must
	// reference at least one input).
	ErrNoSources = errors.New("no spendable sources")

	// ErrInsufficientFunds means every candidate was consumed without the
	// accumulated value reaching the fee target.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// UnspentSource is a caller-supplied candidate spendable fund.
type UnspentSource struct {
	Ref    types.Outpoint `json:"ref"`
	Amount types.Coin     `json:"amount"`
}

// SelectSources returns the shortest prefix of sources whose cumulative
// amount covers the fee that same prefix incurs under params.
//
// The input order is the caller's and is significant: sources are consumed
// left to right, never sorted, and duplicates are processed as given. Each
// consumed source raises the fee target by FeePerInput, since spending it
// adds one input to the eventual transaction. The call is read-only over
// the snapshot and safe to run concurrently on distinct snapshots.
//
// An empty snapshot, or a degenerate model whose target is met before any
// source is consumed, returns ErrNoSources. If the sources run out before
// the target is met, the full consumed prefix is returned together with an
// error wrapping ErrInsufficientFunds carrying the shortfall, so callers
// can distinguish exhaustion from success while still seeing what was
// consumed.
func SelectSources(params feemodel.FeeParams, sources []UnspentSource) ([]UnspentSource, error) {
	var (
		acc    types.Coin
		target = params.FeeBase
		n      int
		err    error
	)
	for n < len(sources) && acc < target {
		if acc, err = acc.Add(sources[n].Amount); err != nil {
			return nil, fmt.Errorf("source %s: %w", sources[n].Ref, err)
		}
		if target, err = target.Add(params.FeePerInput); err != nil {
			return nil, fmt.Errorf("fee target after %d inputs: %w", n+1, err)
		}
		n++
	}

	if n == 0 {
		return nil, ErrNoSources
	}

	selected := append([]UnspentSource(nil), sources[:n]...)
	if acc < target {
		return selected, fmt.Errorf("%w: %d sources hold %s, fee target is %s",
			ErrInsufficientFunds, n, acc, target)
	}
	return selected, nil
}

// Total sums the amounts of the given sources with overflow checking.
func Total(sources []UnspentSource) (types.Coin, error) {
	var total types.Coin
	var err error
	for _, s := range sources {
		if total, err = total.Add(s.Amount); err != nil {
			return 0, err
		}
	}
	return total, nil
}
