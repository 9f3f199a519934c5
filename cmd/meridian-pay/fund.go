package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/Meridian-tech/meridian-pay/config"
	"github.com/Meridian-tech/meridian-pay/internal/funding"
	"github.com/Meridian-tech/meridian-pay/internal/log"
	"github.com/Meridian-tech/meridian-pay/internal/utxostore"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

// gatherSources reads the snapshot sources at an address in store order and
// converts them to selection candidates.
func gatherSources(store *utxostore.Store, addr types.Address) ([]funding.UnspentSource, error) {
	stored, err := store.ByAddress(addr)
	if err != nil {
		return nil, err
	}
	sources := make([]funding.UnspentSource, 0, len(stored))
	for _, src := range stored {
		sources = append(sources, funding.UnspentSource{Ref: src.Ref, Amount: src.Value})
	}
	return sources, nil
}

func cmdFund(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("fund", flag.ContinueOnError)
	ef := registerEstimateFlags(fs)
	addrStr := fs.String("address", "", "address holding the funds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *addrStr == "" {
		return fmt.Errorf("fund: --address is required")
	}
	addr, _, err := types.ParseAddress(*addrStr)
	if err != nil {
		return err
	}

	params, _, err := ef.estimate(cfg)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sources, err := gatherSources(store, addr)
	if err != nil {
		return err
	}

	selected, err := funding.SelectSources(params, sources)
	switch {
	case errors.Is(err, funding.ErrNoSources):
		return fmt.Errorf("no spendable sources at %s (import a snapshot first)", *addrStr)
	case errors.Is(err, funding.ErrInsufficientFunds):
		return err
	case err != nil:
		return err
	}

	total, err := funding.Total(selected)
	if err != nil {
		return err
	}
	target, err := params.Target(len(selected))
	if err != nil {
		return err
	}

	log.Fees.Info().
		Int("selected", len(selected)).
		Stringer("total", total).
		Stringer("fee", target).
		Msg("sources selected")

	fmt.Printf("Selected %d of %d sources (total %s, fee %s):\n",
		len(selected), len(sources), total, target)
	for _, src := range selected {
		fmt.Printf("  %s  %s\n", src.Ref, src.Amount)
	}
	return nil
}
