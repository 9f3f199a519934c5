package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Meridian-tech/meridian-pay/config"
	"github.com/Meridian-tech/meridian-pay/internal/feemodel"
	"github.com/Meridian-tech/meridian-pay/internal/log"
	"github.com/Meridian-tech/meridian-pay/pkg/tx"
)

// estimateFlags are the inputs the fee model depends on.
type estimateFlags struct {
	pparams  string
	metadata string
	ttl      uint64
}

func registerEstimateFlags(fs *flag.FlagSet) *estimateFlags {
	ef := &estimateFlags{}
	fs.StringVar(&ef.pparams, "pparams", "", "protocol parameter JSON file")
	fs.StringVar(&ef.metadata, "metadata", "", "metadata payload file (optional)")
	fs.Uint64Var(&ef.ttl, "ttl", 0, "last valid slot for the transaction")
	return ef
}

// estimate loads the flag inputs and runs the fee model estimator.
func (ef *estimateFlags) estimate(cfg *config.Config) (feemodel.FeeParams, []byte, error) {
	if ef.pparams == "" {
		return feemodel.FeeParams{}, nil, fmt.Errorf("--pparams is required")
	}
	pp, err := tx.LoadPParams(ef.pparams)
	if err != nil {
		return feemodel.FeeParams{}, nil, err
	}

	var metadata []byte
	if ef.metadata != "" {
		metadata, err = os.ReadFile(ef.metadata)
		if err != nil {
			return feemodel.FeeParams{}, nil, fmt.Errorf("read metadata: %w", err)
		}
	}

	params, err := feemodel.Estimate(tx.Calculator{PP: pp}, cfg.Network, ef.ttl, metadata)
	if err != nil {
		return feemodel.FeeParams{}, nil, err
	}
	log.Fees.Debug().
		Stringer("fee_base", params.FeeBase).
		Stringer("fee_per_input", params.FeePerInput).
		Int("metadata_bytes", len(metadata)).
		Msg("fee model estimated")
	return params, metadata, nil
}

func cmdFees(cfg *config.Config, args []string) error {
	if len(args) == 0 || args[0] != "estimate" {
		return fmt.Errorf("fees: missing subcommand (estimate)")
	}

	fs := flag.NewFlagSet("fees estimate", flag.ContinueOnError)
	ef := registerEstimateFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	params, _, err := ef.estimate(cfg)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
