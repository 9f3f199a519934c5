package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Meridian-tech/meridian-pay/config"
	"github.com/Meridian-tech/meridian-pay/internal/funding"
	"github.com/Meridian-tech/meridian-pay/internal/log"
	"github.com/Meridian-tech/meridian-pay/pkg/tx"
)

func cmdTx(cfg *config.Config, args []string) error {
	if len(args) == 0 || args[0] != "build" {
		return fmt.Errorf("tx: missing subcommand (build)")
	}

	fs := flag.NewFlagSet("tx build", flag.ContinueOnError)
	ef := registerEstimateFlags(fs)
	walletName := fs.String("wallet", "", "wallet funding the transaction")
	index := fs.Uint("index", 0, "address index")
	outFile := fs.String("out", "", "file to write the transaction to")
	sign := fs.Bool("sign", false, "sign the transaction with the wallet key")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *walletName == "" {
		return fmt.Errorf("tx build: --wallet is required")
	}
	if *outFile == "" {
		return fmt.Errorf("tx build: --out is required")
	}

	params, metadata, err := ef.estimate(cfg)
	if err != nil {
		return err
	}

	acct, err := loadAccount(cfg, *walletName, uint32(*index))
	if err != nil {
		return err
	}
	addr := acct.Address()

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
	if err != nil {
		return err
	}

	total, err := funding.Total(selected)
	if err != nil {
		return err
	}
	fee, err := params.Target(len(selected))
	if err != nil {
		return err
	}
	change, err := total.Sub(fee)
	if err != nil {
		return err
	}

	// The selected funds pay the fee; what remains returns to the wallet
	// alongside the metadata payload.
	builder := tx.NewBuilder().
		SetNetwork(cfg.Network).
		SetTTL(ef.ttl).
		SetMetadata(metadata).
		AddOutput(addr, change)
	for _, src := range selected {
		builder.AddInput(src.Ref)
	}

	if *sign {
		signer, err := acct.Signer()
		if err != nil {
			return err
		}
		if err := builder.Sign(signer); err != nil {
			return err
		}
	}

	built := builder.Build()
	if err := built.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(built, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transaction: %w", err)
	}
	if err := os.WriteFile(*outFile, data, 0600); err != nil {
		return fmt.Errorf("write transaction: %w", err)
	}

	log.CLI.Info().
		Str("id", built.ID().String()).
		Int("inputs", len(selected)).
		Stringer("fee", fee).
		Stringer("change", change).
		Str("out", *outFile).
		Msg("transaction built")
	fmt.Printf("Transaction %s written to %s (%d inputs, fee %s, change %s).\n",
		built.ID(), *outFile, len(selected), fee, change)
	return nil
}
