package main

import (
	"flag"
	"fmt"

	"github.com/Meridian-tech/meridian-pay/config"
	"github.com/Meridian-tech/meridian-pay/internal/log"
	"github.com/Meridian-tech/meridian-pay/internal/storage"
	"github.com/Meridian-tech/meridian-pay/internal/utxostore"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

// openStore opens the Badger-backed snapshot store. The caller must Close
// the returned DB.
func openStore(cfg *config.Config) (*utxostore.Store, storage.DB, error) {
	db, err := storage.NewBadger(cfg.SnapshotDir())
	if err != nil {
		return nil, nil, err
	}
	return utxostore.NewStore(db), db, nil
}

func cmdUTXO(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("utxo: missing subcommand (import, list)")
	}
	switch args[0] {
	case "import":
		return utxoImport(cfg, args[1:])
	case "list":
		return utxoList(cfg, args[1:])
	}
	return fmt.Errorf("utxo: unknown subcommand %q", args[0])
}

func utxoImport(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("utxo import: expected exactly one snapshot file")
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := store.Import(args[0])
	if err != nil {
		return err
	}
	log.Store.Info().Int("sources", n).Str("file", args[0]).Msg("snapshot imported")
	fmt.Printf("Imported %d sources.\n", n)
	return nil
}

func utxoList(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("utxo list", flag.ContinueOnError)
	addrStr := fs.String("address", "", "only list sources at this address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	printSource := func(src utxostore.Source) error {
		fmt.Printf("%s  %s  %s\n", src.Ref, src.Address.Encode(cfg.Network), src.Value)
		return nil
	}

	if *addrStr != "" {
		addr, _, err := types.ParseAddress(*addrStr)
		if err != nil {
			return err
		}
		sources, err := store.ByAddress(addr)
		if err != nil {
			return err
		}
		for _, src := range sources {
			printSource(src)
		}
		return nil
	}
	return store.ForEach(printSource)
}
