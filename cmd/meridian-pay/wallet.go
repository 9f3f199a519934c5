package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/Meridian-tech/meridian-pay/config"
	"github.com/Meridian-tech/meridian-pay/internal/log"
	"github.com/Meridian-tech/meridian-pay/internal/wallet"
	"golang.org/x/term"
)

func cmdWallet(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("wallet: missing subcommand (create, restore, list, address)")
	}
	switch args[0] {
	case "create":
		return walletCreate(cfg, args[1:], "")
	case "restore":
		return walletRestore(cfg, args[1:])
	case "list":
		return walletList(cfg)
	case "address":
		return walletAddress(cfg, args[1:])
	}
	return fmt.Errorf("wallet: unknown subcommand %q", args[0])
}

// promptPassword reads a password from the terminal without echo, asking
// twice when confirm is set.
func promptPassword(confirm bool) ([]byte, error) {
	fmt.Fprint(os.Stderr, "Passphrase: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	if !confirm {
		return pw, nil
	}
	fmt.Fprint(os.Stderr, "Confirm passphrase: ")
	again, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	if string(pw) != string(again) {
		return nil, fmt.Errorf("passphrases do not match")
	}
	return pw, nil
}

func walletCreate(cfg *config.Config, args []string, mnemonic string) error {
	fs := flag.NewFlagSet("wallet create", flag.ContinueOnError)
	name := fs.String("name", "", "wallet name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("wallet create: --name is required")
	}

	fresh := mnemonic == ""
	if fresh {
		var err error
		mnemonic, err = wallet.NewMnemonic()
		if err != nil {
			return err
		}
	}

	seed, err := wallet.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return err
	}

	password, err := promptPassword(true)
	if err != nil {
		return err
	}

	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		return err
	}
	if err := ks.Create(*name, seed, password, wallet.DefaultEncryptionParams()); err != nil {
		return err
	}
	log.Wallet.Info().Str("wallet", *name).Msg("wallet created")

	if fresh {
		fmt.Println("Recovery mnemonic (write this down, it is shown once):")
		fmt.Println()
		fmt.Printf("  %s\n", mnemonic)
		fmt.Println()
	}

	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		return err
	}
	acct, err := wallet.DeriveAccount(master, 0, wallet.RoleExternal, 0)
	if err != nil {
		return err
	}
	fmt.Printf("Address 0: %s\n", acct.Address().Encode(cfg.Network))
	return nil
}

func walletRestore(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("wallet restore", flag.ContinueOnError)
	name := fs.String("name", "", "wallet name")
	mnemonic := fs.String("mnemonic", "", "BIP-39 recovery mnemonic")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *mnemonic == "" {
		return fmt.Errorf("wallet restore: --mnemonic is required")
	}
	return walletCreate(cfg, []string{"--name", *name}, *mnemonic)
}

func walletList(cfg *config.Config) error {
	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		return err
	}
	names, err := ks.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No wallets.")
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func walletAddress(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("wallet address", flag.ContinueOnError)
	name := fs.String("name", "", "wallet name")
	index := fs.Uint("index", 0, "address index")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("wallet address: --name is required")
	}

	acct, err := loadAccount(cfg, *name, uint32(*index))
	if err != nil {
		return err
	}
	fmt.Println(acct.Address().Encode(cfg.Network))
	return nil
}

// loadAccount decrypts a wallet and derives the account at the given
// external index.
func loadAccount(cfg *config.Config, name string, index uint32) (*wallet.Account, error) {
	password, err := promptPassword(false)
	if err != nil {
		return nil, err
	}
	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		return nil, err
	}
	seed, err := ks.Load(name, password)
	if err != nil {
		return nil, err
	}
	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	return wallet.DeriveAccount(master, 0, wallet.RoleExternal, index)
}
