// meridian-pay anchors metadata on the Meridian ledger: it estimates the
// linear fee model from the protocol parameters, selects unspent funds that
// cover the fee, and builds the resulting transaction. Submission to the
// network is out of scope; the built transaction is written to a file.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Meridian-tech/meridian-pay/config"
	"github.com/Meridian-tech/meridian-pay/internal/log"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

func main() {
	cfg := config.Default()

	// Parse global flags that appear before the subcommand.
	args := os.Args[1:]
	logLevel := cfg.Log.Level
	logJSON := false
	for len(args) > 0 {
		switch {
		case args[0] == "--network" && len(args) > 1:
			net, err := types.ParseNetwork(args[1])
			if err != nil {
				fatalf("%v", err)
			}
			cfg.Network = net
			args = args[2:]
		case strings.HasPrefix(args[0], "--network="):
			net, err := types.ParseNetwork(args[0][len("--network="):])
			if err != nil {
				fatalf("%v", err)
			}
			cfg.Network = net
			args = args[1:]
		case args[0] == "--datadir" && len(args) > 1:
			cfg.DataDir = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--datadir="):
			cfg.DataDir = args[0][len("--datadir="):]
			args = args[1:]
		case args[0] == "--log-level" && len(args) > 1:
			logLevel = args[1]
			args = args[2:]
		case args[0] == "--log-json":
			logJSON = true
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	log.Init(logLevel, logJSON)

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	var err error
	switch cmd {
	case "wallet":
		err = cmdWallet(cfg, cmdArgs)
	case "utxo":
		err = cmdUTXO(cfg, cmdArgs)
	case "fees":
		err = cmdFees(cfg, cmdArgs)
	case "fund":
		err = cmdFund(cfg, cmdArgs)
	case "tx":
		err = cmdTx(cfg, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
	if err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "meridian-pay: "+format+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: meridian-pay [global flags] <command> [flags]

Global flags:
  --network <net>     mainnet (default) or testnet
  --datadir <path>    Data directory (default: ~/.meridian-pay)
  --log-level <lvl>   debug, info (default), warn, or error
  --log-json          Emit JSON logs instead of console output

Commands:
  wallet create --name <n>             Create a new wallet
  wallet restore --name <n> --mnemonic "..."
                                       Restore a wallet from a mnemonic
  wallet list                          List wallets
  wallet address --name <n> [--index <i>]
                                       Show a wallet address

  utxo import <snapshot.json>          Load a UTXO snapshot into the store
  utxo list [--address <addr>]         List snapshot sources

  fees estimate --pparams <file> [--metadata <file>] [--ttl <slot>]
                                       Estimate the linear fee model

  fund --pparams <file> --address <addr> [--metadata <file>] [--ttl <slot>]
                                       Select sources covering the fee

  tx build --pparams <file> --wallet <n> --out <file>
           [--index <i>] [--metadata <file>] [--ttl <slot>] [--sign]
                                       Build (and optionally sign) the
                                       metadata transaction
`)
}
