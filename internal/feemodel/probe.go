package feemodel

import (
	"encoding/hex"
	"fmt"

	"github.com/Meridian-tech/meridian-pay/internal/wallet"
	"github.com/Meridian-tech/meridian-pay/pkg/crypto"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

// The probe identity is a fixed, reproducible keypair used only to give fee
// probes a well-formed output address. It is derived from a hard-coded seed
// through the standard wallet derivation path, holds no funds, and must
// never be used to sign a real transaction. Keeping it here rather than in
// internal/wallet keeps the real-key path free of it.

// probeSeedHex is an arbitrary fixed 64-byte seed. Reproducibility is the
// point: the estimator must be a pure function of its inputs, with no
// entropy.
const probeSeedHex = "6d6572696469616e2d70617920666565206d6f64656c2070726f6265207365656" +
	"4206e6f7420666f72207265616c207369676e696e67206f722066756e64732e"

// probeInputTag seeds the synthetic input reference for the marginal probe.
const probeInputTag = "meridian-pay fee model probe input"

// ProbeAddress returns the fixed synthetic payment/stake address used as
// the probe transaction's output. Every call returns the same address.
func ProbeAddress() (types.Address, error) {
	seed, err := hex.DecodeString(probeSeedHex)
	if err != nil {
		return types.Address{}, fmt.Errorf("decode probe seed: %w", err)
	}
	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		return types.Address{}, fmt.Errorf("probe master key: %w", err)
	}
	acct, err := wallet.DeriveAccount(master, 0, wallet.RoleExternal, 0)
	if err != nil {
		return types.Address{}, fmt.Errorf("derive probe account: %w", err)
	}
	return acct.Address(), nil
}

// ProbeInput returns a fixed, well-formed but non-existent input reference
// for the marginal probe. The oracle computes fees from transaction shape,
// not from whether the input resolves.
func ProbeInput() types.Outpoint {
	return types.Outpoint{
		TxID:  crypto.Hash([]byte(probeInputTag)),
		Index: 0,
	}
}
