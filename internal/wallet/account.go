package wallet

import (
	"github.com/Meridian-tech/meridian-pay/pkg/crypto"
	"github.com/Meridian-tech/meridian-pay/pkg/types"
)

// Account is a derived payment/stake key pair. The payment key controls
// spending; the stake key completes the base address.
type Account struct {
	Payment *HDKey
	Stake   *HDKey
}

// DeriveAccount derives the payment key at m/44'/7788'/account'/role/index
// and the matching stake key at m/44'/7788'/account'/2/0.
func DeriveAccount(master *HDKey, account, role, index uint32) (*Account, error) {
	payment, err := master.DeriveRole(account, role, index)
	if err != nil {
		return nil, err
	}
	stake, err := master.DeriveRole(account, RoleStake, 0)
	if err != nil {
		return nil, err
	}
	return &Account{Payment: payment, Stake: stake}, nil
}

// Address returns the base address built from the account's key hashes.
func (a *Account) Address() types.Address {
	return types.Address{
		Payment: a.Payment.KeyHash(),
		Stake:   a.Stake.KeyHash(),
	}
}

// Signer returns the payment key's signer for spending.
func (a *Account) Signer() (*crypto.PrivateKey, error) {
	return a.Payment.Signer()
}
