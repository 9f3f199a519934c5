package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// KeyHashSize is the length of a key hash in bytes.
const KeyHashSize = 20

// KeyHash is a 160-bit hash of a public key.
type KeyHash [KeyHashSize]byte

// IsZero returns true if the key hash is all zeros.
func (k KeyHash) IsZero() bool {
	return k == KeyHash{}
}

// String returns the hex-encoded key hash.
func (k KeyHash) String() string {
	return hex.EncodeToString(k[:])
}

// Network identifies which Meridian network an address or transaction
// belongs to.
type Network uint8

const (
	Mainnet Network = 0
	Testnet Network = 1
)

// HRP returns the bech32 human-readable part for addresses on this network.
func (n Network) HRP() string {
	if n == Testnet {
		return TestnetHRP
	}
	return MainnetHRP
}

// String returns "mainnet" or "testnet".
func (n Network) String() string {
	if n == Testnet {
		return "testnet"
	}
	return "mainnet"
}

// ParseNetwork parses a network name.
func ParseNetwork(s string) (Network, error) {
	switch s {
	case "mainnet":
		return Mainnet, nil
	case "testnet":
		return Testnet, nil
	}
	return 0, fmt.Errorf("unknown network %q", s)
}

// Address HRP (human-readable part) constants for bech32 encoding.
const (
	MainnetHRP = "mrd"
	TestnetHRP = "tmrd"
)

// Address is a base address: the hash of the payment key that controls
// spending plus the hash of the stake key the funds are delegated with.
type Address struct {
	Payment KeyHash
	Stake   KeyHash
}

// IsZero returns true if both key hashes are all zeros.
func (a Address) IsZero() bool {
	return a.Payment.IsZero() && a.Stake.IsZero()
}

// Bytes returns the 40-byte payload: payment hash followed by stake hash.
func (a Address) Bytes() []byte {
	b := make([]byte, 2*KeyHashSize)
	copy(b, a.Payment[:])
	copy(b[KeyHashSize:], a.Stake[:])
	return b
}

// Encode returns the bech32 address string for the given network.
func (a Address) Encode(network Network) string {
	s, err := Bech32Encode(network.HRP(), a.Bytes())
	if err != nil {
		// Bech32Encode only fails on a bad HRP; ours are constants.
		return network.HRP() + ":" + hex.EncodeToString(a.Bytes())
	}
	return s
}

// String returns the mainnet bech32 encoding. Use Encode for an explicit
// network.
func (a Address) String() string {
	return a.Encode(Mainnet)
}

// MarshalJSON encodes the address as a mainnet bech32 string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a bech32 string into an address. The network tag
// carried by the HRP is discarded.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, _, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress parses a bech32 address string and reports the network its
// HRP names.
func ParseAddress(s string) (Address, Network, error) {
	hrp, data, err := Bech32Decode(s)
	if err != nil {
		return Address{}, 0, fmt.Errorf("invalid address: %w", err)
	}
	var network Network
	switch hrp {
	case MainnetHRP:
		network = Mainnet
	case TestnetHRP:
		network = Testnet
	default:
		return Address{}, 0, fmt.Errorf("invalid address: unknown HRP %q", hrp)
	}
	if len(data) != 2*KeyHashSize {
		return Address{}, 0, fmt.Errorf("address payload must be %d bytes, got %d", 2*KeyHashSize, len(data))
	}
	var a Address
	copy(a.Payment[:], data[:KeyHashSize])
	copy(a.Stake[:], data[KeyHashSize:])
	return a, network, nil
}
