// Package crypto provides cryptographic primitives for Meridian.
package crypto

import (
	"github.com/Meridian-tech/meridian-pay/pkg/types"
	"github.com/zeebo/blake3"
)

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// KeyHashFromPubKey derives a key hash from a compressed public key.
// KeyHash = BLAKE3(compressed_pubkey)[:20].
func KeyHashFromPubKey(pubKey []byte) types.KeyHash {
	h := Hash(pubKey)
	var kh types.KeyHash
	copy(kh[:], h[:types.KeyHashSize])
	return kh
}
