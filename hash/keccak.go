// Package hash provides the keccak256 primitive and the three derivation
// functions the mining engine races against: storage-slot keys, CREATE2
// contract addresses, and account hashes.
package hash

import (
	"golang.org/x/crypto/sha3"

	"github.com/trieminer/trieminer/types"
)

// Keccak256 computes the Keccak-256 digest of the concatenation of data.
// This is the pre-NIST-standardization variant used throughout Ethereum
// (capacity 512 bits, rate 1088 bits, 0x01 domain byte), exposed by
// golang.org/x/crypto/sha3 as NewLegacyKeccak256.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Digest is Keccak256 returning a types.Digest.
func Keccak256Digest(data ...[]byte) types.Digest {
	return types.BytesToDigest(Keccak256(data...))
}
