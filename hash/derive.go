package hash

import (
	"math/big"

	"github.com/trieminer/trieminer/types"
)

// SlotFromUint64 left-pads a uint64 storage slot index into a 32-byte
// big-endian word, matching Solidity's abi.encode(uint256) layout.
func SlotFromUint64(slot uint64) [32]byte {
	var out [32]byte
	b := new(big.Int).SetUint64(slot).Bytes()
	copy(out[32-len(b):], b)
	return out
}

// StorageKey derives the ERC-20-style mapping storage-slot key for (addr,
// slot): keccak256(pad32(addr) || pad32(slot)). The full 32-byte digest is
// returned, matching Solidity's mapping slot formula
// keccak256(abi.encode(key, baseSlot)).
func StorageKey(addr types.Address, slot [32]byte) types.Digest {
	var buf [64]byte
	copy(buf[12:32], addr[:])
	copy(buf[32:64], slot[:])
	return Keccak256Digest(buf[:])
}

// StorageKeyUint64 is StorageKey with the slot given as a uint64, the common
// case for a mapping declared at a small fixed base slot.
func StorageKeyUint64(addr types.Address, slot uint64) types.Digest {
	return StorageKey(addr, SlotFromUint64(slot))
}

// Create2Address derives the CREATE2 contract address:
// last20(keccak256(0xff || deployer[20] || salt[32] || initCodeHash[32])).
func Create2Address(deployer types.Address, salt [32]byte, initCodeHash types.Digest) types.Address {
	var buf [85]byte
	buf[0] = 0xff
	copy(buf[1:21], deployer[:])
	copy(buf[21:53], salt[:])
	copy(buf[53:85], initCodeHash[:])
	digest := Keccak256(buf[:])
	return types.BytesToAddress(digest[12:])
}

// SaltFromUint64 encodes a 64-bit salt into the low 8 bytes of a 32-byte
// big-endian CREATE2 salt, leaving the high 24 bytes zero. (The account
// coordinator does not use it: its salts carry a 20-byte search candidate
// in the low 20 bytes.)
func SaltFromUint64(salt uint64) [32]byte {
	var out [32]byte
	b := new(big.Int).SetUint64(salt).Bytes()
	copy(out[32-len(b):], b)
	return out
}

// AccountHash derives the account-trie key for addr: keccak256(addr).
func AccountHash(addr types.Address) types.Digest {
	return Keccak256Digest(addr[:])
}
