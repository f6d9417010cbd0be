package hash

import (
	"testing"

	"github.com/trieminer/trieminer/types"
)

func TestStorageKeyZero(t *testing.T) {
	got := StorageKeyUint64(types.Address{}, 0)
	want := types.HexToDigest("0xf5a5fd42d16a20302798ef6ed309979b43003d2320d9f0e8ea9831a92759fb4b")
	if got != want {
		t.Errorf("StorageKeyUint64(zero, 0) = %s, want %s", got.Hex(), want.Hex())
	}
}

func TestStorageKeyMatchesRawConcatenation(t *testing.T) {
	addr := types.HexToAddress("0x1111111111111111111111111111111111111111")
	var slot [32]byte
	slot[31] = 7

	var raw [64]byte
	copy(raw[12:32], addr[:])
	copy(raw[32:64], slot[:])

	got := StorageKey(addr, slot)
	want := Keccak256Digest(raw[:])
	if got != want {
		t.Errorf("StorageKey = %s, want %s", got.Hex(), want.Hex())
	}
}

func TestCreate2AddressDeterministic(t *testing.T) {
	deployer := types.HexToAddress("0x4e59b44847b379578588920ca78fbf26c0b4956c")
	var salt [32]byte
	initCodeHash := Keccak256Digest([]byte{})

	a := Create2Address(deployer, salt, initCodeHash)
	b := Create2Address(deployer, salt, initCodeHash)
	if a != b {
		t.Errorf("Create2Address not deterministic: %s != %s", a.Hex(), b.Hex())
	}
	if a.IsZero() {
		t.Errorf("Create2Address returned zero address")
	}
}

func TestCreate2AddressMatchesRawFormula(t *testing.T) {
	deployer := types.HexToAddress("0x4e59b44847b379578588920ca78fbf26c0b4956c")
	var salt [32]byte
	initCodeHash := Keccak256Digest([]byte{})

	var raw [85]byte
	raw[0] = 0xff
	copy(raw[1:21], deployer[:])
	copy(raw[21:53], salt[:])
	copy(raw[53:85], initCodeHash[:])
	want := types.BytesToAddress(Keccak256(raw[:])[12:])

	got := Create2Address(deployer, salt, initCodeHash)
	if got != want {
		t.Errorf("Create2Address = %s, want %s", got.Hex(), want.Hex())
	}
}

func TestCreate2AddressSensitiveToSalt(t *testing.T) {
	deployer := types.HexToAddress("0x4e59b44847b379578588920ca78fbf26c0b4956c")
	initCodeHash := Keccak256Digest([]byte{})

	var saltA, saltB [32]byte
	saltB[31] = 1

	a := Create2Address(deployer, saltA, initCodeHash)
	b := Create2Address(deployer, saltB, initCodeHash)
	if a == b {
		t.Errorf("Create2Address did not change with salt: %s", a.Hex())
	}
}

func TestAccountHash(t *testing.T) {
	addr := types.HexToAddress("0x1111111111111111111111111111111111111111")
	got := AccountHash(addr)
	want := Keccak256Digest(addr[:])
	if got != want {
		t.Errorf("AccountHash = %s, want %s", got.Hex(), want.Hex())
	}
}

func TestSaltFromUint64(t *testing.T) {
	salt := SaltFromUint64(0x0102030405060708)
	var want [32]byte
	want[24] = 0x01
	want[25] = 0x02
	want[26] = 0x03
	want[27] = 0x04
	want[28] = 0x05
	want[29] = 0x06
	want[30] = 0x07
	want[31] = 0x08
	if salt != want {
		t.Errorf("SaltFromUint64 = %x, want %x", salt, want)
	}
}
