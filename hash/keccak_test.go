package hash

import (
	"encoding/hex"
	"testing"
)

func TestKeccak256EmptyString(t *testing.T) {
	got := hex.EncodeToString(Keccak256([]byte{}))
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got != want {
		t.Errorf("Keccak256(\"\") = %s, want %s", got, want)
	}
}

func TestKeccak256MultipleInputs(t *testing.T) {
	split := Keccak256([]byte("foo"), []byte("bar"))
	joined := Keccak256([]byte("foobar"))
	if hex.EncodeToString(split) != hex.EncodeToString(joined) {
		t.Errorf("multi-write Keccak256 = %x, want %x", split, joined)
	}
}

func TestKeccak256Digest(t *testing.T) {
	d := Keccak256Digest([]byte("foobar"))
	raw := Keccak256([]byte("foobar"))
	if d.Hex() != "0x"+hex.EncodeToString(raw) {
		t.Errorf("Keccak256Digest = %s, want 0x%x", d.Hex(), raw)
	}
}
