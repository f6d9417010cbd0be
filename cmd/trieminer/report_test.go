package main

import (
	"encoding/json"
	"testing"
)

func TestSaltMarshalsAsDecimalWhenSmall(t *testing.T) {
	var s salt
	s[31] = 42
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != "42" {
		t.Errorf("Marshal(salt{42}) = %s, want 42", data)
	}
}

func TestSaltMarshalsAsHexWhenLarge(t *testing.T) {
	var s salt
	s[0] = 0xff // set a byte beyond the low 8, forcing hex form
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `"0xff00000000000000000000000000000000000000000000000000000000000000"`
	if string(data) != want {
		t.Errorf("Marshal(salt) = %s, want %s", data, want)
	}
}
