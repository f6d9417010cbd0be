package main

import (
	"encoding/json"
	"fmt"

	"github.com/trieminer/trieminer/mining"
)

// StorageReport is the stable JSON shape for a storage-mining run: an
// ordered list of (address, storage_slot) pairs plus the depth they were
// mined against. Field names are lowercase snake_case per the documented
// wire contract.
type StorageReport struct {
	Depth   uint32             `json:"depth"`
	Entries []storageEntryJSON `json:"entries"`
}

type storageEntryJSON struct {
	Address     string `json:"address"`
	StorageSlot string `json:"storage_slot"`
}

// NewStorageReport adapts a mining.StorageMiningResult into its wire shape.
func NewStorageReport(result mining.StorageMiningResult) StorageReport {
	entries := make([]storageEntryJSON, len(result.Entries))
	for i, e := range result.Entries {
		entries[i] = storageEntryJSON{
			Address:     e.Address.Hex(),
			StorageSlot: e.StorageKey.Hex(),
		}
	}
	return StorageReport{Depth: result.Depth, Entries: entries}
}

// AccountReport is the stable JSON shape for an account/CREATE2-mining run.
type AccountReport struct {
	Deployer     string         `json:"deployer"`
	InitCodeHash string         `json:"init_code_hash"`
	TargetDepth  uint32         `json:"target_depth"`
	NumContracts uint32         `json:"num_contracts"`
	Contracts    []contractJSON `json:"contracts"`
}

type contractJSON struct {
	Salt              salt     `json:"salt"`
	ContractAddress   string   `json:"contract_address"`
	AuxiliaryAccounts []string `json:"auxiliary_accounts"`
}

// salt serializes a 32-byte CREATE2 salt per the documented policy: a
// decimal integer when representable in 64 bits, otherwise 0x-prefixed
// 64-hex.
type salt [32]byte

func (s salt) MarshalJSON() ([]byte, error) {
	if fitsUint64(s) {
		var v uint64
		for i := 24; i < 32; i++ {
			v = v<<8 | uint64(s[i])
		}
		return json.Marshal(v)
	}
	return json.Marshal(fmt.Sprintf("0x%x", [32]byte(s)))
}

func fitsUint64(s salt) bool {
	for i := 0; i < 24; i++ {
		if s[i] != 0 {
			return false
		}
	}
	return true
}

// NewAccountReport adapts a slice of mining.AccountMiningResult into its
// wire shape, given the run's deployer/init-code-hash/depth parameters.
func NewAccountReport(deployer, initCodeHash string, depth uint32, results []mining.AccountMiningResult) AccountReport {
	contracts := make([]contractJSON, len(results))
	for i, r := range results {
		aux := make([]string, len(r.Auxiliary))
		for k, a := range r.Auxiliary {
			aux[k] = a.Hex()
		}
		contracts[i] = contractJSON{
			Salt:              salt(r.Salt),
			ContractAddress:   r.ContractAddress.Hex(),
			AuxiliaryAccounts: aux,
		}
	}
	return AccountReport{
		Deployer:     deployer,
		InitCodeHash: initCodeHash,
		TargetDepth:  depth,
		NumContracts: uint32(len(results)),
		Contracts:    contracts,
	}
}
