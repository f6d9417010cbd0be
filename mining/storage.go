// Package mining implements the two coordinators that drive the search
// engines toward worst-case Merkle Patricia Trie branches: storage-mode,
// which grows a chain of storage-slot keys all sharing a fixed target
// nibble-prefix depth with one another, and account/CREATE2-mode, which
// mines contract addresses with deep per-contract auxiliary branches.
package mining

import (
	"context"
	"fmt"

	"github.com/trieminer/trieminer/hash"
	"github.com/trieminer/trieminer/log"
	"github.com/trieminer/trieminer/sample"
	"github.com/trieminer/trieminer/search"
	"github.com/trieminer/trieminer/types"
)

// StorageKeyPair is one (address, storage_key) entry in a mined chain.
type StorageKeyPair struct {
	Address    types.Address
	StorageKey types.Digest
}

// StorageMiningResult is the ordered list a storage-mining run produces: a
// chain of length Depth+1 whose entries pairwise share the first Depth
// nibbles of their storage keys.
type StorageMiningResult struct {
	Depth   uint32
	Entries []StorageKeyPair
}

// StorageConfig configures a storage-mining run.
type StorageConfig struct {
	// Depth is the target nibble-prefix depth, 1..64.
	Depth uint32
	// GlobalSeed seeds the bootstrap address sample and each level's
	// seed_base; must be nonzero.
	GlobalSeed uint64
	// AttemptsBudget is passed through to the search engine per level.
	AttemptsBudget uint64
	// Slot is the storage slot index the keys are derived against.
	Slot uint64
}

// StorageCoordinator runs the storage-mining algorithm described for the
// mining engine: a fixed reference anchor established at bootstrap, with
// every level searched at the full target depth against that same anchor
// so all emitted keys pairwise share the full target depth, not just the
// depth of the level that produced them.
type StorageCoordinator struct {
	engine search.Engine
	log    *log.Logger
}

// NewStorageCoordinator constructs a coordinator driving engine.
func NewStorageCoordinator(engine search.Engine) *StorageCoordinator {
	return &StorageCoordinator{engine: engine, log: log.Default().Module("storage-miner")}
}

// Run executes the bootstrap-then-ladder algorithm: sample one address to
// fix the reference anchor, then invoke the search engine cfg.Depth times,
// each search run at the full target depth against that same anchor,
// appending each find. The anchor is retained unchanged across all levels,
// and every level is searched at cfg.Depth (not the level index -- only
// the level varies the seed-space partition) so every emitted key shares
// the full target depth with every other.
func (c *StorageCoordinator) Run(ctx context.Context, cfg StorageConfig) (StorageMiningResult, error) {
	if err := search.ValidateDepth(cfg.Depth); err != nil {
		return StorageMiningResult{}, err
	}
	if cfg.GlobalSeed == 0 {
		cfg.GlobalSeed = 1
	}

	derivation := storageKeyDerivation(cfg.Slot)

	bootstrapAddr := bootstrapAddress(cfg.GlobalSeed)
	reference := derivation.Derive(bootstrapAddr)

	entries := make([]StorageKeyPair, 0, cfg.Depth+1)
	entries = append(entries, StorageKeyPair{Address: bootstrapAddr, StorageKey: reference})

	c.log.Info("storage mining started", "depth", cfg.Depth, "global_seed", cfg.GlobalSeed, "reference", reference.Hex())

	for level := uint32(1); level <= cfg.Depth; level++ {
		seedBase := seedBaseForLevel(cfg.GlobalSeed, level)
		req := search.Request{
			Reference:      reference,
			Depth:          cfg.Depth,
			Derivation:     derivation,
			SeedBase:       seedBase,
			AttemptsBudget: cfg.AttemptsBudget,
		}

		result, err := c.engine.Search(ctx, req)
		if err != nil {
			return StorageMiningResult{}, fmt.Errorf("level %d: %w", level, err)
		}

		entries = append(entries, StorageKeyPair{Address: result.Address, StorageKey: result.Digest})
		c.log.Debug("storage level mined", "level", level, "address", result.Address.Hex())
	}

	c.log.Info("storage mining finished", "depth", cfg.Depth, "entries", len(entries))
	return StorageMiningResult{Depth: cfg.Depth, Entries: entries}, nil
}

// storageKeyDerivation returns a Derivation computing storage keys at a
// fixed slot, the function the search engine is parametric over for
// storage-mode mining.
func storageKeyDerivation(slot uint64) search.Derivation {
	return search.DerivationFunc(func(candidate [20]byte) types.Digest {
		return hash.StorageKeyUint64(types.Address(candidate), slot)
	})
}

// bootstrapAddress samples the single address that establishes the chain's
// fixed reference anchor.
func bootstrapAddress(globalSeed uint64) types.Address {
	return types.Address(sample.CandidateAt(globalSeed))
}

// seedBaseForLevel derives a nonzero, level-distinct seed base so
// consecutive levels of the same run never sample the same attempt range.
// Levels are 2^40 attempt indices apart, so their ranges stay disjoint as
// long as workers * AttemptsBudget is below that.
func seedBaseForLevel(globalSeed uint64, level uint32) uint64 {
	const perLevelSpace = 1 << 40
	return globalSeed*1_000_003 + uint64(level)*perLevelSpace + 1
}
