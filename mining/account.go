package mining

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/trieminer/trieminer/hash"
	"github.com/trieminer/trieminer/log"
	"github.com/trieminer/trieminer/sample"
	"github.com/trieminer/trieminer/search"
	"github.com/trieminer/trieminer/types"
)

// AccountMiningResult is one mined contract: the CREATE2 salt that produced
// it, the resulting address and account hash, and the D auxiliary
// addresses whose account hashes share the target depth with it.
type AccountMiningResult struct {
	Salt            [32]byte
	ContractAddress types.Address
	ContractHash    types.Digest
	Auxiliary       []types.Address
}

// AccountConfig configures an account/CREATE2-mining run.
type AccountConfig struct {
	Deployer     types.Address
	InitCodeHash types.Digest
	// NumContracts is the number of independent contracts to mine.
	NumContracts uint32
	// Depth is the target nibble-prefix depth, 1..64, both for the salt
	// search against the contract's own anchor and for each auxiliary
	// address search against the resulting contract hash.
	Depth uint32
	// GlobalSeed seeds per-contract seed-space partitioning; must be
	// nonzero.
	GlobalSeed uint64
	// AttemptsBudget is passed through to the search engine per search.
	AttemptsBudget uint64
}

// AccountCoordinator mines CREATE2 salts and their auxiliary branches.
//
// Reference-anchor policy: each contract's own hash is the depth-D anchor
// for its own D auxiliary addresses (policy (b) among the candidates the
// mining engine could follow). A contract's hash trivially shares all of
// its own nibbles with itself, so depth-D mining is only meaningful
// against the *auxiliary* search, which is exactly what this coordinator
// does: the salt search targets a freshly sampled per-contract anchor, and
// only the resulting contract hash becomes the anchor for its auxiliaries.
type AccountCoordinator struct {
	engine search.Engine
	log    *log.Logger
}

// NewAccountCoordinator constructs a coordinator driving engine.
func NewAccountCoordinator(engine search.Engine) *AccountCoordinator {
	return &AccountCoordinator{engine: engine, log: log.Default().Module("create2-miner")}
}

// Run mines cfg.NumContracts contracts independently and in parallel,
// partitioning the seed space per contract index so concurrent searches
// never collide.
func (c *AccountCoordinator) Run(ctx context.Context, cfg AccountConfig) ([]AccountMiningResult, error) {
	if err := search.ValidateDepth(cfg.Depth); err != nil {
		return nil, err
	}
	if cfg.GlobalSeed == 0 {
		cfg.GlobalSeed = 1
	}

	c.log.Info("account mining started", "num_contracts", cfg.NumContracts, "depth", cfg.Depth, "deployer", cfg.Deployer.Hex())

	results := make([]AccountMiningResult, cfg.NumContracts)

	g, gctx := errgroup.WithContext(ctx)
	for idx := uint32(0); idx < cfg.NumContracts; idx++ {
		idx := idx
		g.Go(func() error {
			r, err := c.mineOne(gctx, cfg, idx)
			if err != nil {
				return fmt.Errorf("contract %d: %w", idx, err)
			}
			results[idx] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.log.Info("account mining finished", "num_contracts", cfg.NumContracts)
	return results, nil
}

// mineOne mines a single contract: first a salt whose resulting contract
// hash shares cfg.Depth nibbles with a freshly sampled per-contract anchor,
// then cfg.Depth auxiliary addresses sharing that contract hash's prefix.
func (c *AccountCoordinator) mineOne(ctx context.Context, cfg AccountConfig, idx uint32) (AccountMiningResult, error) {
	seedBase := contractSeedBase(cfg.GlobalSeed, idx)
	anchor := perContractAnchor(cfg.GlobalSeed, idx)

	saltDerivation := create2SaltDerivation(cfg.Deployer, cfg.InitCodeHash)
	saltReq := search.Request{
		Reference:      anchor,
		Depth:          cfg.Depth,
		Derivation:     saltDerivation,
		SeedBase:       seedBase,
		AttemptsBudget: cfg.AttemptsBudget,
	}

	saltResult, err := c.engine.Search(ctx, saltReq)
	if err != nil {
		return AccountMiningResult{}, fmt.Errorf("salt search: %w", err)
	}

	// The candidate address the salt search returned encodes the 32-byte
	// salt via its low 20 bytes; expand it the same way the derivation did.
	salt := saltFromCandidate(saltResult.Address)
	contractAddr := hash.Create2Address(cfg.Deployer, salt, cfg.InitCodeHash)
	contractHash := hash.AccountHash(contractAddr)

	auxDerivation := accountHashDerivation()
	auxSeedBase := seedBase + 1
	auxiliary := make([]types.Address, 0, cfg.Depth)
	for k := uint32(0); k < cfg.Depth; k++ {
		req := search.Request{
			Reference:      contractHash,
			Depth:          cfg.Depth,
			Derivation:     auxDerivation,
			SeedBase:       auxSeedBase + uint64(k)*cfg.AttemptsBudget,
			AttemptsBudget: cfg.AttemptsBudget,
		}
		result, err := c.engine.Search(ctx, req)
		if err != nil {
			return AccountMiningResult{}, fmt.Errorf("auxiliary %d: %w", k, err)
		}
		auxiliary = append(auxiliary, result.Address)
	}

	return AccountMiningResult{
		Salt:            salt,
		ContractAddress: contractAddr,
		ContractHash:    contractHash,
		Auxiliary:       auxiliary,
	}, nil
}

// create2SaltDerivation treats the search engine's 20-byte candidate as the
// low 20 bytes of a 32-byte salt, computes the resulting CREATE2 address,
// and returns its account hash -- the digest the salt search's prefix
// comparator judges against the per-contract anchor.
func create2SaltDerivation(deployer types.Address, initCodeHash types.Digest) search.Derivation {
	return search.DerivationFunc(func(candidate [20]byte) types.Digest {
		salt := saltFromCandidate(types.Address(candidate))
		contractAddr := hash.Create2Address(deployer, salt, initCodeHash)
		return hash.AccountHash(contractAddr)
	})
}

// accountHashDerivation is the plain account-hash derivation used for
// auxiliary-address mining.
func accountHashDerivation() search.Derivation {
	return search.DerivationFunc(func(candidate [20]byte) types.Digest {
		return hash.AccountHash(types.Address(candidate))
	})
}

// saltFromCandidate expands a 20-byte search candidate into a 32-byte
// CREATE2 salt, zero-extended on the left -- the convention the package
// uses since the search engine's candidates are 20 bytes but CREATE2
// accepts a full 32-byte salt.
func saltFromCandidate(candidate types.Address) [32]byte {
	var salt [32]byte
	copy(salt[12:], candidate[:])
	return salt
}

// perContractAnchor samples a reference digest unique to contract idx,
// giving each contract's salt search its own, otherwise arbitrary, target.
func perContractAnchor(globalSeed uint64, idx uint32) types.Digest {
	addr := types.Address(sample.CandidateAt(globalSeed + uint64(idx)*7919 + 1))
	return hash.AccountHash(addr)
}

// contractSeedBase partitions the attempt-index space across contracts so
// concurrent outer-level searches never sample the same attempts.
func contractSeedBase(globalSeed uint64, idx uint32) uint64 {
	const perContractSpace = 1 << 40
	return globalSeed + uint64(idx)*perContractSpace + 1
}
