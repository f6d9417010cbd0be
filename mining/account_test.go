package mining

import (
	"context"
	"testing"

	"github.com/trieminer/trieminer/hash"
	"github.com/trieminer/trieminer/nibble"
	"github.com/trieminer/trieminer/search"
	"github.com/trieminer/trieminer/types"
)

func nicksDeployer() types.Address {
	return types.HexToAddress("0x4e59b44847b379578588920ca78fbf26c0b4956c")
}

func TestAccountCoordinatorDepthThreeSingleContract(t *testing.T) {
	engine := search.NewCPUEngine(search.CPUConfig{Workers: 4})
	coord := NewAccountCoordinator(engine)

	cfg := AccountConfig{
		Deployer:       nicksDeployer(),
		InitCodeHash:   hash.Keccak256Digest([]byte{}),
		NumContracts:   1,
		Depth:          3,
		GlobalSeed:     7,
		AttemptsBudget: 2_000_000,
	}

	results, err := coord.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	wantAddr := hash.Create2Address(cfg.Deployer, r.Salt, cfg.InitCodeHash)
	if r.ContractAddress != wantAddr {
		t.Errorf("contract address %s does not match create2 formula result %s", r.ContractAddress.Hex(), wantAddr.Hex())
	}
	wantHash := hash.AccountHash(r.ContractAddress)
	if r.ContractHash != wantHash {
		t.Errorf("contract hash %s does not match account_hash(contract_address) %s", r.ContractHash.Hex(), wantHash.Hex())
	}

	if len(r.Auxiliary) != int(cfg.Depth) {
		t.Fatalf("expected %d auxiliary addresses, got %d", cfg.Depth, len(r.Auxiliary))
	}

	contractHashArr := [32]byte(r.ContractHash)
	for k, aux := range r.Auxiliary {
		auxHash := hash.AccountHash(aux)
		auxArr := [32]byte(auxHash)
		if !nibble.ShareNibbles(contractHashArr, auxArr, cfg.Depth) {
			t.Errorf("auxiliary %d hash %s does not share %d nibbles with contract hash %s", k, auxHash.Hex(), cfg.Depth, r.ContractHash.Hex())
		}
	}
}

func TestAccountCoordinatorRejectsInvalidDepth(t *testing.T) {
	// Deployer is always a valid 20-byte Address by construction; deployer
	// byte-length validation happens where raw CLI input is parsed, before
	// it is ever boxed into a types.Address (see cmd/trieminer).
	engine := search.NewCPUEngine(search.CPUConfig{Workers: 2})
	coord := NewAccountCoordinator(engine)

	cfg := AccountConfig{
		Deployer:       types.Address{},
		InitCodeHash:   hash.Keccak256Digest([]byte{}),
		NumContracts:   1,
		Depth:          0,
		GlobalSeed:     1,
		AttemptsBudget: 10,
	}
	_, err := coord.Run(context.Background(), cfg)
	if err == nil {
		t.Fatalf("expected error for invalid depth")
	}
}

func TestAccountCoordinatorMultipleContractsInParallel(t *testing.T) {
	engine := search.NewCPUEngine(search.CPUConfig{Workers: 4})
	coord := NewAccountCoordinator(engine)

	cfg := AccountConfig{
		Deployer:       nicksDeployer(),
		InitCodeHash:   hash.Keccak256Digest([]byte("init")),
		NumContracts:   3,
		Depth:          1,
		GlobalSeed:     99,
		AttemptsBudget: 500_000,
	}

	results, err := coord.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	seen := map[types.Address]bool{}
	for i, r := range results {
		if seen[r.ContractAddress] {
			t.Errorf("contract %d reused an address already seen: %s", i, r.ContractAddress.Hex())
		}
		seen[r.ContractAddress] = true
	}
}
