package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trieminer/trieminer/hash"
	"github.com/trieminer/trieminer/log"
	"github.com/trieminer/trieminer/mining"
	"github.com/trieminer/trieminer/search"
	"github.com/trieminer/trieminer/types"
)

type create2Flags struct {
	depth          uint64
	numContracts   uint64
	deployer       string
	initCode       string
	accountsOutput string
	globalSeed     uint64
	budget         uint64
}

func parseCreate2Flags(args []string) (create2Flags, bool, int) {
	var f create2Flags
	fs := newCustomFlagSet("create2")

	var depth uint64
	fs.Uint64Var(&depth, "depth", 3, "target nibble-prefix depth (1-64)")
	var numContracts uint64
	fs.Uint64Var(&numContracts, "num-contracts", 1, "number of contracts to mine")
	deployer := fs.String("deployer", "0x4e59b44847b379578588920ca78fbf26c0b4956c", "CREATE2 deployer address (Nick's factory by default)")
	initCode := fs.String("init-code", "0x", "init code, hex-encoded; its keccak256 is the init-code hash")
	accountsOutput := fs.String("accounts-output", "", "write the JSON report here instead of stdout")
	var globalSeed uint64
	fs.Uint64Var(&globalSeed, "seed", 1, "global seed for per-contract seed-space partitioning")
	var budget uint64
	fs.Uint64Var(&budget, "attempts-budget", 10_000_000, "per-worker attempts budget passed to each search")

	if err := fs.Parse(args); err != nil {
		return f, true, 2
	}

	f = create2Flags{
		depth:          depth,
		numContracts:   numContracts,
		deployer:       *deployer,
		initCode:       *initCode,
		accountsOutput: *accountsOutput,
		globalSeed:     globalSeed,
		budget:         budget,
	}
	return f, false, 0
}

func runCreate2(args []string) int {
	f, exit, code := parseCreate2Flags(args)
	if exit {
		return code
	}

	logger := log.Default().Module("create2-miner")

	if f.depth < 1 || f.depth > 64 {
		logger.Error("invalid depth", "depth", f.depth)
		return 1
	}

	deployerBytes := hexBytes(f.deployer)
	if err := search.ValidateDeployer(deployerBytes); err != nil {
		logger.Error("invalid deployer", "deployer", f.deployer, "error", err)
		return 1
	}
	deployer := types.BytesToAddress(deployerBytes)

	initCodeHash := hash.Keccak256Digest(hexBytes(f.initCode))

	engine := search.NewCPUEngine(search.DefaultCPUConfig())
	coord := mining.NewAccountCoordinator(engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received interrupt, cancelling run")
		cancel()
	}()

	start := time.Now()
	results, err := coord.Run(ctx, mining.AccountConfig{
		Deployer:       deployer,
		InitCodeHash:   initCodeHash,
		NumContracts:   uint32(f.numContracts),
		Depth:          uint32(f.depth),
		GlobalSeed:     f.globalSeed,
		AttemptsBudget: f.budget,
	})
	if err != nil {
		logger.Error("account mining failed", "error", err)
		return 1
	}
	logger.Info("account mining complete", "num_contracts", f.numContracts, "elapsed", time.Since(start))

	report := NewAccountReport(deployer.Hex(), initCodeHash.Hex(), uint32(f.depth), results)
	return writeJSON(report, f.accountsOutput)
}

// hexBytes decodes a "0x"-prefixed (or bare) hex string into bytes. Unlike
// types.Address/Digest parsing, this does not pad or truncate: the raw
// decoded length is what ValidateDeployer and Keccak256 see, which is the
// point -- a malformed deployer must be caught, not silently coerced.
// Malformed input (odd length or a non-hex digit) decodes to nil.
func hexBytes(s string) []byte {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		return nil
	}
	b := make([]byte, len(s)/2)
	for i := range b {
		hi := hexDigit(s[i*2])
		lo := hexDigit(s[i*2+1])
		if hi < 0 || lo < 0 {
			return nil
		}
		b[i] = byte(hi<<4 | lo)
	}
	return b
}

func hexDigit(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

