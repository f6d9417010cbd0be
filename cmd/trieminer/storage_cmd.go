package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trieminer/trieminer/log"
	"github.com/trieminer/trieminer/mining"
	"github.com/trieminer/trieminer/search"
)

// storageFlags holds the parsed --storage subcommand flags.
type storageFlags struct {
	depth      uint64
	threads    uint64
	cuda       bool
	output     string
	globalSeed uint64
	budget     uint64
}

func parseStorageFlags(args []string) (storageFlags, bool, int) {
	var f storageFlags
	fs := newCustomFlagSet("storage")

	var depth uint64
	fs.Uint64Var(&depth, "depth", 4, "target nibble-prefix depth (1-64)")
	var threads uint64
	fs.Uint64Var(&threads, "threads", 0, "CPU worker count (default: hardware parallelism)")
	cuda := fs.Bool("cuda", false, "use the GPU search engine")
	output := fs.String("output", "", "write the JSON report here instead of stdout")
	var globalSeed uint64
	fs.Uint64Var(&globalSeed, "seed", 1, "global seed for the bootstrap sample and level seed bases")
	var budget uint64
	fs.Uint64Var(&budget, "attempts-budget", 10_000_000, "per-worker attempts budget passed to each level's search")

	if err := fs.Parse(args); err != nil {
		return f, true, 2
	}

	f = storageFlags{
		depth:      depth,
		threads:    threads,
		cuda:       *cuda,
		output:     *output,
		globalSeed: globalSeed,
		budget:     budget,
	}
	return f, false, 0
}

func runStorage(args []string) int {
	f, exit, code := parseStorageFlags(args)
	if exit {
		return code
	}

	logger := log.Default().Module("storage-miner")

	if f.depth < 1 || f.depth > 64 {
		logger.Error("invalid depth", "depth", f.depth)
		return 1
	}

	var engine search.Engine
	if f.cuda {
		gpu := search.NewGPUEngine(0, 0)
		if !gpu.Available() {
			logger.Error("--cuda requested but no GPU engine is compiled into this binary")
			return 1
		}
		engine = gpu
	} else {
		cfg := search.DefaultCPUConfig()
		if f.threads > 0 {
			cfg.Workers = int(f.threads)
		}
		engine = search.NewCPUEngine(cfg)
	}

	coord := mining.NewStorageCoordinator(engine)

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
	result, err := coord.Run(ctx, mining.StorageConfig{
		Depth:          uint32(f.depth),
		GlobalSeed:     f.globalSeed,
		AttemptsBudget: f.budget,
	})
	if err != nil {
		logger.Error("storage mining failed", "error", err)
		return 1
	}
	logger.Info("storage mining complete", "depth", f.depth, "elapsed", time.Since(start))

	report := NewStorageReport(result)
	return writeJSON(report, f.output)
}

func writeJSON(v any, outputPath string) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal report: %v\n", err)
		return 1
	}
	data = append(data, '\n')

	if outputPath == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			return 1
		}
		return 0
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write report to %s: %v\n", outputPath, err)
		return 1
	}
	return 0
}
