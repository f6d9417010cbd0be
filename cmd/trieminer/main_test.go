package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestRunUnknownSubcommand(t *testing.T) {
	if code := run([]string{"bogus"}); code != 2 {
		t.Errorf("run([bogus]) = %d, want 2", code)
	}
}

func TestRunNoArgs(t *testing.T) {
	if code := run(nil); code != 2 {
		t.Errorf("run(nil) = %d, want 2", code)
	}
}

func TestRunVersion(t *testing.T) {
	if code := run([]string{"version"}); code != 0 {
		t.Errorf("run([version]) = %d, want 0", code)
	}
}

func TestRunStorageEndToEnd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.json")

	code := run([]string{
		"storage",
		"--depth", "2",
		"--threads", "4",
		"--attempts-budget", "2000000",
		"--output", out,
	})
	if code != 0 {
		t.Fatalf("run(storage) = %d, want 0", code)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	var report StorageReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("failed to unmarshal report: %v", err)
	}
	if report.Depth != 2 {
		t.Errorf("report.Depth = %d, want 2", report.Depth)
	}
	if len(report.Entries) != 3 {
		t.Errorf("len(report.Entries) = %d, want 3", len(report.Entries))
	}
}

func TestRunStorageInvalidDepth(t *testing.T) {
	code := run([]string{"storage", "--depth", "0"})
	if code == 0 {
		t.Errorf("run(storage --depth 0) = 0, want nonzero")
	}
}

func TestRunCreate2EndToEnd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "accounts.json")

	code := run([]string{
		"create2",
		"--depth", "1",
		"--num-contracts", "2",
		"--attempts-budget", "500000",
		"--accounts-output", out,
	})
	if code != 0 {
		t.Fatalf("run(create2) = %d, want 0", code)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	var report AccountReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("failed to unmarshal report: %v", err)
	}
	if report.NumContracts != 2 {
		t.Errorf("report.NumContracts = %d, want 2", report.NumContracts)
	}
	if len(report.Contracts) != 2 {
		t.Fatalf("len(report.Contracts) = %d, want 2", len(report.Contracts))
	}
	for i, c := range report.Contracts {
		if len(c.AuxiliaryAccounts) != 1 {
			t.Errorf("contract %d: len(AuxiliaryAccounts) = %d, want 1", i, len(c.AuxiliaryAccounts))
		}
	}
}

func TestRunCreate2InvalidDeployer(t *testing.T) {
	code := run([]string{"create2", "--depth", "1", "--deployer", "0xnotahexaddress"})
	if code == 0 {
		t.Errorf("expected nonzero exit for invalid deployer")
	}
}
