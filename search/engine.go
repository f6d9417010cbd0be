// Package search implements the prefix-matching search engines: a worker
// pool racing a deterministic sampler and prefix comparator against a
// reference digest, under a lock-free first-winner protocol.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/trieminer/trieminer/types"
)

// Derivation selects which hash a search engine races against: the
// storage-slot key for storage-mode mining or the account hash for
// account/CREATE2-mode mining. The engine itself is parametric in this
// choice; it never branches on mining mode beyond calling Derive.
type Derivation interface {
	// Derive computes the 32-byte digest for a candidate address.
	Derive(candidate [20]byte) types.Digest
}

// DerivationFunc adapts a plain function to the Derivation interface.
type DerivationFunc func(candidate [20]byte) types.Digest

// Derive implements Derivation.
func (f DerivationFunc) Derive(candidate [20]byte) types.Digest { return f(candidate) }

// Request bundles the parameters of a single engine invocation.
type Request struct {
	// Reference is the prefix to match candidates against.
	Reference types.Digest
	// Depth is the required nibble-prefix length, 1..64.
	Depth uint32
	// Derivation computes the digest a candidate is judged by.
	Derivation Derivation
	// SeedBase is the first attempt index this request may draw from.
	// Must be nonzero to keep the PRNG state nonzero per attempt.
	SeedBase uint64
	// AttemptsBudget is the number of attempts each worker performs before
	// giving up, i.e. worker k searches
	// [SeedBase+k*AttemptsBudget, SeedBase+(k+1)*AttemptsBudget).
	AttemptsBudget uint64
	// Parallelism is the number of workers (CPU) or the logical grid size
	// (GPU). Zero means "let the engine choose a default."
	Parallelism uint32
}

// Result is a successful match: the candidate address and its derived
// digest, which is guaranteed to share Request.Depth nibbles with
// Request.Reference.
type Result struct {
	Address types.Address
	Digest  types.Digest
}

// Kind enumerates the error kinds an engine or coordinator can surface.
// All are local to this module; none wrap transport or OS errors.
type Kind int

const (
	// KindExhausted means every worker consumed its budget without a match.
	KindExhausted Kind = iota
	// KindInvalidDepth means depth was outside 1..64.
	KindInvalidDepth
	// KindInvalidDeployer means a deployer address was not 20 bytes.
	KindInvalidDeployer
	// KindGpuUnavailable means no GPU engine is compiled into this binary.
	KindGpuUnavailable
	// KindGpuLaunchError means the GPU engine failed to launch or the
	// device reported an error mid-launch.
	KindGpuLaunchError
	// KindInternalInconsistency means the CPU and GPU engines disagreed on
	// the digest of identical input; this is always fatal.
	KindInternalInconsistency
)

func (k Kind) String() string {
	switch k {
	case KindExhausted:
		return "exhausted"
	case KindInvalidDepth:
		return "invalid_depth"
	case KindInvalidDeployer:
		return "invalid_deployer"
	case KindGpuUnavailable:
		return "gpu_unavailable"
	case KindGpuLaunchError:
		return "gpu_launch_error"
	case KindInternalInconsistency:
		return "internal_inconsistency"
	default:
		return "unknown"
	}
}

// Error is the error type every engine and coordinator in this module
// returns for its own failures; callers can inspect Kind with errors.As to
// decide on retry vs. abort policy. A cancelled or expired context is
// reported as ctx.Err() instead.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// ErrExhausted is returned (wrapped in *Error) when an engine runs out of
// budget without a match.
var ErrExhausted = &Error{Kind: KindExhausted}

// ErrGPUUnavailable is returned by the GPU engine when the binary was built
// without the "gpu" build tag. A build with the "gpu" tag never returns it;
// there a failed device launch is reported as KindGpuLaunchError.
var ErrGPUUnavailable = &Error{Kind: KindGpuUnavailable, Msg: "no GPU engine compiled into this binary"}

// IsExhausted reports whether err is (or wraps) an Exhausted error.
func IsExhausted(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindExhausted
	}
	return false
}

// ValidateDepth checks depth is in the required 1..64 range.
func ValidateDepth(depth uint32) error {
	if depth < 1 || depth > 64 {
		return &Error{Kind: KindInvalidDepth, Msg: fmt.Sprintf("depth %d outside 1..64", depth)}
	}
	return nil
}

// ValidateDeployer checks addr is exactly 20 bytes; Address is already
// fixed-size, so this exists for symmetry with the error-kind contract and
// for callers validating raw byte slices before boxing them.
func ValidateDeployer(b []byte) error {
	if len(b) != types.AddressLength {
		return &Error{Kind: KindInvalidDeployer, Msg: fmt.Sprintf("deployer must be %d bytes, got %d", types.AddressLength, len(b))}
	}
	return nil
}

// Engine is the contract both the CPU and GPU search implementations
// satisfy: given a Request, block until a match is found, the budget is
// exhausted, or ctx is cancelled, then return exactly one outcome.
type Engine interface {
	Search(ctx context.Context, req Request) (Result, error)
}
