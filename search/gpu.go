//go:build !gpu

package search

import "context"

// GPUEngine is the GPU search engine. This build (no "gpu" tag, no cgo CUDA
// toolchain required) always reports GPU support as unavailable, so the
// module builds and runs CPU-only by default; see gpu_cuda.go for the real
// implementation under the "gpu" build tag.
type GPUEngine struct{}

// NewGPUEngine constructs the unavailable GPU engine stub. blocks and
// threads are accepted (and ignored) so callers compile identically
// whether or not this binary was built with the "gpu" tag; see
// gpu_cuda.go for the real grid-shape-sensitive constructor.
func NewGPUEngine(blocks, threads int) *GPUEngine { return &GPUEngine{} }

// Search always returns ErrGPUUnavailable in this build.
func (e *GPUEngine) Search(ctx context.Context, req Request) (Result, error) {
	return Result{}, ErrGPUUnavailable
}

// Available reports whether a real GPU engine is compiled into this binary.
func (e *GPUEngine) Available() bool { return false }

// VerifyStorageKey is the verification entry point the spec requires for
// catching CPU/GPU divergence: a single-thread kernel computing a
// storage-key on a supplied address. This build has no device, so it always
// reports unavailability.
func (e *GPUEngine) VerifyStorageKey(addr [20]byte, slot [32]byte) ([32]byte, error) {
	return [32]byte{}, ErrGPUUnavailable
}
