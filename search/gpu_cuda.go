//go:build gpu

// Build with: CGO_ENABLED=1 go build -tags gpu
// Requires a CUDA toolchain and the trieminer/gpukernel library installed.

package search

/*
#cgo CFLAGS: -I${SRCDIR}/../cuda/include
#cgo LDFLAGS: -L${SRCDIR}/../cuda/lib -ltrieminer_gpukernel -lcudart

#include <trieminer/gpukernel.h>
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"unsafe"

	"github.com/trieminer/trieminer/types"
)

// GPUEngine launches the keccak-prefix search as a grid of blocks x threads
// on a CUDA device. Unlike the CPU engine, a launch is an atomic unit of
// work: the kernel runs to completion of its attempts budget before control
// returns, so cancellation only prevents the *next* launch, never aborts
// one in flight.
type GPUEngine struct {
	blocks  int
	threads int
}

// NewGPUEngine constructs a GPUEngine with the given grid shape. A zero
// value for either dimension falls back, at launch, to a fixed default of
// 1 block or 256 threads per block; the device is not queried.
func NewGPUEngine(blocks, threads int) *GPUEngine {
	return &GPUEngine{blocks: blocks, threads: threads}
}

// Available reports whether this binary was built with CUDA support.
func (e *GPUEngine) Available() bool { return true }

// Search launches one kernel grid covering req.AttemptsBudget attempts per
// thread, starting at req.SeedBase. It blocks until the device synchronizes
// and reports its own found-flag and result slot, mirroring the CPU
// engine's first-winner protocol in device memory.
func (e *GPUEngine) Search(ctx context.Context, req Request) (Result, error) {
	if err := ValidateDepth(req.Depth); err != nil {
		return Result{}, err
	}
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	blocks := e.blocks
	threads := e.threads
	if req.Parallelism > 0 {
		threads = int(req.Parallelism)
	}
	if blocks <= 0 {
		blocks = 1
	}
	if threads <= 0 {
		threads = 256
	}

	var cRef [32]C.uint8_t
	refBytes := req.Reference.Bytes()
	for i, b := range refBytes {
		cRef[i] = C.uint8_t(b)
	}

	var cFound C.int
	var cAddr [20]C.uint8_t

	ret := C.trieminer_search_launch(
		(*C.uint8_t)(unsafe.Pointer(&cRef[0])),
		C.uint32_t(req.Depth),
		C.uint64_t(req.SeedBase),
		C.uint64_t(req.AttemptsBudget),
		C.int(blocks),
		C.int(threads),
		&cFound,
		(*C.uint8_t)(unsafe.Pointer(&cAddr[0])),
	)
	if ret != 0 {
		return Result{}, &Error{Kind: KindGpuLaunchError, Msg: "device launch failed"}
	}
	if cFound == 0 {
		return Result{}, ErrExhausted
	}

	var addr types.Address
	for i := range addr {
		addr[i] = byte(cAddr[i])
	}
	digest := req.Derivation.Derive([20]byte(addr))
	return Result{Address: addr, Digest: digest}, nil
}

// VerifyStorageKey is the verification entry point the spec requires for
// catching CPU/GPU divergence: a single-thread kernel computing a
// storage-key for a supplied address and slot, so tests can compare it
// bit-for-bit against the CPU-side hash package.
func (e *GPUEngine) VerifyStorageKey(addr [20]byte, slot [32]byte) ([32]byte, error) {
	var cAddr [20]C.uint8_t
	var cSlot [32]C.uint8_t
	for i, b := range addr {
		cAddr[i] = C.uint8_t(b)
	}
	for i, b := range slot {
		cSlot[i] = C.uint8_t(b)
	}

	var cOut [32]C.uint8_t
	ret := C.trieminer_verify_storage_key(
		(*C.uint8_t)(unsafe.Pointer(&cAddr[0])),
		(*C.uint8_t)(unsafe.Pointer(&cSlot[0])),
		(*C.uint8_t)(unsafe.Pointer(&cOut[0])),
	)
	if ret != 0 {
		return [32]byte{}, &Error{Kind: KindGpuLaunchError, Msg: "verification kernel failed"}
	}

	var out [32]byte
	for i := range out {
		out[i] = byte(cOut[i])
	}
	return out, nil
}
