// Package sample implements the deterministic candidate-address generator
// the search engines draw from: an xorshift64* PRNG seeded per-worker,
// per-attempt, producing reproducible and (with overwhelming probability)
// disjoint candidate streams across workers.
package sample

// multiplier is the fixed odd constant xorshift64* multiplies its
// transformed state by before returning a draw.
const multiplier = 0x2545F4914F6CDD1D

// RNG is an xorshift64* generator. The zero value is invalid; construct with
// NewRNG.
type RNG struct {
	state uint64
}

// NewRNG constructs an RNG from a nonzero seed, panicking on seed 0 per the
// algorithm's invariant that state must never be zero.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		panic("sample: xorshift64* seed must not be zero")
	}
	return &RNG{state: seed}
}

// Next draws the next 64-bit pseudorandom value and advances the state.
func (r *RNG) Next() uint64 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	return x * multiplier
}

// CandidateAddress draws three 64-bit values (24 bytes) and returns the
// first 20 as a candidate address, matching the sampler contract: three
// draws yield 24 bytes of which the first 20 form the address.
func (r *RNG) CandidateAddress() [20]byte {
	var buf [24]byte
	putUint64(buf[0:8], r.Next())
	putUint64(buf[8:16], r.Next())
	putUint64(buf[16:24], r.Next())

	var addr [20]byte
	copy(addr[:], buf[:20])
	return addr
}

func putUint64(b []byte, v uint64) {
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}

// CandidateAt is a convenience that initializes an RNG at
// attemptIndex + 1 (the per-attempt seeding rule the search engine uses)
// and draws one candidate address from it.
func CandidateAt(attemptIndex uint64) [20]byte {
	return NewRNG(attemptIndex + 1).CandidateAddress()
}
