// Package nibble implements the prefix comparator the search engines race
// against: a hot-path predicate asking whether two 32-byte digests agree on
// their first N nibbles.
package nibble

// ShareNibbles reports whether a and b agree on their first n nibbles
// (n in 0..64 for 32-byte digests). It compares whole bytes first and
// short-circuits on the first mismatch; if n is odd it additionally checks
// the high nibble of the next byte. Correctness never depends on comparing
// the full digest.
func ShareNibbles(a, b [32]byte, n uint32) bool {
	if n > 64 {
		n = 64
	}
	wholeBytes := n / 2
	for i := uint32(0); i < wholeBytes; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	if n%2 == 1 {
		ai := a[wholeBytes] >> 4
		bi := b[wholeBytes] >> 4
		if ai != bi {
			return false
		}
	}
	return true
}

// ShareNibblesSlice is ShareNibbles for byte slices of arbitrary (but equal)
// length, used where callers hold digests as []byte rather than [32]byte
// (e.g. freshly computed keccak256 sums before they're boxed into a Digest).
func ShareNibblesSlice(a, b []byte, n uint32) bool {
	wholeBytes := int(n / 2)
	if wholeBytes > len(a) || wholeBytes > len(b) {
		return false
	}
	for i := 0; i < wholeBytes; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	if n%2 == 1 {
		if wholeBytes >= len(a) || wholeBytes >= len(b) {
			return false
		}
		if a[wholeBytes]>>4 != b[wholeBytes]>>4 {
			return false
		}
	}
	return true
}
