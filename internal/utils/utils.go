package utils

import (
	crand "crypto/rand"
	"math/big"
	"math/rand/v2"
)

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

const (
	RoomCodeLength = 4
	RoomCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateRoomCode draws RoomCodeLength independent uppercase letters.
func GenerateRoomCode() string {
	code := make([]byte, RoomCodeLength)
	for i := range RoomCodeLength {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(RoomCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = RoomCodeChars[rand.IntN(len(RoomCodeChars))]
			continue
		}
		code[i] = RoomCodeChars[n.Int64()]
	}
	return string(code)
}

// Sample returns n distinct elements of items chosen uniformly at random,
// in random order. items is not modified.
func Sample[T any](items []T, n int) []T {
	n = min(n, len(items))
	pool := append([]T(nil), items...)
	// partial Fisher-Yates: the first n slots end up uniformly sampled
	for i := range n {
		j := i + rand.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// Shuffled returns a uniformly random permutation of items.
func Shuffled[T any](items []T) []T {
	out := append([]T(nil), items...)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Choice picks one element uniformly. items must not be empty.
func Choice[T any](items []T) T {
	return items[rand.IntN(len(items))]
}
