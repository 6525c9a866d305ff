package directory

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// HashFunc maps a key to the start of its probe sequence.
type HashFunc func(key string) uint64

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// XXHash is the default hasher.
func XXHash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// FNV1a is 64-bit FNV-1a over the key bytes.
func FNV1a(key string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= fnvPrime64
	}
	return h
}

// HashByName resolves a configured hasher name.
func HashByName(name string) (HashFunc, error) {
	switch name {
	case "", "xxhash":
		return XXHash, nil
	case "fnv1a":
		return FNV1a, nil
	}
	return nil, fmt.Errorf("unknown hash %q", name)
}
