package project

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest is a SHA-256 sum; source.File.Hash converts to it directly.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Combine derives a key from content and parts. Each part is length
// prefixed, so ("ab","c") and ("a","bc") never collide. Order matters.
func Combine(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	h.Write(content[:])
	var n [binary.MaxVarintLen64]byte
	for _, p := range parts {
		h.Write(n[:binary.PutUvarint(n[:], uint64(len(p)))])
		h.Write(p)
	}
	var out Digest
	h.Sum(out[:0])
	return out
}
