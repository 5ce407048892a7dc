package project

import (
	"crypto/sha256"
	"fmt"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит ключ: H( content || part1 || part2 ... ).
// Порядок частей должен быть детерминированным.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint hashes the settings that change compiler output.
func (c Config) Fingerprint() Digest {
	return sha256.Sum256(fmt.Appendf(nil, "comparisons=%t;indent=%q;pyref=%t",
		c.Parse.Comparisons, c.Emit.Indent, c.Check.PythonReference))
}
