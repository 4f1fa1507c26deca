// Package refgen produces booking references: 8 characters drawn uniformly
// from A-Z and 0-9. The generator keeps no state of its own; uniqueness is
// guaranteed only against the exclusion set the caller supplies, which must
// come from the live store at call time.
package refgen

import (
	"math/rand"
	"strings"
	"time"
)

const (
	Length  = 8
	charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type Generator struct {
	rng *rand.Rand
}

// New seeds from the clock. Tests use NewWithSource for determinism.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

func NewWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate returns a reference absent from existing. The retry loop is
// bounded only by the exclusion check: with 36^8 possible references a
// collision is vanishingly rare, so looping until a free one turns up is
// both correct and effectively constant-time.
func (g *Generator) Generate(existing map[string]struct{}) string {
	for {
		ref := g.next()
		if _, taken := existing[ref]; !taken {
			return ref
		}
	}
}

func (g *Generator) next() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(charset[g.rng.Intn(len(charset))])
	}
	return b.String()
}
