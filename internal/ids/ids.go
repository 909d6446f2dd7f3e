// Package ids generates record identities.
package ids

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
)

// Generator produces collision-resistant record identities.
type Generator interface {
	New() string
}

// Supported identity formats.
const (
	FormatUUID   = "uuid"
	FormatNanoID = "nanoid"
)

// nanoAlphabet avoids '-' and '_' so ids never look like CLI flags.
const nanoAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// DefaultNanoIDLength keeps ids short enough to type.
const DefaultNanoIDLength = 12

// UUIDGenerator returns random (v4) UUID strings.
type UUIDGenerator struct{}

// New returns a new UUID string.
func (UUIDGenerator) New() string {
	return uuid.New().String()
}

// NanoIDGenerator returns short lowercase alphanumeric ids.
type NanoIDGenerator struct {
	gen func() string
}

// NewNanoIDGenerator builds a generator for ids of the given length.
func NewNanoIDGenerator(length int) (*NanoIDGenerator, error) {
	if length <= 0 {
		length = DefaultNanoIDLength
	}
	gen, err := nanoid.CustomASCII(nanoAlphabet, length)
	if err != nil {
		return nil, fmt.Errorf("failed to create nanoid generator: %w", err)
	}
	return &NanoIDGenerator{gen: gen}, nil
}

// New returns a new nanoid.
func (g *NanoIDGenerator) New() string {
	return g.gen()
}

// ForFormat returns the generator registered under format.
func ForFormat(format string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatUUID:
		return UUIDGenerator{}, nil
	case FormatNanoID:
		return NewNanoIDGenerator(DefaultNanoIDLength)
	default:
		return nil, fmt.Errorf("unknown id format %q (use %s or %s)", format, FormatUUID, FormatNanoID)
	}
}

// Sequence hands out predictable ids ("<prefix>-1", "<prefix>-2", ...).
// Used where deterministic identities are needed, e.g. fixtures.
type Sequence struct {
	Prefix string
	n      int
}

// New returns the next id in the sequence.
func (s *Sequence) New() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}
