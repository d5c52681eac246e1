package app

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	// AccessCodeLength is the number of characters in a generated access code.
	AccessCodeLength = 8
	// AccessCodeAlphabet holds the 62 characters codes are drawn from.
	AccessCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// CodeGenerator produces access codes for stored results.
type CodeGenerator interface {
	Generate() (string, error)
}

// RandomCodeGenerator draws every character uniformly and independently.
// Uniqueness is left to the result store.
type RandomCodeGenerator struct {
	source io.Reader
}

func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{source: rand.Reader}
}

// NewRandomCodeGeneratorWithSource is test-only for deterministic codes.
func NewRandomCodeGeneratorWithSource(source io.Reader) *RandomCodeGenerator {
	return &RandomCodeGenerator{source: source}
}

func (g *RandomCodeGenerator) Generate() (string, error) {
	max := big.NewInt(int64(len(AccessCodeAlphabet)))
	code := make([]byte, AccessCodeLength)
	for i := range code {
		n, err := rand.Int(g.source, max)
		if err != nil {
			return "", fmt.Errorf("generate access code: %w", err)
		}
		code[i] = AccessCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
