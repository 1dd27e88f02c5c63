// Package idgen issues short, URL-safe review identifiers.
package idgen

import (
	"fmt"
	"time"

	"github.com/teris-io/shortid"
)

// Generator issues unique review identifiers.
type Generator interface {
	Generate() (string, error)
}

// ShortID is a Generator backed by github.com/teris-io/shortid. Each process
// should use a distinct worker number.
type ShortID struct {
	sid *shortid.Shortid
}

// NewShortID creates a generator for the given worker (0-31).
func NewShortID(worker uint8) (*ShortID, error) {
	sid, err := shortid.New(worker, shortid.DefaultABC, uint64(time.Now().UnixNano()))
	if err != nil {
		return nil, fmt.Errorf("create shortid generator: %w", err)
	}
	return &ShortID{sid: sid}, nil
}

// Generate returns a new identifier.
func (g *ShortID) Generate() (string, error) {
	id, err := g.sid.Generate()
	if err != nil {
		return "", fmt.Errorf("generate review id: %w", err)
	}
	return id, nil
}
