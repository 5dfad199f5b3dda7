package domain

import (
	"errors"       // Sentinel errors
	"math/rand/v2" // Random id draws
	"strconv"      // Id formatting
)

const (
	idPrefix      = "TX"
	idMin         = 1000
	idMax         = 9999
	idRandomTries = 64
)

// ErrIDSpaceExhausted is returned when every TX1000..TX9999 id is taken.
var ErrIDSpaceExhausted = errors.New("transaction id space exhausted")

// IDSource hands out record ids.
type IDSource interface {
	Next() (string, error)
}

// IDGenerator produces TX#### ids, re-rolling on collision with ids reported
// by the taken predicate.
type IDGenerator struct {
	intn  func(n int) int      // Random source, [0, n)
	taken func(id string) bool // Collision check, may be nil
}

// NewIDGenerator returns a generator. A nil intn uses math/rand/v2.
func NewIDGenerator(intn func(n int) int, taken func(id string) bool) *IDGenerator {
	if intn == nil {
		intn = rand.IntN
	}
	return &IDGenerator{intn: intn, taken: taken}
}

// Next returns an id not reported as taken.
func (g *IDGenerator) Next() (string, error) {
	span := idMax - idMin + 1
	for i := 0; i < idRandomTries; i++ {
		id := formatID(idMin + g.intn(span))
		if !g.isTaken(id) {
			return id, nil
		}
	}

	// Dense id space: walk every slot once from a random offset.
	start := g.intn(span)
	for i := 0; i < span; i++ {
		id := formatID(idMin + (start+i)%span)
		if !g.isTaken(id) {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}

func (g *IDGenerator) isTaken(id string) bool {
	return g.taken != nil && g.taken(id)
}

func formatID(n int) string {
	return idPrefix + strconv.Itoa(n)
}
