package domain

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^TX\d{4}$`)

func TestIDGenerator_Format(t *testing.T) {
	g := NewIDGenerator(nil, nil)
	for i := 0; i < 200; i++ {
		id, err := g.Next()
		require.NoError(t, err)
		assert.Regexp(t, idPattern, id)
	}
}

func TestIDGenerator_Bounds(t *testing.T) {
	low := NewIDGenerator(func(int) int { return 0 }, nil)
	id, err := low.Next()
	require.NoError(t, err)
	assert.Equal(t, "TX1000", id)

	high := NewIDGenerator(func(n int) int { return n - 1 }, nil)
	id, err = high.Next()
	require.NoError(t, err)
	assert.Equal(t, "TX9999", id)
}

func TestIDGenerator_RerollsOnCollision(t *testing.T) {
	rolls := []int{0, 0, 1}
	intn := func(int) int {
		n := rolls[0]
		rolls = rolls[1:]
		return n
	}
	taken := map[string]bool{"TX1000": true}

	g := NewIDGenerator(intn, func(id string) bool { return taken[id] })
	id, err := g.Next()
	require.NoError(t, err)
	assert.Equal(t, "TX1001", id)
}

func TestIDGenerator_ScansWhenRandomKeepsColliding(t *testing.T) {
	// Every id except TX9999 is taken and the random source is stuck on 0.
	g := NewIDGenerator(func(int) int { return 0 }, func(id string) bool { return id != "TX9999" })
	id, err := g.Next()
	require.NoError(t, err)
	assert.Equal(t, "TX9999", id)
}

func TestIDGenerator_Exhausted(t *testing.T) {
	g := NewIDGenerator(nil, func(string) bool { return true })
	_, err := g.Next()
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
}

func TestIDGenerator_UniqueAcrossManyDraws(t *testing.T) {
	seen := map[string]bool{}
	g := NewIDGenerator(nil, func(id string) bool { return seen[id] })
	for i := 0; i < 9000; i++ {
		id, err := g.Next()
		require.NoError(t, err, "draw %s", strconv.Itoa(i))
		require.False(t, seen[id])
		seen[id] = true
	}
	_, err := g.Next()
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
}
