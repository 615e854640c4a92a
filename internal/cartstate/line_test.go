package cartstate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, qty int) Line {
	return Line{
		ProductID: id,
		Title:     "Bird " + id,
		Price:     decimal.RequireFromString("4.50"),
		Quantity:  qty,
	}
}

func TestSanitizeDropsInvalidLines(t *testing.T) {
	in := []Line{
		line("a", 2),
		line("", 3),
		line("b", 0),
		line("c", -1),
		line("d", 1),
	}

	out := sanitize(in)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ProductID)
	assert.Equal(t, "d", out[1].ProductID)
}

func TestSanitizeIsIdempotent(t *testing.T) {
	in := []Line{line("a", 2), line("", 1), line("b", 1)}

	once := sanitize(in)
	twice := sanitize(once)

	assert.Equal(t, once, twice)
}

func TestDedupeSumsIntoFirstOccurrence(t *testing.T) {
	in := []Line{line("a", 2), line("b", 1), line("a", 3)}

	out := dedupe(in)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ProductID)
	assert.Equal(t, 5, out[0].Quantity)
	assert.Equal(t, "b", out[1].ProductID)
	assert.Equal(t, 1, out[1].Quantity)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(nil))
	assert.Equal(t, 6, countLines([]Line{line("a", 2), line("b", 4)}))
}

func TestMergeLinesServerAuthoritative(t *testing.T) {
	server := []Line{line("a", 2), line("b", 1)}
	local := []Line{line("b", 3), line("c", 1)}

	out := mergeLines(server, local)

	require.Len(t, out, 3)
	// server ordering first, local-only lines appended
	assert.Equal(t, "a", out[0].ProductID)
	assert.Equal(t, 2, out[0].Quantity)
	assert.Equal(t, "b", out[1].ProductID)
	assert.Equal(t, 4, out[1].Quantity)
	assert.Equal(t, "c", out[2].ProductID)
	assert.Equal(t, 1, out[2].Quantity)
}

func TestMergeLinesDoesNotMutateInputs(t *testing.T) {
	server := []Line{line("a", 2)}
	local := []Line{line("a", 3)}

	_ = mergeLines(server, local)

	assert.Equal(t, 2, server[0].Quantity)
	assert.Equal(t, 3, local[0].Quantity)
}

func TestMergeLinesEmptySides(t *testing.T) {
	local := []Line{line("x", 1)}

	out := mergeLines(nil, local)
	require.Len(t, out, 1)
	assert.Equal(t, "x", out[0].ProductID)

	out = mergeLines(local, nil)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Quantity)
}

func TestEntriesCarryIDAndQuantityOnly(t *testing.T) {
	out := entries([]Line{line("a", 2), line("b", 1)})

	require.Len(t, out, 2)
	assert.Equal(t, Entry{ID: "a", Quantity: 2}, out[0])
	assert.Equal(t, Entry{ID: "b", Quantity: 1}, out[1])
}
