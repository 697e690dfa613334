package provenance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/teamsync/pkg/logging"
	"github.com/agentstation/teamsync/pkg/roster"
)

const (
	barrierHash = "220459858b342ec880d484160eb63319b7b83af8"
	originHash  = "0123456789abcdef0123456789abcdef01234567"
	recentHash  = "89abcdef0123456789abcdef0123456789abcdef"
)

func TestCommitForPrefersNewestSource(t *testing.T) {
	history := NewHistory(logging.NewNopLogger(),
		Source{
			HashByLine: []string{recentHash},
			LineOf:     map[roster.Handle]int{"alice": 0},
		},
		Source{
			HashByLine: []string{originHash},
			LineOf:     map[roster.Handle]int{"alice": 0},
		},
	)

	hash, ok := history.CommitFor("alice")
	assert.True(t, ok)
	assert.Equal(t, recentHash, hash)
}

func TestCommitForSkipsBarriers(t *testing.T) {
	history := NewHistory(logging.NewNopLogger(),
		// Current blame attributes the line to a bulk reformat.
		Source{
			HashByLine: []string{barrierHash, barrierHash},
			LineOf:     map[roster.Handle]int{"alice": 1},
		},
		Source{
			HashByLine: []string{originHash},
			LineOf:     map[roster.Handle]int{"alice": 0},
		},
	)

	hash, ok := history.CommitFor("alice")
	assert.True(t, ok)
	assert.Equal(t, originHash, hash)
}

func TestCommitForUnresolvedWhenAllBarriers(t *testing.T) {
	history := NewHistory(logging.NewNopLogger(),
		Source{
			HashByLine: []string{barrierHash},
			LineOf:     map[roster.Handle]int{"alice": 0},
		},
		Source{
			HashByLine: []string{"f7da7fa0c3ab40b79a2358861831b925d2cb5a6b"},
			LineOf:     map[roster.Handle]int{"alice": 0},
		},
	)

	_, ok := history.CommitFor("alice")
	assert.False(t, ok)
}

func TestCommitForUnknownHandle(t *testing.T) {
	history := NewHistory(logging.NewNopLogger(),
		Source{
			HashByLine: []string{originHash},
			LineOf:     map[roster.Handle]int{"alice": 0},
		},
	)

	_, ok := history.CommitFor("nobody")
	assert.False(t, ok)
}

func TestCommitForSkipsSourceWithStaleLineIndex(t *testing.T) {
	history := NewHistory(logging.NewNopLogger(),
		// Position beyond the blame output; the snapshot pair is
		// inconsistent and cannot attribute the line.
		Source{
			HashByLine: []string{recentHash},
			LineOf:     map[roster.Handle]int{"alice": 7},
		},
		Source{
			HashByLine: []string{originHash},
			LineOf:     map[roster.Handle]int{"alice": 0},
		},
	)

	hash, ok := history.CommitFor("alice")
	assert.True(t, ok)
	assert.Equal(t, originHash, hash)
}

func TestParseBlame(t *testing.T) {
	out := []byte(barrierHash + " (Someone 2019-01-01) alice:\n" +
		originHash + " (Someone else 2018-03-04)   github: alice\n")

	assert.Equal(t, []string{barrierHash, originHash}, parseBlame(out))
}

func TestIsBarrier(t *testing.T) {
	assert.True(t, IsBarrier(barrierHash))
	assert.False(t, IsBarrier(originHash))
}
