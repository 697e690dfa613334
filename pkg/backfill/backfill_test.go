package backfill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/teamsync/pkg/backfill"
	"github.com/agentstation/teamsync/pkg/roster"
)

func TestFileInjectsIDs(t *testing.T) {
	input := `alice:
  email: alice@example.com
  github: alice
bob:
    github: bob
charlie:
  github: charlie
  githubId: 3
`

	got := backfill.File(map[roster.GitHubName]roster.GitHubID{
		"alice": 1,
		"bob":   2,
	}, input)

	// Injected lines mirror each entry's indentation, however janky.
	want := `alice:
  email: alice@example.com
  github: alice
  githubId: 1
bob:
    github: bob
    githubId: 2
charlie:
  github: charlie
  githubId: 3
`
	assert.Equal(t, want, got)
}

func TestFileUsesEachIDOnce(t *testing.T) {
	input := "a:\n  github: dup\nb:\n  github: dup\n"

	got := backfill.File(map[roster.GitHubName]roster.GitHubID{"dup": 5}, input)

	want := "a:\n  github: dup\n  githubId: 5\nb:\n  github: dup\n"
	assert.Equal(t, want, got)
}

func TestFileLeavesUnknownLoginsAlone(t *testing.T) {
	input := "a:\n  github: unknown\n"

	assert.Equal(t, input, backfill.File(nil, input))
}
