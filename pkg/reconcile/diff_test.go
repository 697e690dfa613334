package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/teamsync/pkg/reconcile"
	"github.com/agentstation/teamsync/pkg/roster"
)

func ghName(s string) *roster.GitHubName {
	name := roster.GitHubName(s)
	return &name
}

func ghID(n uint64) *roster.GitHubID {
	id := roster.GitHubID(n)
	return &id
}

func TestDiffAddRemoveKeep(t *testing.T) {
	members := map[roster.GitHubID]roster.GitHubName{
		1: "alice",
		2: "bob",
	}

	desired := roster.List{
		"bob": {
			Email:    "bob@example.com",
			GitHub:   ghName("bob"),
			GitHubID: ghID(2),
		},
		"charlie": {
			Email:    "charlie@example.com",
			GitHub:   ghName("charlie"),
			GitHubID: ghID(3),
		},
	}

	diff := reconcile.Diff(desired, members, reconcile.NewMetrics())

	assert.Equal(t, map[roster.GitHubID]reconcile.Action{
		1: reconcile.Remove("alice", 1),
		2: reconcile.Keep("bob"),
		3: reconcile.Add("charlie", 3, "charlie"),
	}, diff)
}

func TestDiffKeepPrecedence(t *testing.T) {
	// A desired record and a member sharing an ID always resolve to Keep,
	// even when the recorded login is stale.
	members := map[roster.GitHubID]roster.GitHubName{7: "new-login"}
	desired := roster.List{
		"old": {GitHub: ghName("old-login"), GitHubID: ghID(7)},
	}

	diff := reconcile.Diff(desired, members, reconcile.NewMetrics())

	require.Len(t, diff, 1)
	assert.Equal(t, reconcile.Keep("old"), diff[7])
}

func TestDiffOneActionPerID(t *testing.T) {
	members := map[roster.GitHubID]roster.GitHubName{
		1: "alice", 2: "bob", 3: "carol",
	}
	desired := roster.List{
		"bob":  {GitHub: ghName("bob"), GitHubID: ghID(2)},
		"dave": {GitHub: ghName("dave"), GitHubID: ghID(4)},
		"eve":  {GitHub: ghName("eve")}, // no ID: invisible
	}

	diff := reconcile.Diff(desired, members, reconcile.NewMetrics())

	// Union of known desired IDs {2,4} and member IDs {1,2,3}.
	assert.Len(t, diff, 4)
	for _, id := range []roster.GitHubID{1, 2, 3, 4} {
		assert.Contains(t, diff, id)
	}
}

func TestDiffRecordsWithoutIDAreInvisible(t *testing.T) {
	members := map[roster.GitHubID]roster.GitHubName{}
	desired := roster.List{
		"no-id":     {GitHub: ghName("someone")},
		"no-github": {GitHubID: ghID(9)},
		"nothing":   {},
	}

	metrics := reconcile.NewMetrics()
	diff := reconcile.Diff(desired, members, metrics)

	// no-id and nothing produce no action; no-github has an ID but no login
	// to invite, so it produces no action either.
	assert.Empty(t, diff)
	assert.Equal(t, uint64(2), metrics.MissingGitHub)
	assert.Equal(t, uint64(2), metrics.MissingGitHubID)
}

func TestDiffIdempotence(t *testing.T) {
	members := map[roster.GitHubID]roster.GitHubName{
		1: "alice",
		2: "bob",
	}
	desired := roster.List{
		"bob":     {GitHub: ghName("bob"), GitHubID: ghID(2)},
		"charlie": {GitHub: ghName("charlie"), GitHubID: ghID(3)},
	}

	diff := reconcile.Diff(desired, members, reconcile.NewMetrics())

	// Apply the full action set to the membership snapshot.
	next := make(map[roster.GitHubID]roster.GitHubName)
	for id, name := range members {
		next[id] = name
	}
	for id, action := range diff {
		switch action.Kind {
		case reconcile.KindAdd:
			next[id] = action.Name
		case reconcile.KindRemove:
			delete(next, id)
		}
	}

	// Re-running the diff must produce only Keep actions.
	rediff := reconcile.Diff(desired, next, reconcile.NewMetrics())
	require.Len(t, rediff, len(desired))
	for id, action := range rediff {
		assert.Equal(t, reconcile.KindKeep, action.Kind, "id %d", id)
	}
}
