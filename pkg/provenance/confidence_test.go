package provenance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/teamsync/internal/githubapi"
	"github.com/agentstation/teamsync/pkg/errors"
	"github.com/agentstation/teamsync/pkg/logging"
	"github.com/agentstation/teamsync/pkg/roster"
)

func TestScoreDecisionTable(t *testing.T) {
	tests := []struct {
		name       string
		authorName roster.GitHubName
		authorID   roster.GitHubID
		want       Confidence
	}{
		{"both match", "alice", 1, Total},
		{"name matches, id does not", "alice", 2, BadAttribution},
		{"id matches, name does not", "bob", 1, ChangedHandle},
		{"neither matches", "bob", 2, MismatchedNameAndID},
		{"name match is case-insensitive", "ALICE", 1, Total},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score("alice", 1, tt.authorName, tt.authorID, originHash)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreOverrides(t *testing.T) {
	tests := []struct {
		claimed roster.GitHubName
		author  roster.GitHubName
		commit  string
	}{
		{"rlupton20", "offlinehacker", "5bd136acd4c683b30470b5dfbb6f0b15dcea42a5"},
		{"zx2c4", "Mic92", "6b1087d9b135c94b929fec3d4cf3724b9539c6b5"},
		{"the-kenny", "bjornfor", "6b1087d9b135c94b929fec3d4cf3724b9539c6b5"},
	}

	for _, tt := range tests {
		t.Run(tt.claimed.String(), func(t *testing.T) {
			got := Score(tt.claimed, 1, tt.author, 2, tt.commit)
			assert.Equal(t, Total, got)

			// The same identity pair on any other commit stays untrusted.
			got = Score(tt.claimed, 1, tt.author, 2, originHash)
			assert.Equal(t, MismatchedNameAndID, got)
		})
	}
}

// fakeCommits serves commit metadata from a map.
type fakeCommits struct {
	commits map[string]*githubapi.Commit
}

func (f *fakeCommits) Commit(_ context.Context, sha string) (*githubapi.Commit, error) {
	commit, ok := f.commits[sha]
	if !ok {
		return nil, errors.NewAPIError("get commit", sha, 404, "Not Found")
	}
	return commit, nil
}

func TestCheckerCheck(t *testing.T) {
	history := NewHistory(logging.NewNopLogger(),
		Source{
			HashByLine: []string{originHash},
			LineOf:     map[roster.Handle]int{"alice": 0, "ghost": 0},
		},
	)

	commits := &fakeCommits{commits: map[string]*githubapi.Commit{
		originHash: {
			SHA:    originHash,
			Author: &githubapi.User{ID: 1, Login: "alice"},
		},
	}}
	checker := NewChecker(logging.NewNopLogger(), history, commits)

	confidence, ok := checker.Check(context.Background(), "alice", "alice", 1)
	assert.True(t, ok)
	assert.Equal(t, Total, confidence)

	confidence, ok = checker.Check(context.Background(), "alice", "alice", 99)
	assert.True(t, ok)
	assert.Equal(t, BadAttribution, confidence)
}

func TestCheckerCommitMissing(t *testing.T) {
	history := NewHistory(logging.NewNopLogger(),
		Source{
			HashByLine: []string{recentHash},
			LineOf:     map[roster.Handle]int{"alice": 0},
		},
	)
	checker := NewChecker(logging.NewNopLogger(), history, &fakeCommits{})

	confidence, ok := checker.Check(context.Background(), "alice", "alice", 1)
	assert.True(t, ok)
	assert.Equal(t, CommitMissing, confidence)
}

func TestCheckerUnresolvedHandle(t *testing.T) {
	history := NewHistory(logging.NewNopLogger())
	checker := NewChecker(logging.NewNopLogger(), history, &fakeCommits{})

	_, ok := checker.Check(context.Background(), "alice", "alice", 1)
	assert.False(t, ok)
}

func TestCheckerNoLinkedAuthor(t *testing.T) {
	history := NewHistory(logging.NewNopLogger(),
		Source{
			HashByLine: []string{originHash},
			LineOf:     map[roster.Handle]int{"alice": 0},
		},
	)
	commits := &fakeCommits{commits: map[string]*githubapi.Commit{
		originHash: {SHA: originHash},
	}}
	checker := NewChecker(logging.NewNopLogger(), history, commits)

	confidence, ok := checker.Check(context.Background(), "alice", "alice", 1)
	assert.True(t, ok)
	assert.Equal(t, CommitMissing, confidence)
}
