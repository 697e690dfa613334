package provenance

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/teamsync/internal/githubapi"
	"github.com/agentstation/teamsync/pkg/roster"
)

// Confidence classifies how well a roster entry's claimed identity matches
// the author of the commit that introduced it.
type Confidence int

const (
	// Total means both the login and the numeric ID match the commit author.
	Total Confidence = iota

	// BadAttribution means the login matches but the ID does not. Either the
	// recorded ID is wrong or someone is squatting the claim; surfaced loudly.
	BadAttribution

	// ChangedHandle means the ID matches but the login does not: the account
	// renamed itself since the commit. The ID is authoritative, so benign.
	ChangedHandle

	// MismatchedNameAndID means neither matches; the claim is untrustworthy.
	MismatchedNameAndID

	// CommitMissing means the commit metadata could not be fetched, so no
	// classification is possible.
	CommitMissing
)

// String returns the confidence name for logs.
func (c Confidence) String() string {
	switch c {
	case Total:
		return "total"
	case BadAttribution:
		return "bad-attribution"
	case ChangedHandle:
		return "changed-handle"
	case MismatchedNameAndID:
		return "mismatched-name-and-id"
	case CommitMissing:
		return "commit-missing"
	default:
		return "unknown"
	}
}

// override identifies a roster addition that was legitimately authored by a
// different, trusted party on the maintainer's behalf.
type override struct {
	claimed string // recorded login in the roster
	author  string // actual commit author login
	commit  string
}

// overrides are verified historical exceptions: without them these entries
// would score MismatchedNameAndID. The table is data, not logic; it must stay
// exactly as recorded until the underlying history is corrected upstream.
var overrides = []override{
	{"rlupton20", "offlinehacker", "5bd136acd4c683b30470b5dfbb6f0b15dcea42a5"},
	{"zx2c4", "Mic92", "6b1087d9b135c94b929fec3d4cf3724b9539c6b5"},
	{"the-kenny", "bjornfor", "6b1087d9b135c94b929fec3d4cf3724b9539c6b5"},
}

// Score classifies a claimed identity against the resolved commit's author.
func Score(claimedName roster.GitHubName, claimedID roster.GitHubID, authorName roster.GitHubName, authorID roster.GitHubID, commit string) Confidence {
	nameMatch := claimedName.Equal(authorName)
	idMatch := claimedID == authorID

	switch {
	case nameMatch && idMatch:
		return Total
	case nameMatch && !idMatch:
		return BadAttribution
	case !nameMatch && idMatch:
		return ChangedHandle
	}

	for _, o := range overrides {
		if o.claimed == claimedName.String() && o.author == authorName.String() && o.commit == commit {
			return Total
		}
	}

	return MismatchedNameAndID
}

// CommitGetter fetches commit metadata; satisfied by the GitHub client.
type CommitGetter interface {
	Commit(ctx context.Context, sha string) (*githubapi.Commit, error)
}

// Checker combines history resolution with commit author lookup to score a
// roster entry end to end.
type Checker struct {
	history *History
	commits CommitGetter
	log     *zerolog.Logger
}

// NewChecker creates a checker over the given history and commit source.
func NewChecker(log *zerolog.Logger, history *History, commits CommitGetter) *Checker {
	return &Checker{history: history, commits: commits, log: log}
}

// Check resolves the commit that introduced the handle's entry and scores the
// claimed identity against its author. ok=false means the handle could not be
// attributed to any commit; CommitMissing means attribution succeeded but the
// commit metadata was unavailable. Neither is an error up the stack.
func (c *Checker) Check(ctx context.Context, handle roster.Handle, claimedName roster.GitHubName, claimedID roster.GitHubID) (Confidence, bool) {
	hash, ok := c.history.CommitFor(handle)
	if !ok {
		return 0, false
	}

	log := c.log.With().
		Str("handle", handle.String()).
		Str("commit", hash).
		Str("recorded_github_name", claimedName.String()).
		Uint64("recorded_github_id", uint64(claimedID)).
		Logger()

	commit, err := c.commits.Commit(ctx, hash)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch commit")
		return CommitMissing, true
	}
	if commit.Author == nil {
		// Author accounts get deleted; the commit then carries no
		// attributable identity.
		log.Warn().Msg("Commit has no linked GitHub author")
		return CommitMissing, true
	}

	confidence := Score(claimedName, claimedID, commit.Author.Login, commit.Author.ID, hash)

	switch confidence {
	case Total:
		log.Debug().Msg("Commit author matches recorded identity")
	case BadAttribution:
		log.Error().
			Str("actual_github_name", commit.Author.Login.String()).
			Uint64("actual_github_id", uint64(commit.Author.ID)).
			Msg("Recorded GitHub ID does not match who authored the roster addition")
	case ChangedHandle:
		log.Warn().
			Str("actual_github_name", commit.Author.Login.String()).
			Msg("Maintainer changed their GitHub handle since being added")
	case MismatchedNameAndID:
		log.Warn().
			Str("actual_github_name", commit.Author.Login.String()).
			Uint64("actual_github_id", uint64(commit.Author.ID)).
			Msg("Neither recorded GitHub name nor ID match the roster addition author")
	}

	return confidence, true
}
