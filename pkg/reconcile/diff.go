package reconcile

import "github.com/agentstation/teamsync/pkg/roster"

// Diff computes one action per GitHub ID in the union of desired records with
// a known ID and current members. A desired record whose ID is already a
// member always resolves to Keep; the remaining desired IDs become Add and
// the remaining member IDs become Remove.
//
// Records without a known GitHub ID cannot be joined against membership and
// produce no action at all: they stay invisible to reconciliation until an ID
// is backfilled. The metrics sink records how many records were skipped that
// way so the gap is observable.
//
// The returned map has set semantics; ordering is the applier's concern.
func Diff(desired roster.List, members map[roster.GitHubID]roster.GitHubName, metrics *Metrics) map[roster.GitHubID]Action {
	diff := make(map[roster.GitHubID]Action, len(desired)+len(members))

	for handle, maintainer := range desired {
		if maintainer.GitHub == nil {
			metrics.MissingGitHub++
		}
		if maintainer.GitHubID == nil {
			metrics.MissingGitHubID++
		}
		if maintainer.GitHubID == nil {
			continue
		}

		id := *maintainer.GitHubID
		if _, ok := members[id]; ok {
			diff[id] = Keep(handle)
		} else if maintainer.GitHub != nil {
			// An addition needs a login to invite; a record with an ID
			// but no login stays invisible until the login is recorded.
			diff[id] = Add(*maintainer.GitHub, id, handle)
		}
	}

	for id, name := range members {
		// Desired records already claimed their IDs above; whatever is
		// left on the team should no longer be there.
		if _, ok := diff[id]; !ok {
			diff[id] = Remove(name, id)
		}
	}

	return diff
}
