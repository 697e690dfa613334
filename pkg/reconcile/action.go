// Package reconcile computes and applies the minimal set of team mutations
// that makes actual membership match the desired roster.
package reconcile

import "github.com/agentstation/teamsync/pkg/roster"

// Kind discriminates the action variants.
type Kind int

const (
	// KindKeep leaves an existing member in place.
	KindKeep Kind = iota

	// KindAdd invites a desired maintainer who is not yet a member.
	KindAdd

	// KindRemove removes a member who is no longer on the roster.
	KindRemove
)

// String returns the action kind for logs.
func (k Kind) String() string {
	switch k {
	case KindKeep:
		return "keep"
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Action is one reconciliation decision, keyed by GitHub ID in the diff.
// Name is set for Add and Remove; Handle is set for Add and Keep.
type Action struct {
	Kind   Kind
	Name   roster.GitHubName
	ID     roster.GitHubID
	Handle roster.Handle
}

// Keep builds a keep action for an existing member.
func Keep(handle roster.Handle) Action {
	return Action{Kind: KindKeep, Handle: handle}
}

// Add builds an add action for a desired maintainer.
func Add(name roster.GitHubName, id roster.GitHubID, handle roster.Handle) Action {
	return Action{Kind: KindAdd, Name: name, ID: id, Handle: handle}
}

// Remove builds a remove action for an unwanted member.
func Remove(name roster.GitHubName, id roster.GitHubID) Action {
	return Action{Kind: KindRemove, Name: name, ID: id}
}
