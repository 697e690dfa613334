package reconcile

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/agentstation/teamsync/internal/githubapi"
	"github.com/agentstation/teamsync/pkg/ledger"
	"github.com/agentstation/teamsync/pkg/provenance"
	"github.com/agentstation/teamsync/pkg/roster"
)

// Applier executes a diff against the directory service. Remote failures
// inside the loop are counted, never propagated: a single bad account must
// not abort the rest of the run.
type Applier struct {
	client  githubapi.Client
	ledger  *ledger.Ledger
	metrics *Metrics
	checker *provenance.Checker
	log     *zerolog.Logger
	teamID  uint64
	limit   uint64
	limited bool
	dryRun  bool
}

// Option configures an Applier.
type Option func(*Applier)

// WithLimit caps the number of mutating actions (adds + removes) in one run.
func WithLimit(limit uint64) Option {
	return func(a *Applier) {
		a.limit = limit
		a.limited = true
	}
}

// WithDryRun verifies and logs every action without mutating anything.
func WithDryRun() Option {
	return func(a *Applier) { a.dryRun = true }
}

// WithChecker gates additions on provenance confidence. Additions whose
// identity claim scores untrustworthy are withheld.
func WithChecker(checker *provenance.Checker) Option {
	return func(a *Applier) { a.checker = checker }
}

// NewApplier creates an applier for one team.
func NewApplier(log *zerolog.Logger, client githubapi.Client, teamID uint64, invited *ledger.Ledger, metrics *Metrics, opts ...Option) *Applier {
	a := &Applier{
		client:  client,
		ledger:  invited,
		metrics: metrics,
		log:     log,
		teamID:  teamID,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply processes the diff in ascending ID order (for reproducible logs),
// honoring the change limit, pending-invitation and ledger suppression, and
// lookup re-verification. It mutates the invitation ledger in memory; the
// caller persists it afterwards, including after an early limit return.
func (a *Applier) Apply(ctx context.Context, diff map[roster.GitHubID]Action, pending []githubapi.Invitation) error {
	fold := cases.Fold()
	pendingLogins := make(map[string]struct{}, len(pending))
	for _, invite := range pending {
		pendingLogins[fold.String(invite.Login.String())] = struct{}{}
	}

	ids := make([]roster.GitHubID, 0, len(diff))
	for id := range diff {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		action := diff[id]

		log := a.log.With().
			Bool("dry_run", a.dryRun).
			Uint64("github_id", uint64(id)).
			Str("action", action.Kind.String()).
			Uint64("changed", a.metrics.Changed()).
			Logger()

		if a.limited && action.Kind != KindKeep && a.metrics.Changed() >= a.limit {
			log.Info().Uint64("limit", a.limit).Msg("Hit maximum change limit")
			return nil
		}

		switch action.Kind {
		case KindKeep:
			a.metrics.Noops++
			log.Trace().Str("handle", action.Handle.String()).Msg("Keeping user on the team")

		case KindAdd:
			a.add(ctx, log, action, pendingLogins, fold)

		case KindRemove:
			a.remove(ctx, log, action)
		}
	}

	return nil
}

func (a *Applier) add(ctx context.Context, log zerolog.Logger, action Action, pendingLogins map[string]struct{}, fold cases.Caser) {
	log = log.With().
		Str("handle", action.Handle.String()).
		Str("github_name", action.Name.String()).
		Logger()

	if _, ok := pendingLogins[fold.String(action.Name.String())]; ok {
		a.metrics.Noops++
		log.Debug().Msg("User already has a pending invitation")
		return
	}
	if a.ledger.Contains(action.ID) {
		a.metrics.Noops++
		log.Debug().Msg("User was invited previously and has no pending invitation, assuming they rejected it")
		return
	}

	if a.checker != nil {
		if confidence, ok := a.checker.Check(ctx, action.Handle, action.Name, action.ID); !ok {
			log.Warn().Msg("No provenance for handle, proceeding without confidence")
		} else if confidence == provenance.BadAttribution || confidence == provenance.MismatchedNameAndID {
			a.metrics.Distrusted++
			log.Warn().Str("confidence", confidence.String()).Msg("Withholding addition, identity claim is untrustworthy")
			return
		}
	}

	a.metrics.Additions++
	log.Info().Msg("Adding user to the team")

	if !a.verify(ctx, log, action.Name, action.ID) {
		return
	}

	if a.dryRun {
		return
	}

	if err := a.client.AddTeamMember(ctx, a.teamID, action.Name); err != nil {
		a.metrics.Errors++
		log.Warn().Err(err).Msg("Failed to add user to the team, not decrementing additions as it may have succeeded")
		return
	}

	// Track the invitation locally so users who reject it are not
	// re-invited on every run.
	a.ledger.Add(action.ID)
}

func (a *Applier) remove(ctx context.Context, log zerolog.Logger, action Action) {
	log = log.With().
		Str("github_name", action.Name.String()).
		Logger()

	a.metrics.Removals++
	log.Info().Msg("Removing user from the team")

	if !a.verify(ctx, log, action.Name, action.ID) {
		return
	}

	if a.dryRun {
		return
	}

	if err := a.client.RemoveTeamMember(ctx, a.teamID, action.Name); err != nil {
		a.metrics.Errors++
		log.Warn().Err(err).Msg("Failed to remove user from the team")
		return
	}

	a.ledger.Remove(action.ID)
}

// verify re-resolves the login and confirms it still maps to the recorded
// account ID. Logins are reassignable; acting on a stale binding could add or
// remove a stranger.
func (a *Applier) verify(ctx context.Context, log zerolog.Logger, name roster.GitHubName, id roster.GitHubID) bool {
	user, err := a.client.User(ctx, name)
	if err != nil {
		a.metrics.Errors++
		log.Warn().Err(err).Msg("Failed to fetch user by name")
		return false
	}
	if user.ID != id {
		a.metrics.Mismatches++
		log.Warn().
			Uint64("looked_up_id", uint64(user.ID)).
			Msg("Recorded login no longer maps to the recorded account ID, not acting")
		return false
	}
	return true
}
