package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/teamsync/pkg/ledger"
	"github.com/agentstation/teamsync/pkg/logging"
	"github.com/agentstation/teamsync/pkg/provenance"
	"github.com/agentstation/teamsync/pkg/reconcile"
	"github.com/agentstation/teamsync/pkg/roster"
)

var (
	syncDryRun      bool
	syncLimit       uint64
	syncInvitedList string
	syncVerify      bool
)

// syncCmd represents the sync command.
var syncCmd = &cobra.Command{
	Use:   "sync ORG TEAM_ID",
	Short: "Add and remove team members to match the roster",
	Long: `Sync diffs the maintainer roster against the team's current members
and applies the difference: desired maintainers who are absent get invited,
members who left the roster get removed, everyone else is kept.

Additions are suppressed for users with a pending invitation and for users
recorded in the invited list (they rejected a previous invitation). Before any
mutation the login is looked up again and the action is dropped if it no
longer maps to the recorded account ID. With provenance verification enabled,
additions whose identity claim does not match the commit that introduced the
roster entry are withheld.

Use the teams command to find a team's ID.`,
	Example: `  teamsync -m maintainers.yaml -c github.env sync acme-corp 42 --dry-run
  teamsync -m maintainers.yaml -c github.env sync acme-corp 42 --limit 10 --invited-list invited.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "verify and log actions without mutating anything")
	syncCmd.Flags().Uint64Var(&syncLimit, "limit", 0, "maximum mutating actions per run (0 = unlimited)")
	syncCmd.Flags().StringVar(&syncInvitedList, "invited-list", "", "file tracking previously invited users")
	syncCmd.Flags().BoolVar(&syncVerify, "verify", true, "gate additions on provenance confidence")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.Default()

	org := args[0]
	teamID, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid team ID %q: %w", args[1], err)
	}

	path, err := rosterPath()
	if err != nil {
		return err
	}
	desired, err := roster.Load(path)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	team, err := client.Team(ctx, teamID)
	if err != nil {
		return err
	}
	log.Info().
		Str("team_name", team.Name).
		Uint64("team_id", team.ID).
		Msg("Syncing team")

	memberList, err := client.TeamMembers(ctx, teamID)
	if err != nil {
		return err
	}
	members := make(map[roster.GitHubID]roster.GitHubName, len(memberList))
	for _, member := range memberList {
		members[member.ID] = member.Login
	}
	log.Info().Int("members", len(members)).Msg("Fetched current team members")

	pending, err := client.PendingInvitations(ctx, org)
	if err != nil {
		return err
	}
	log.Debug().Int("pending_invitations", len(pending)).Msg("Fetched invitations")

	invited := ledger.New()
	if syncInvitedList != "" {
		if invited, err = ledger.Load(syncInvitedList); err != nil {
			return err
		}
	}

	metrics := reconcile.NewMetrics()
	diff := reconcile.Diff(desired, members, metrics)

	opts := []reconcile.Option{}
	if syncDryRun {
		opts = append(opts, reconcile.WithDryRun())
	}
	if syncLimit > 0 {
		opts = append(opts, reconcile.WithLimit(syncLimit))
	}
	if syncVerify {
		history, err := newHistory(path)
		if err != nil {
			return err
		}
		opts = append(opts, reconcile.WithChecker(provenance.NewChecker(log, history, client)))
	}

	applier := reconcile.NewApplier(log, client, teamID, invited, metrics, opts...)
	if err := applier.Apply(ctx, diff, pending); err != nil {
		return err
	}

	// The ledger is persisted even after an early limit return; only dry
	// runs leave it untouched.
	if syncInvitedList != "" && !syncDryRun {
		if err := invited.Save(syncInvitedList); err != nil {
			return err
		}
	}

	metrics.LogSummary(log)
	return nil
}
