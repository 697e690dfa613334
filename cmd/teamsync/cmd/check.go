package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentstation/teamsync/pkg/logging"
	"github.com/agentstation/teamsync/pkg/roster"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit roster records for missing GitHub handles and IDs",
	Long: `Check reports every roster record whose GitHub identity is
incomplete. Records without an account ID are invisible to sync until the ID
is backfilled.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	path, err := rosterPath()
	if err != nil {
		return err
	}
	desired, err := roster.Load(path)
	if err != nil {
		return err
	}

	log := logging.Default()

	handles := make([]roster.Handle, 0, len(desired))
	for handle := range desired {
		handles = append(handles, handle)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, handle := range handles {
		maintainer := desired[handle]
		switch {
		case maintainer.GitHub != nil && maintainer.GitHubID != nil:
			log.Debug().
				Str("handle", handle.String()).
				Str("github_name", maintainer.GitHub.String()).
				Uint64("github_id", uint64(*maintainer.GitHubID)).
				Msg("Record complete")
		case maintainer.GitHub != nil:
			log.Warn().
				Str("handle", handle.String()).
				Str("github_name", maintainer.GitHub.String()).
				Msg("Missing GitHub ID")
		case maintainer.GitHubID != nil:
			log.Error().
				Str("handle", handle.String()).
				Uint64("github_id", uint64(*maintainer.GitHubID)).
				Msg("Missing GitHub account, but ID present")
		default:
			log.Debug().
				Str("handle", handle.String()).
				Msg("Missing GitHub account and ID")
		}
	}
	return nil
}
