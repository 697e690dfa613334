package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/teamsync/pkg/backfill"
	"github.com/agentstation/teamsync/pkg/logging"
	"github.com/agentstation/teamsync/pkg/roster"
)

// backfillCmd represents the backfill command.
var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Print the roster with missing GitHub IDs filled in",
	Long: `Backfill looks up the account ID of every roster record that has a
GitHub login but no ID, and prints the roster text with githubId lines
injected in place. The output preserves ordering and indentation so the
result diffs cleanly against the input.`,
	Args: cobra.NoArgs,
	RunE: runBackfill,
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logging.Default()

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

	found := make(map[roster.GitHubName]roster.GitHubID)
	for _, maintainer := range desired {
		if maintainer.GitHub == nil || maintainer.GitHubID != nil {
			continue
		}
		name := *maintainer.GitHub

		log.Info().Str("github_name", name.String()).Msg("Getting ID for user")
		user, err := client.User(ctx, name)
		if err != nil {
			// A failed lookup just leaves this record unfilled.
			log.Warn().Err(err).Str("github_name", name.String()).Msg("Error fetching ID for user")
			continue
		}
		log.Info().
			Str("github_name", name.String()).
			Uint64("github_id", uint64(user.ID)).
			Msg("Found ID for user")
		found[name] = user.ID
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	fmt.Print(backfill.File(found, string(data)))
	return nil
}
