package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentstation/teamsync/pkg/logging"
	"github.com/agentstation/teamsync/pkg/provenance"
	"github.com/agentstation/teamsync/pkg/roster"
)

// blameCmd represents the blame command.
var blameCmd = &cobra.Command{
	Use:   "blame",
	Short: "Score every roster record against the commit that introduced it",
	Long: `Blame resolves, for each roster record with a full GitHub identity,
the commit that introduced its entry, and reports how well the recorded
identity matches that commit's author. A mismatch usually means the account
renamed itself (benign) or the recorded ID is wrong (investigate).`,
	Args: cobra.NoArgs,
	RunE: runBlame,
}

func init() {
	rootCmd.AddCommand(blameCmd)
}

func runBlame(cmd *cobra.Command, _ []string) error {
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
	history, err := newHistory(path)
	if err != nil {
		return err
	}
	checker := provenance.NewChecker(log, history, client)

	log.Info().Msg("Verifying roster identities against the authors of the commits that added them")

	handles := make([]roster.Handle, 0, len(desired))
	for handle := range desired {
		handles = append(handles, handle)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, handle := range handles {
		maintainer := desired[handle]
		if maintainer.GitHub == nil || maintainer.GitHubID == nil {
			continue
		}
		checker.Check(ctx, handle, *maintainer.GitHub, *maintainer.GitHubID)
	}
	return nil
}
