package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// teamsCmd represents the teams command.
var teamsCmd = &cobra.Command{
	Use:   "teams ORG",
	Short: "List an org's teams, to find the ID for sync",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeams,
}

func init() {
	rootCmd.AddCommand(teamsCmd)
}

func runTeams(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	teams, err := client.Teams(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	for _, team := range teams {
		fmt.Printf("%10d %s\n", team.ID, team.Name)
	}
	return nil
}
