package cmd

import (
	"github.com/spf13/viper"

	"github.com/agentstation/teamsync/internal/config"
	"github.com/agentstation/teamsync/internal/githubapi"
	"github.com/agentstation/teamsync/pkg/logging"
	"github.com/agentstation/teamsync/pkg/provenance"
)

// newClient builds the authenticated GitHub client from configuration.
func newClient() (*githubapi.RESTClient, error) {
	token, err := config.Token(viper.GetString("credentials"))
	if err != nil {
		return nil, err
	}
	return githubapi.NewREST(token, viper.GetString("repo")), nil
}

// newHistory assembles the provenance history: the live blame of the roster
// file first, then the archived snapshots, newest to oldest.
func newHistory(rosterPath string) (*provenance.History, error) {
	log := logging.Default()

	live, err := provenance.LiveSource(log, rosterPath)
	if err != nil {
		return nil, err
	}

	sources := []provenance.Source{live}
	if dir := viper.GetString("history"); dir != "" {
		archives, err := provenance.LoadArchives(log, dir)
		if err != nil {
			return nil, err
		}
		sources = append(sources, archives...)
	}

	return provenance.NewHistory(log, sources...), nil
}
