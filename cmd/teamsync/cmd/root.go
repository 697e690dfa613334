// Package cmd implements the teamsync command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/teamsync/pkg/logging"
)

var (
	configFile      string
	rosterFile      string
	credentialsFile string
	historyDir      string
	repo            string
	verbose         bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "teamsync",
	Short: "Reconcile GitHub team membership against a maintainer roster",
	Long: `Teamsync keeps a GitHub team in step with a declarative maintainer
roster. It diffs the roster against current membership, validates each claimed
GitHub identity against the commit history that introduced it, and applies the
minimal set of invitations and removals, remembering past invitations so
nobody who rejected one gets spammed.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.teamsync.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rosterFile, "roster", "m", "", "maintainer roster file")
	rootCmd.PersistentFlags().StringVarP(&credentialsFile, "credentials", "c", "", "dotenv file holding GITHUB_TOKEN")
	rootCmd.PersistentFlags().StringVar(&historyDir, "history", "", "directory of archived roster snapshots for provenance")
	rootCmd.PersistentFlags().StringVar(&repo, "repo", "", "owner/name repository holding the roster history")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	for _, flag := range []string{"roster", "credentials", "history", "repo"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// initConfig reads in the config file and environment variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".teamsync")
		}
	}

	viper.SetEnvPrefix("TEAMSYNC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logging.Debug().Str("config", viper.ConfigFileUsed()).Msg("Using config file")
	}
}

// rosterPath returns the configured roster file, failing when unset since
// every operation needs the desired state.
func rosterPath() (string, error) {
	path := viper.GetString("roster")
	if path == "" {
		return "", fmt.Errorf("no roster file configured, use --roster")
	}
	return path, nil
}
