// Package roster models the declarative maintainer roster: who should belong
// to the remote team, keyed by a stable local handle, with each entry
// optionally claiming a GitHub identity (login name and numeric account ID).
package roster

import (
	"os"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"

	"github.com/agentstation/teamsync/pkg/errors"
)

// Handle is the stable roster key for a maintainer. It is used purely for
// display and audit, never for matching the remote identity.
type Handle string

// String returns the handle as a plain string.
func (h Handle) String() string { return string(h) }

// GitHubName is a GitHub login. GitHub logins are case-insensitive, so all
// comparisons must go through Equal rather than ==.
type GitHubName string

// String returns the login as a plain string.
func (n GitHubName) String() string { return string(n) }

// Equal reports whether two logins refer to the same account name,
// ignoring case.
func (n GitHubName) Equal(other GitHubName) bool {
	fold := cases.Fold()
	return fold.String(string(n)) == fold.String(string(other))
}

// GitHubID is a GitHub numeric account ID. IDs are stable across login
// renames and are the canonical join key once known.
type GitHubID uint64

// Maintainer is one desired-membership record. GitHub and GitHubID may each
// be independently absent; records without a known ID are invisible to
// reconciliation until an ID is backfilled.
type Maintainer struct {
	Email    string      `yaml:"email"`
	Name     *string     `yaml:"name,omitempty"`
	GitHub   *GitHubName `yaml:"github,omitempty"`
	GitHubID *GitHubID   `yaml:"githubId,omitempty"`
}

// List is the full desired-membership mapping, recreated fresh on every run.
type List map[Handle]Maintainer

// Load reads and parses a roster file. Any read or parse failure is fatal to
// the run: without the desired state there is nothing to reconcile.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("read", path, err)
	}
	return Parse(path, data)
}

// Parse parses roster file contents. The path is only used for error messages.
func Parse(path string, data []byte) (List, error) {
	var list List
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, errors.NewParseError("yaml", path, "invalid roster", err)
	}
	return list, nil
}
