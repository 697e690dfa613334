// Package ledger persists the set of GitHub accounts this tool has ever
// invited. A user with no pending invitation who appears in the ledger is
// assumed to have rejected a previous invitation and is never re-invited.
package ledger

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/teamsync/pkg/errors"
	"github.com/agentstation/teamsync/pkg/roster"
)

// Ledger is an in-memory set of invited GitHub IDs. It is loaded once at the
// start of a run, mutated only by the applier, and saved once at the end.
type Ledger struct {
	invited map[roster.GitHubID]struct{}
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{invited: make(map[roster.GitHubID]struct{})}
}

// Load reads a ledger file, one decimal GitHub ID per line. A nonexistent
// path yields an empty ledger and creates the file, which makes the first run
// against a fresh state directory work without setup. A malformed line is a
// fatal error: silently dropping ledger entries would re-invite rejectors.
func Load(path string) (*Ledger, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.NewLedgerError(path, "failed to open", err)
	}
	defer func() { _ = file.Close() }()

	ledger := New()

	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		id, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, errors.NewLedgerError(path, "malformed GitHub ID on line "+strconv.Itoa(line), err)
		}
		ledger.Add(roster.GitHubID(id))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewLedgerError(path, "failed to read", err)
	}

	return ledger, nil
}

// Save writes the ledger, one ID per line in ascending order so that
// successive runs produce deterministic diffs under version control.
func (l *Ledger) Save(path string) error {
	ids := make([]uint64, 0, len(l.invited))
	for id := range l.invited {
		ids = append(ids, uint64(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(strconv.FormatUint(id, 10))
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return errors.NewLedgerError(path, "failed to write", err)
	}
	return nil
}

// Contains reports whether the given ID has ever been invited.
func (l *Ledger) Contains(id roster.GitHubID) bool {
	_, ok := l.invited[id]
	return ok
}

// Add records an invitation.
func (l *Ledger) Add(id roster.GitHubID) {
	l.invited[id] = struct{}{}
}

// Remove forgets an invitation, typically after the user has been removed
// from the team so a later re-add can invite them again.
func (l *Ledger) Remove(id roster.GitHubID) {
	delete(l.invited, id)
}

// Len returns the number of invited IDs.
func (l *Ledger) Len() int {
	return len(l.invited)
}
