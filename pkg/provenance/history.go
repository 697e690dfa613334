// Package provenance resolves which historical commit introduced a roster
// entry and scores how trustworthy the entry's claimed GitHub identity is
// against that commit's author.
//
// The roster file has been bulk-sorted and reformatted several times in its
// history. Naive blame on the current file attributes most entries to whoever
// last reformatted it. Resolution therefore walks a chain of captured
// snapshots from newest to oldest, skipping known reformatting commits
// (barriers), until it finds a commit that carries real authorship signal.
package provenance

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/teamsync/pkg/roster"
)

// barriers are commits known to have rewritten line positions without
// semantic authorship meaning. A blame answer pointing at one of these means
// "this snapshot cannot attribute this line; look further back."
var barriers = map[string]struct{}{
	// sort and format
	"220459858b342ec880d484160eb63319b7b83af8": {},
	// Convert maintainer file entries to attributes
	"f7da7fa0c3ab40b79a2358861831b925d2cb5a6b": {},
	// alphabetize
	"dea3279593753f0dee2966cd3f0f1f84be5bfbe2": {},
	// sort
	"a3a40b70892774792924824a9b8858a2ffd3489d": {},
	// alphabetize
	"b4f60add6a227bfeb106497c270b8126dad8f8d3": {},
	// insert-sort
	"a58a44e0c2106a87d258706f13cacc320adc8d32": {},
	// alphabetize
	"ac1c3c95e18f6e9839f2ca151c761d1b283831f1": {},
}

// IsBarrier reports whether the given commit is a known bulk-edit commit.
func IsBarrier(hash string) bool {
	_, ok := barriers[hash]
	return ok
}

// Source is one historical snapshot of the roster: the blame hash for every
// line, and the line index each handle occupied at that point in time.
type Source struct {
	// HashByLine holds the blame commit hash for each line, in file order.
	HashByLine []string

	// LineOf maps each handle to its zero-based line index in this snapshot.
	LineOf map[roster.Handle]int
}

// History is an ordered set of sources, newest first. It is immutable once
// built and safe for concurrent reads.
type History struct {
	sources []Source
	log     *zerolog.Logger
}

// NewHistory builds a history from sources ordered newest to oldest. The
// first source is normally the live blame of the current roster file,
// followed by the archived snapshots captured before each barrier commit.
func NewHistory(log *zerolog.Logger, sources ...Source) *History {
	return &History{sources: sources, log: log}
}

// CommitFor returns the most recent non-barrier commit that introduced the
// line occupied by the handle. It returns ok=false when no snapshot can
// attribute the handle, which callers treat as "no confidence available"
// rather than an error.
func (h *History) CommitFor(handle roster.Handle) (string, bool) {
	for _, source := range h.sources {
		line, ok := source.LineOf[handle]
		if !ok {
			continue
		}
		if line < 0 || line >= len(source.HashByLine) {
			continue
		}
		hash := source.HashByLine[line]
		if IsBarrier(hash) {
			// This snapshot only knows the reformatting commit moved
			// the line. The next older snapshot predates that commit.
			continue
		}

		h.log.Debug().
			Str("handle", handle.String()).
			Int("line", line).
			Str("commit", hash).
			Msg("Identified source commit for handle")
		return hash, true
	}

	h.log.Error().
		Str("handle", handle.String()).
		Msg("Did not find a suitable commit for handle")
	return "", false
}

// Len returns the number of snapshots in the history.
func (h *History) Len() int {
	return len(h.sources)
}
