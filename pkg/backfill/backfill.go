// Package backfill rewrites the roster text to fill in missing GitHub
// account IDs. It edits lines, not the parsed structure, so the file keeps
// its ordering, comments, and whatever indentation each entry already has.
package backfill

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/teamsync/pkg/roster"
)

// githubLineRE matches a `github:` field line, capturing the leading
// whitespace so the injected line can mirror the entry's indentation.
var githubLineRE = regexp.MustCompile(`^(\s+)github:\s*"?([^"\s]+)"?\s*$`)

// File returns the roster text with a githubId line inserted after each
// github line whose login appears in ids. Each ID is used at most once; the
// caller is expected to have looked up only logins that currently lack one.
func File(ids map[roster.GitHubName]roster.GitHubID, file string) string {
	remaining := make(map[string]roster.GitHubID, len(ids))
	for name, id := range ids {
		remaining[name.String()] = id
	}

	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(file, "\n"), "\n") {
		sb.WriteString(line)
		sb.WriteByte('\n')

		m := githubLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if id, ok := remaining[m[2]]; ok {
			sb.WriteString(m[1])
			sb.WriteString("githubId: ")
			sb.WriteString(strconv.FormatUint(uint64(id), 10))
			sb.WriteByte('\n')
			delete(remaining, m[2])
		}
	}

	return sb.String()
}
