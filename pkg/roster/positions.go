package roster

import (
	"bufio"
	"bytes"
	"regexp"
)

// entryRE matches a top-level roster key: the handle starts in column zero
// and is followed by a colon. Indented lines belong to the preceding entry.
var entryRE = regexp.MustCompile(`^([^\s:#][^:]*):`)

// Positions maps each handle to the zero-based line index of its entry in the
// roster file. Provenance resolution joins these indexes against per-line
// blame output, so they must be computed from the exact bytes that were
// blamed, not from the parsed structure.
func Positions(src []byte) map[Handle]int {
	positions := make(map[Handle]int)

	scanner := bufio.NewScanner(bytes.NewReader(src))
	line := 0
	for scanner.Scan() {
		if m := entryRE.FindSubmatch(scanner.Bytes()); m != nil {
			positions[Handle(m[1])] = line
		}
		line++
	}

	return positions
}
