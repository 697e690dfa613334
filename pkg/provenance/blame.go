package provenance

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/agentstation/teamsync/pkg/errors"
	"github.com/agentstation/teamsync/pkg/roster"
)

// LiveSource blames the current roster file in its git checkout and pairs the
// per-line hashes with the handle positions of the same bytes.
func LiveSource(log *zerolog.Logger, rosterPath string) (Source, error) {
	data, err := os.ReadFile(rosterPath)
	if err != nil {
		return Source{}, errors.NewIOError("read", rosterPath, err)
	}

	hashes, err := gitBlame(log, rosterPath)
	if err != nil {
		return Source{}, err
	}

	return Source{
		HashByLine: hashes,
		LineOf:     roster.Positions(data),
	}, nil
}

// gitBlame runs `git blame -l -b` on the file and returns the leading commit
// hash of each output line. -b leaves boundary commits blank so they can
// never match a real hash.
func gitBlame(log *zerolog.Logger, path string) ([]string, error) {
	cmd := exec.Command("git", "blame", "-l", "-b", filepath.Base(path))
	cmd.Dir = filepath.Dir(path)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if stderr.Len() > 0 {
		log.Warn().
			Str("stderr", stderr.String()).
			Msg("Stderr from git blame")
	}
	if err != nil {
		return nil, errors.NewIOError("blame", path, err)
	}

	return parseBlame(out), nil
}

// parseBlame extracts the first space-separated field of each blame line.
func parseBlame(out []byte) []string {
	var hashes []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		hash, _, _ := strings.Cut(line, " ")
		hashes = append(hashes, hash)
	}
	return hashes
}

// archiveManifest lists the captured snapshots in order, newest first. Each
// entry expects <hash>.blame and <hash>.roster files next to the manifest.
type archiveManifest struct {
	Snapshots []string `yaml:"snapshots"`
}

// ManifestName is the file naming the archived snapshots within an archive
// directory.
const ManifestName = "manifest.yaml"

// LoadArchives reads the version-controlled snapshot archive. Each snapshot
// was captured immediately before one of the barrier commits, so together
// they cover the whole span the barriers blind us to. A missing directory
// yields no sources: resolution then works from the live blame alone.
func LoadArchives(log *zerolog.Logger, dir string) ([]Source, error) {
	manifestPath := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().
				Str("dir", dir).
				Msg("No snapshot archive found, resolving from live blame only")
			return nil, nil
		}
		return nil, errors.NewIOError("read", manifestPath, err)
	}

	var manifest archiveManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, errors.NewParseError("yaml", manifestPath, "invalid archive manifest", err)
	}

	sources := make([]Source, 0, len(manifest.Snapshots))
	for _, hash := range manifest.Snapshots {
		source, err := loadArchivedSource(dir, hash)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	log.Debug().
		Int("snapshots", len(sources)).
		Str("dir", dir).
		Msg("Loaded archived roster snapshots")
	return sources, nil
}

// loadArchivedSource reads one captured blame/roster pair.
func loadArchivedSource(dir, hash string) (Source, error) {
	blamePath := filepath.Join(dir, hash+".blame")
	blame, err := os.ReadFile(blamePath)
	if err != nil {
		return Source{}, errors.NewIOError("read", blamePath, err)
	}

	rosterPath := filepath.Join(dir, hash+".roster")
	rosterData, err := os.ReadFile(rosterPath)
	if err != nil {
		return Source{}, errors.NewIOError("read", rosterPath, err)
	}

	return Source{
		HashByLine: parseBlame(blame),
		LineOf:     roster.Positions(rosterData),
	}, nil
}
