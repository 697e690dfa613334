package provenance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/teamsync/pkg/logging"
	"github.com/agentstation/teamsync/pkg/roster"
)

func TestLoadArchives(t *testing.T) {
	dir := t.TempDir()

	const snapshot = "9ce5fb002a7cf2369cddec8c25519ff73e0cf394"
	manifest := "snapshots:\n  - " + snapshot + "\n"
	blame := originHash + " alice:\n" + originHash + "   github: alice\n"
	rosterText := "alice:\n  github: alice\n"

	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshot+".blame"), []byte(blame), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshot+".roster"), []byte(rosterText), 0o644))

	sources, err := LoadArchives(logging.NewNopLogger(), dir)
	require.NoError(t, err)
	require.Len(t, sources, 1)

	assert.Equal(t, []string{originHash, originHash}, sources[0].HashByLine)
	assert.Equal(t, map[roster.Handle]int{"alice": 0}, sources[0].LineOf)
}

func TestLoadArchivesMissingDir(t *testing.T) {
	sources, err := LoadArchives(logging.NewNopLogger(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestLoadArchivesMissingSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	manifest := "snapshots:\n  - deadbeef\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644))

	_, err := LoadArchives(logging.NewNopLogger(), dir)
	assert.Error(t, err)
}
