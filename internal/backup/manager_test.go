package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"partstore-backend/internal/config"
	"partstore-backend/internal/database"
	"partstore-backend/internal/models"
	"partstore-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBackup(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(base, "live.db"))
	t.Setenv("BACKUPS_DIR", filepath.Join(base, "backups"))
	t.Setenv("LOCK_WAIT", "3s")
	cfg := config.Load()
	database.Init(cfg)
	require.NoError(t, Init(cfg))
	return cfg
}

func seedPart(t *testing.T, id string, quantity int) {
	t.Helper()
	_, err := store.Upsert(models.Part{ID: id, Name: "Spark plug", Quantity: quantity})
	require.NoError(t, err)
}

func TestCreateWritesSnapshotFile(t *testing.T) {
	cfg := setupBackup(t)
	seedPart(t, "P-1", 10)

	name, err := Create("backup")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "backup_"))

	_, err = os.Stat(filepath.Join(cfg.BackupsDir, name))
	require.NoError(t, err)

	names, err := List()
	require.NoError(t, err)
	assert.Contains(t, names, name)

	// store is reopened and usable after the snapshot
	got, err := store.Get("P-1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
}

func TestSnapshotsInSameSecondDoNotCollide(t *testing.T) {
	setupBackup(t)
	seedPart(t, "P-1", 1)

	first, err := Create("backup")
	require.NoError(t, err)
	second, err := Create("backup")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestListMostRecentFirst(t *testing.T) {
	setupBackup(t)
	seedPart(t, "P-1", 1)

	first, err := Create("backup")
	require.NoError(t, err)
	second, err := Create("backup")
	require.NoError(t, err)

	names, err := List()
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, second, names[0])
	assert.Equal(t, first, names[1])
}

func TestRestoreRoundTrip(t *testing.T) {
	cfg := setupBackup(t)
	seedPart(t, "P-1", 10)

	snapshot, err := Create("backup")
	require.NoError(t, err)

	// mutate after the snapshot
	_, err = store.Sell("P-1", 4)
	require.NoError(t, err)
	got, err := store.Get("P-1")
	require.NoError(t, err)
	require.Equal(t, 6, got.Quantity)

	pre, err := Restore(snapshot)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pre, "pre_restore_"))
	_, err = os.Stat(filepath.Join(cfg.BackupsDir, pre))
	require.NoError(t, err)

	// live state is back to snapshot time
	got, err = store.Get("P-1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)

	// the pre-restore copy captured the state just before the restore:
	// restoring it brings the sold-down quantity back
	_, err = Restore(pre)
	require.NoError(t, err)
	got, err = store.Get("P-1")
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)
}

func TestRestoreUnknownLeavesStoreUntouched(t *testing.T) {
	setupBackup(t)
	seedPart(t, "P-1", 10)

	_, err := Restore("backup_19990101000000.db")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.Get("P-1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)

	// no pre-restore copy may exist for a rejected restore
	names, err := List()
	require.NoError(t, err)
	for _, name := range names {
		assert.False(t, strings.HasPrefix(name, "pre_restore_"), "unexpected %s", name)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	setupBackup(t)

	for _, name := range []string{"", "../live.db", "a/b.db", "./x.db"} {
		_, err := Path(name)
		assert.ErrorIs(t, err, ErrNotFound, "name %q", name)
	}
}
