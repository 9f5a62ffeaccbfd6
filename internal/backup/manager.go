package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"partstore-backend/internal/config"
	"partstore-backend/internal/database"
	"partstore-backend/internal/eventlog"
)

var ErrNotFound = errors.New("backup not found")

// stampLayout keeps filenames sortable; reverse lexical order is reverse
// chronological.
const stampLayout = "20060102150405"

var dir = "backups"

func Init(cfg *config.Config) error {
	dir = cfg.BackupsDir
	return os.MkdirAll(dir, 0o755)
}

// Create takes a crash-consistent snapshot of the live database file and
// returns the snapshot filename. The store is quiesced for the duration
// of the copy, so no mutation can be half-visible in the snapshot.
func Create(prefix string) (string, error) {
	if err := database.Acquire(); err != nil {
		return "", err
	}
	defer database.Release()

	name := uniqueName(prefix)
	err := database.Quiesce(func(path string) error {
		return copyFile(path, filepath.Join(dir, name))
	})
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	eventlog.Logf("snapshot created: %s", name)
	return name, nil
}

// List returns snapshot filenames, most recent first.
func List() ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Path resolves a snapshot name to its file path. Names carrying path
// components are rejected, so a handle can never reach outside the
// backups directory.
func Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrNotFound
	}
	p := filepath.Join(dir, name)
	if _, err := os.Stat(p); err != nil {
		return "", ErrNotFound
	}
	return p, nil
}

// Restore replaces the live database with the named snapshot and returns
// the name of the pre-restore copy. The pre-restore copy of the current
// state is written and synced before the overwrite begins, so a restore
// is never destructive without an undo point. A failure before the
// overwrite leaves the live store untouched; a failure during the
// overwrite leaves it undefined and the error names the pre-restore copy
// the operator must fall back to.
func Restore(name string) (string, error) {
	src, err := Path(name)
	if err != nil {
		return "", err
	}

	if err := database.Acquire(); err != nil {
		return "", err
	}
	defer database.Release()

	preName := uniqueName("pre_restore")
	err = database.Quiesce(func(path string) error {
		if err := copyFile(path, filepath.Join(dir, preName)); err != nil {
			return fmt.Errorf("pre-restore copy: %w", err)
		}
		if err := copyFile(src, path); err != nil {
			return fmt.Errorf("overwrite interrupted, live store may be partial, recover manually from %s: %w", preName, err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("restore: %w", err)
	}
	eventlog.Logf("restored %s, pre-restore copy saved as %s", name, preName)
	return preName, nil
}

// uniqueName builds a timestamped snapshot filename that does not collide
// with an existing one. Collisions happen when two snapshots land in the
// same second, and overwriting a snapshot would break its immutability.
func uniqueName(prefix string) string {
	stamp := time.Now().UTC().Format(stampLayout)
	name := fmt.Sprintf("%s_%s.db", prefix, stamp)
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return name
		}
		name = fmt.Sprintf("%s_%s_%d.db", prefix, stamp, n)
	}
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	// flush to disk before reporting the copy durable
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
