package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "etfgeo/internal/errors"
)

func writeFileAt(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("Name,Weight,Location\n"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestDiscovery_FindHoldingsFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeFileAt(t, dir, "old.csv", now.Add(-2*time.Hour))
	newest := writeFileAt(t, dir, "holdings.tsv", now)
	writeFileAt(t, dir, "mid.txt", now.Add(-time.Hour))
	writeFileAt(t, dir, "notes.md", now) // ignored extension
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	files, err := NewDiscovery("").FindHoldingsFiles(dir)
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, newest, files[0].Path)
	assert.Equal(t, "mid.txt", files[1].Name)
	assert.Equal(t, "old.csv", files[2].Name)
}

func TestDiscovery_FindHoldingsFiles_MissingDirectory(t *testing.T) {
	_, err := NewDiscovery("").FindHoldingsFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestDiscovery_FindHoldingsFiles_RelativeToBase(t *testing.T) {
	base := t.TempDir()
	sub := filepath.Join(base, "downloads")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFileAt(t, sub, "holdings.csv", time.Now())

	files, err := NewDiscovery(base).FindHoldingsFiles("downloads")
	require.NoError(t, err)
	require.Len(t, files, 1)
}

func TestDiscovery_ResolveInput(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFileAt(t, dir, "old.csv", now.Add(-time.Hour))
	newest := writeFileAt(t, dir, "new.csv", now)

	t.Run("file path returned as-is", func(t *testing.T) {
		path, err := NewDiscovery("").ResolveInput(newest)
		require.NoError(t, err)
		assert.Equal(t, newest, path)
	})

	t.Run("directory resolves to newest holdings file", func(t *testing.T) {
		path, err := NewDiscovery("").ResolveInput(dir)
		require.NoError(t, err)
		assert.Equal(t, newest, path)
	})

	t.Run("missing path fails", func(t *testing.T) {
		_, err := NewDiscovery("").ResolveInput(filepath.Join(dir, "absent.csv"))
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
	})

	t.Run("missing file with siblings still fails", func(t *testing.T) {
		// ResolveInput is strict: an explicit path must exist even when
		// other holdings files sit next to it.
		_, err := NewDiscovery("").ResolveInput(filepath.Join(dir, "absent.csv"))
		assert.Error(t, err)
	})

	t.Run("directory without candidates fails", func(t *testing.T) {
		empty := t.TempDir()
		_, err := NewDiscovery("").ResolveInput(empty)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
	})
}

func TestDiscovery_ResolveDefaultInput(t *testing.T) {
	t.Run("existing file returned as-is", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFileAt(t, dir, "holdings.csv", time.Now())

		resolved, err := NewDiscovery("").ResolveDefaultInput(path)
		require.NoError(t, err)
		assert.Equal(t, path, resolved)
	})

	t.Run("absent default falls back to newest sibling export", func(t *testing.T) {
		dir := t.TempDir()
		writeFileAt(t, dir, "fund_export_q1.csv", time.Now().Add(-time.Hour))
		newest := writeFileAt(t, dir, "fund_export_q2.csv", time.Now())

		resolved, err := NewDiscovery(dir).ResolveDefaultInput("holdings.csv")
		require.NoError(t, err)
		assert.Equal(t, newest, resolved)
	})

	t.Run("absent default without siblings fails", func(t *testing.T) {
		dir := t.TempDir()
		_, err := NewDiscovery(dir).ResolveDefaultInput("holdings.csv")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
	})

	t.Run("directory default delegates to directory discovery", func(t *testing.T) {
		dir := t.TempDir()
		newest := writeFileAt(t, dir, "holdings.csv", time.Now())

		resolved, err := NewDiscovery("").ResolveDefaultInput(dir)
		require.NoError(t, err)
		assert.Equal(t, newest, resolved)
	})
}
