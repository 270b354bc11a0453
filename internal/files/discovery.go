package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"etfgeo/internal/errors"
)

// holdingsExtensions lists the file extensions treated as holdings exports.
var holdingsExtensions = []string{".csv", ".tsv", ".txt"}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides holdings file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindHoldingsFiles finds all candidate holdings files in the specified
// directory, newest first.
func (d *Discovery) FindHoldingsFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !isHoldingsFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// ResolveInput turns an input path into a concrete holdings file. A file
// path is returned as-is; for a directory the most recently modified
// holdings file wins. A missing path or a directory without any candidate
// file yields a not-found error.
func (d *Discovery) ResolveInput(path string) (string, error) {
	fullPath := d.resolve(path)

	info, err := os.Stat(fullPath)
	if err != nil {
		return "", errors.NewNotFoundError(fmt.Sprintf("input path %s", fullPath))
	}
	if !info.IsDir() {
		return fullPath, nil
	}

	candidates, err := d.FindHoldingsFiles(fullPath)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", errors.NewNotFoundError(fmt.Sprintf("holdings file in %s", fullPath))
	}
	return candidates[0].Path, nil
}

// ResolveDefaultInput resolves an input path that came from configuration
// rather than an explicit user choice. It behaves like ResolveInput, except
// that when the named file is absent its directory is scanned for the most
// recently modified holdings file before giving up.
func (d *Discovery) ResolveDefaultInput(path string) (string, error) {
	resolved, err := d.ResolveInput(path)
	if err == nil {
		return resolved, nil
	}

	fullPath := d.resolve(path)
	if info, statErr := os.Stat(fullPath); statErr == nil && info.IsDir() {
		return "", err
	}

	candidates, findErr := d.FindHoldingsFiles(filepath.Dir(fullPath))
	if findErr != nil || len(candidates) == 0 {
		return "", err
	}
	return candidates[0].Path, nil
}

func (d *Discovery) resolve(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}

func isHoldingsFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range holdingsExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
