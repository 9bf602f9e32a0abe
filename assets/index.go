// Package assets maintains the card art directory: building the lookup index
// the resolver matches against and fetching missing images from remote
// sources.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"dkc/resolve"
)

// sniffLen covers every magic number filetype knows about.
const sniffLen = 262

// BuildIndex walks dir and maps each image file's base name (sans extension)
// to its path. Base names double as matching keys: numeric catalog
// identifiers and normalized card names alike. Files that are not images are
// ignored. On duplicate keys the naturally-first file wins, so "Card.jpg"
// shadows "Card.png" deterministically regardless of directory order.
func BuildIndex(dir string, log *zap.Logger) (resolve.Index, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to scan asset directory %s: %w", dir, err)
	}
	sort.Sort(natural.StringSlice(files))

	idx := make(resolve.Index, len(files))
	for _, path := range files {
		ok, err := isImage(path)
		if err != nil {
			log.Warn("Unable to probe asset", zap.String("path", path), zap.Error(err))
			continue
		}
		if !ok {
			log.Debug("Ignoring non-image file", zap.String("path", path))
			continue
		}
		key := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if prev, dup := idx[key]; dup {
			log.Warn("Duplicate asset key", zap.String("key", key), zap.String("kept", prev), zap.String("ignored", path))
			continue
		}
		idx[key] = path
	}

	log.Debug("Asset index built", zap.String("dir", dir), zap.Int("assets", len(idx)))
	return idx, nil
}

// isImage sniffs file content, the extension is not trusted.
func isImage(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		return false, err
	}
	return filetype.IsImage(buf[:n]), nil
}
