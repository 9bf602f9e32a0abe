package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dkc/misc"
)

// maxArtSize caps a single downloaded image.
const maxArtSize = 32 << 20

// Fetcher downloads card art by catalog identifier. Each source is a URL
// template with a single %s placeholder for the identifier; sources are tried
// in order and the first success wins.
type Fetcher struct {
	dir     string
	sources []string
	client  *http.Client
	log     *zap.Logger
}

// NewFetcher returns a fetcher writing into dir.
func NewFetcher(dir string, sources []string, log *zap.Logger) *Fetcher {
	return &Fetcher{
		dir:     dir,
		sources: sources,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// Fetch downloads art for every identifier that has no file in the asset
// directory yet. It returns the number of newly stored files; failures are
// accumulated per identifier and do not stop the batch.
func (f *Fetcher) Fetch(ctx context.Context, identifiers []string) (int, error) {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return 0, fmt.Errorf("unable to create asset directory %s: %w", f.dir, err)
	}

	var (
		stored int
		errs   error
	)
	for _, id := range identifiers {
		if len(id) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stored, multierr.Append(errs, err)
		}
		if existing := f.existingFile(id); len(existing) != 0 {
			f.log.Debug("Art already present", zap.String("id", id), zap.String("path", existing))
			continue
		}
		path, err := f.fetchOne(ctx, id)
		if err != nil {
			f.log.Warn("Unable to fetch art", zap.String("id", id), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("id %s: %w", id, err))
			continue
		}
		f.log.Info("Art fetched", zap.String("id", id), zap.String("path", path))
		stored++
	}
	return stored, errs
}

// existingFile returns the path of any file already stored for id.
func (f *Fetcher) existingFile(id string) string {
	matches, err := filepath.Glob(filepath.Join(f.dir, id+".*"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	return matches[0]
}

// fetchOne tries every source in order and stores the first image received.
// The stored extension comes from content sniffing, not from the URL.
func (f *Fetcher) fetchOne(ctx context.Context, id string) (string, error) {
	var errs error
	for _, src := range f.sources {
		url := strings.ReplaceAll(src, "%s", id)
		data, err := f.download(ctx, url)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		kind, err := filetype.Image(data)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: not an image: %w", url, err))
			continue
		}
		path := filepath.Join(f.dir, id+"."+kind.Extension)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", fmt.Errorf("unable to store %s: %w", path, err)
		}
		return path, nil
	}
	return "", errs
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", misc.GetAppName()+"/"+misc.GetVersion())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArtSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	if len(data) > maxArtSize {
		return nil, fmt.Errorf("%s: response over %d bytes", url, maxArtSize)
	}
	return data, nil
}
