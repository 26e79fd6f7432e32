package snapshot

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vango-dev/incr/internal/errors"
)

// DiskPublisher writes snapshots as files under a directory.
type DiskPublisher struct {
	dir    string
	logger *slog.Logger
}

// NewDiskPublisher creates dir if needed and returns a publisher writing
// into it.
func NewDiskPublisher(dir string, opts ...Option) (*DiskPublisher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("E040").Wrap(err)
	}
	return &DiskPublisher{dir: dir, logger: buildOptions(opts).logger}, nil
}

// Dir returns the destination directory.
func (p *DiskPublisher) Dir() string { return p.dir }

// Publish writes html to dir/name through a temp file and rename, so
// readers never observe a partial snapshot. The returned location is the
// file path.
func (p *DiskPublisher) Publish(ctx context.Context, name string, html []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.New("E040").Wrap(err)
	}
	if err := checkName(name); err != nil {
		return "", err
	}

	dest := filepath.Join(p.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", errors.New("E040").Wrap(err)
	}

	f, err := os.CreateTemp(filepath.Dir(dest), ".snapshot-*")
	if err != nil {
		return "", errors.New("E040").Wrap(err)
	}
	tmp := f.Name()

	if _, err := f.Write(html); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", errors.New("E040").Wrap(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", errors.New("E040").Wrap(err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", errors.New("E040").Wrap(err)
	}
	p.logger.Debug("snapshot published", "name", name, "location", dest, "bytes", len(html))
	return dest, nil
}
