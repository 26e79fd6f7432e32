package snapshot

import (
	"context"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"github.com/vango-dev/incr/internal/errors"
)

// Publisher stores a named snapshot and returns its location.
type Publisher interface {
	Publish(ctx context.Context, name string, html []byte) (string, error)
}

// ContentType is the media type snapshots are stored with.
const ContentType = "text/html; charset=utf-8"

// checkName rejects names that would escape the destination.
func checkName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return errors.New("E040").WithDetailf("invalid snapshot name %q", name)
	}
	if clean := path.Clean(name); clean != name || clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.New("E040").WithDetailf("invalid snapshot name %q", name)
	}
	return nil
}

// Name returns the conventional snapshot name for the nth pass of demo.
func Name(demo string, pass int) string {
	return demo + "-" + strconv.Itoa(pass) + ".html"
}

// Option configures a publisher.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the publisher's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
