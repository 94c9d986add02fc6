package hierarchy

import (
	"context"
	"errors"
	"io/fs"
	"os"

	errs "github.com/matzehuels/treemap/pkg/errors"
)

// DefaultURL is the movie revenue dataset rendered when no source is given.
const DefaultURL = "https://cdn.rawgit.com/freeCodeCamp/testable-projects-fcc/a80ce8f9/src/data/tree_map/movie-data.json"

// Fetcher retrieves a document body. *httputil.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Load fetches url and decodes the tree selected by selector.
func Load(ctx context.Context, f Fetcher, url, selector string) (*Node, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return Decode(data, selector)
}

// ReadFile reads a document from disk and decodes the tree selected by selector.
func ReadFile(path, selector string) (*Node, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Decode(data, selector)
}
