package store

import "context"

// Options selects a store backend. DatabaseURL wins over Path.
type Options struct {
	DatabaseURL string
	Path        string
}

// Open returns the store selected by opts. An empty Path falls back to DefaultPath.
func Open(ctx context.Context, opts Options) (Store, error) {
	if opts.DatabaseURL != "" {
		return ConnectPG(ctx, opts.DatabaseURL)
	}
	path := opts.Path
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return NewFileStore(path)
}
