package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/stickyboard/pkg/adapters/fs"
	"github.com/aretw0/stickyboard/pkg/adapters/memory"
	"github.com/aretw0/stickyboard/pkg/adapters/sqlite"
	"github.com/aretw0/stickyboard/pkg/core"
)

// SQLiteFile is the database file name used inside the data directory.
const SQLiteFile = "stickyboard.db"

// Init builds and initializes the store named by the adapter option.
// The uri is adapter-specific: a data directory for "fs" and "sqlite",
// ignored for "memory".
func Init(uri string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initStore(context.Background(), uri, o)
}

func initStore(ctx context.Context, uri string, o *options) (core.Store, error) {
	if o.store != nil {
		return o.store, nil
	}

	var store core.Store
	switch o.adapter {
	case "fs", "":
		store = fs.NewStore(fsConfig(uri, o))
	case "sqlite":
		path := resolvePath(uri, o)
		if path != ":memory:" {
			path = filepath.Join(path, SQLiteFile)
		}
		readOnly, _ := o.config["read_only"].(bool)
		store = sqlite.NewStore(sqlite.Config{Path: path, ReadOnly: readOnly, Logger: o.logger})
	case "memory":
		store = memory.New()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := store.Initialize(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// resolvePath applies the dev sandbox rules to uri.
func resolvePath(uri string, o *options) string {
	if uri == ":memory:" {
		return uri
	}
	tempDir, _ := o.config["temp_dir"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	bypassSafety := isReadOnly || !devSafety
	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolved := ResolveDataPath(uri, useTemp)

	if o.logger != nil && IsDevRun() {
		switch {
		case isReadOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case bypassSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		default:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		}
	}
	if o.logger != nil && useTemp && resolved != uri {
		o.logger.Warn("data directory re-rooted", "original_path", uri, "resolved_path", resolved)
	}
	return resolved
}

func fsConfig(uri string, o *options) fs.Config {
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	return fs.Config{
		Path:         resolvePath(uri, o),
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	}
}
