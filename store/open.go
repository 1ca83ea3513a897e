package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Backend names a KV implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Options selects and configures the persistence backend.
type Options struct {
	Dir          string
	Backend      Backend
	Format       Format
	ActiveKey    string
	CompletedKey string
	// Lock takes the inter-process directory lock (file backend only).
	Lock bool
	// Fs overrides the filesystem for the file backend.
	Fs afero.Fs
}

// Open builds a KVAdapter for the configured backend.
func Open(opts Options) (*KVAdapter, error) {
	backend := Backend(strings.ToLower(string(opts.Backend)))

	var kv KV
	switch backend {
	case BackendFile, "":
		fileOpts := []FileStoreOption{WithExtension(opts.Format.extensionOrDefault())}
		if opts.Fs != nil {
			fileOpts = append(fileOpts, WithFs(opts.Fs))
		}
		if opts.Lock {
			fileOpts = append(fileOpts, WithLock())
		}
		fs, err := NewFileStore(opts.Dir, fileOpts...)
		if err != nil {
			return nil, err
		}
		kv = fs
	case BackendSQLite:
		db, err := NewSQLiteStore(opts.Dir)
		if err != nil {
			return nil, err
		}
		kv = db
	case BackendMemory:
		kv = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported backend: %s. Supported backends are file, sqlite, memory", opts.Backend)
	}

	format := opts.Format
	if backend == BackendSQLite {
		// sqlite values are always JSON; the format setting only names files.
		format = FormatJSON
	}
	return NewKVAdapter(kv, format, opts.ActiveKey, opts.CompletedKey), nil
}

// WatchFiles lists the base names inside Dir whose changes mean the persisted
// state changed.
func (o Options) WatchFiles() []string {
	switch o.Backend {
	case BackendSQLite:
		return []string{SQLiteFileName, SQLiteFileName + "-wal"}
	case BackendMemory:
		return nil
	}

	active, completed := o.ActiveKey, o.CompletedKey
	if active == "" {
		active = DefaultActiveKey
	}
	if completed == "" {
		completed = DefaultCompletedKey
	}
	ext := o.Format.extensionOrDefault()
	return []string{
		filepath.Base(active + ext),
		filepath.Base(completed + ext),
	}
}

func (f Format) extensionOrDefault() string {
	if f == "" {
		return FormatJSON.Extension()
	}
	return f.Extension()
}
