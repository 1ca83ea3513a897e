package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	checksumSuffix = ".checksum"
	tempSuffix     = ".tmp"
	lockFileName   = ".todolist.lock"
	journalName    = ".todolist.pending"
)

// FileStore implements KV with one file per key inside a directory.
// Every value has a SHA256 sidecar; a mismatch is reported as ErrCorrupt.
type FileStore struct {
	fs  afero.Fs
	dir string
	ext string
	flk *flock.Flock
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithFs swaps the filesystem. Tests use afero.NewMemMapFs.
func WithFs(fsys afero.Fs) FileStoreOption {
	return func(s *FileStore) { s.fs = fsys }
}

// WithExtension sets the file extension appended to each key (e.g. ".json").
func WithExtension(ext string) FileStoreOption {
	return func(s *FileStore) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.ext = ext
	}
}

// WithLock takes an exclusive inter-process lock on the data directory for
// the lifetime of the store. Only meaningful on the OS filesystem.
func WithLock() FileStoreOption {
	return func(s *FileStore) {
		s.flk = flock.New(filepath.Join(s.dir, lockFileName))
	}
}

// NewFileStore creates the directory if needed and, when WithLock is given,
// acquires the directory lock and finishes any batch write a crash left
// half-applied.
func NewFileStore(dir string, opts ...FileStoreOption) (*FileStore, error) {
	s := &FileStore{
		fs:  afero.NewOsFs(),
		dir: dir,
		ext: FormatJSON.Extension(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}

	if s.flk != nil {
		locked, err := s.flk.TryLock()
		if err != nil {
			return nil, fmt.Errorf("lock data directory %s: %w", dir, err)
		}
		if !locked {
			return nil, fmt.Errorf("data directory %s is locked by another process", dir)
		}
		if err := s.recoverJournal(); err != nil {
			_ = s.flk.Unlock()
			return nil, err
		}
	}

	return s, nil
}

// Dir returns the directory holding the data files.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path for key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+s.ext)
}

func calculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Get reads the value for key and verifies it against its checksum sidecar.
// A value without a sidecar is accepted; the next Set writes one.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	path := s.Path(key)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	expected, err := afero.ReadFile(s.fs, path+checksumSuffix)
	switch {
	case err == nil:
		if actual := calculateChecksum(data); strings.TrimSpace(string(expected)) != actual {
			return nil, true, fmt.Errorf("checksum mismatch for %s: %w", path, ErrCorrupt)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, true, fmt.Errorf("read checksum for %s: %w", path, err)
	}

	return data, true, nil
}

// Set writes the value and its checksum through temp files and renames them
// into place.
func (s *FileStore) Set(key string, value []byte) error {
	if err := s.writeTemp(key, value); err != nil {
		s.removeTemps([]string{key})
		return err
	}
	if err := s.promote(key); err != nil {
		s.removeTemps([]string{key})
		return err
	}
	return nil
}

// SetMany writes several keys so that after a crash either all of them or
// none are in place. The temp files are written first; renaming the journal
// into place commits the batch, and the renames that follow are replayed by
// the next locked open if they are interrupted.
func (s *FileStore) SetMany(values map[string][]byte) error {
	keys := slices.Sorted(maps.Keys(values))
	for _, key := range keys {
		if err := s.writeTemp(key, values[key]); err != nil {
			s.removeTemps(keys)
			return err
		}
	}

	journal := s.journalPath()
	if err := afero.WriteFile(s.fs, journal+tempSuffix, []byte(strings.Join(keys, "\n")), 0o644); err != nil {
		s.removeTemps(keys)
		return fmt.Errorf("write journal %s: %w", journal, err)
	}
	if err := s.fs.Rename(journal+tempSuffix, journal); err != nil {
		_ = s.fs.Remove(journal + tempSuffix)
		s.removeTemps(keys)
		return fmt.Errorf("commit journal %s: %w", journal, err)
	}

	return s.replay(keys)
}

func (s *FileStore) journalPath() string {
	return filepath.Join(s.dir, journalName)
}

func (s *FileStore) writeTemp(key string, value []byte) error {
	path := s.Path(key)
	if err := afero.WriteFile(s.fs, path+tempSuffix, value, 0o644); err != nil {
		return fmt.Errorf("write temp file %s: %w", path+tempSuffix, err)
	}
	checksumPath := path + checksumSuffix + tempSuffix
	if err := afero.WriteFile(s.fs, checksumPath, []byte(calculateChecksum(value)), 0o644); err != nil {
		return fmt.Errorf("write temp checksum %s: %w", checksumPath, err)
	}
	return nil
}

func (s *FileStore) removeTemps(keys []string) {
	for _, key := range keys {
		path := s.Path(key)
		_ = s.fs.Remove(path + tempSuffix)
		_ = s.fs.Remove(path + checksumSuffix + tempSuffix)
	}
}

// promote renames the temp value and checksum of key into place. A temp file
// that is already gone was promoted earlier.
func (s *FileStore) promote(key string) error {
	path := s.Path(key)
	if err := s.fs.Rename(path+tempSuffix, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("rename %s to %s: %w", path+tempSuffix, path, err)
	}
	checksumPath := path + checksumSuffix
	if err := s.fs.Rename(checksumPath+tempSuffix, checksumPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("data file %s updated but checksum %s was not: %w", path, checksumPath, err)
	}
	return nil
}

func (s *FileStore) replay(keys []string) error {
	for _, key := range keys {
		if err := s.promote(key); err != nil {
			return err
		}
	}
	if err := s.fs.Remove(s.journalPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove journal: %w", err)
	}
	return nil
}

// recoverJournal replays a committed batch that was interrupted.
func (s *FileStore) recoverJournal() error {
	data, err := afero.ReadFile(s.fs, s.journalPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	var keys []string
	for _, key := range strings.Split(string(data), "\n") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	if err := s.replay(keys); err != nil {
		return fmt.Errorf("recover interrupted write: %w", err)
	}
	return nil
}

// Close releases the directory lock if one was taken.
func (s *FileStore) Close() error {
	if s.flk == nil {
		return nil
	}
	return s.flk.Unlock()
}
