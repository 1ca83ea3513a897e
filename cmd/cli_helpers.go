package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/wrqqqr/todoList/internal/config"
	"github.com/wrqqqr/todoList/internal/engine"
	"github.com/wrqqqr/todoList/internal/logger"
	"github.com/wrqqqr/todoList/internal/util"
	"github.com/wrqqqr/todoList/store"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isQuiet() bool {
	return viper.GetBool("quiet")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// session is an engine bound to the configured backend for one command.
type session struct {
	eng       *engine.Engine
	adapter   *store.KVAdapter
	opts      store.Options
	log       *slog.Logger
	logCloser io.Closer
}

// openSession wires logging, the store and the engine from GlobalAppConfig.
// Mutating commands take the directory lock so two writers never interleave.
func openSession(mutating bool) (*session, error) {
	cfg := GetConfig()
	dataDir := cfg.Data.Dir

	log, logCloser, err := logger.Setup(logger.Options{
		File:    config.ResolveInDataDir(dataDir, cfg.Log.File),
		Level:   cfg.Log.Level,
		Verbose: isVerbose(),
	})
	if err != nil {
		log.Warn("file logging unavailable, using stderr", "error", err)
	}
	logger.SetBasePath(dataDir)

	format, err := store.ParseFormat(cfg.Data.Format)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	opts := store.Options{
		Dir:          dataDir,
		Backend:      store.Backend(cfg.Data.Backend),
		Format:       format,
		ActiveKey:    cfg.Data.ActiveKey,
		CompletedKey: cfg.Data.CompletedKey,
		Lock:         mutating && store.Backend(cfg.Data.Backend) == store.BackendFile,
	}
	adapter, err := store.Open(opts)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("open %s store in %s: %w", cfg.Data.Backend, dataDir, err)
	}
	log.Debug("store opened", "backend", cfg.Data.Backend, "dir", dataDir, "format", format)

	return &session{
		eng:       engine.New(adapter, engine.WithLogger(log)),
		adapter:   adapter,
		opts:      opts,
		log:       log,
		logCloser: logCloser,
	}, nil
}

// reload replaces the engine with one hydrated from the store again.
func (s *session) reload() {
	s.eng.Close()
	s.eng = engine.New(s.adapter, engine.WithLogger(s.log))
}

// Close flushes pending writes and releases the store.
func (s *session) Close() {
	s.eng.Close()
	if err := s.adapter.Close(); err != nil {
		s.log.Warn("close store", "error", err)
	}
	_ = s.logCloser.Close()
}

// resolveID accepts a full id or a unique prefix.
func (s *session) resolveID(idOrPrefix string) (string, error) {
	p := s.eng.Snapshot()
	ids := make([]string, 0, p.Len())
	for _, t := range p.Active {
		ids = append(ids, t.ID)
	}
	for _, t := range p.Completed {
		ids = append(ids, t.ID)
	}
	return util.ResolveTaskID(ids, idOrPrefix)
}
