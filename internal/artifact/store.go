// Package artifact implements C7: build-or-load the engine's expensive
// derived artifacts (normalized catalog maps, dictionary set, spell index,
// distinct-title list), persisting them to disk so a later process start
// can skip recomputation, with a version stamp that forces a rebuild when
// the gazetteer sources it was built from have changed.
package artifact

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store locates and persists artifacts under a configured directory.
type Store struct {
	dir     string
	version string
	logger  *zap.Logger
}

// New returns a Store rooted at dir, tagging every artifact it writes with
// version (typically gazetteer.Store.Version()). logger may be nil.
func New(dir, version string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, version: version, logger: logger}
}

type envelope struct {
	Version string
	Payload []byte
}

// LoadOrBuild deserializes the artifact named name from disk if present and
// version-matched; otherwise it calls build, persists the result
// atomically (write-tmp-then-rename), and returns it. A file that cannot
// be read, whose envelope does not decode, or whose version differs is
// rebuilt rather than reported. Only a payload that fails to decode into T
// after a version match is returned to the caller as an error.
func LoadOrBuild[T any](s *Store, name string, build func() (T, error)) (T, error) {
	var zero T
	path := s.path(name)

	if data, ok := s.tryLoad(path); ok {
		var value T
		if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&value); err != nil {
			return zero, fmt.Errorf("artifact: decode %s: %w", path, err)
		}
		s.logger.Debug("artifact: loaded from disk", zap.String("name", name))
		return value, nil
	}

	value, err := build()
	if err != nil {
		return zero, fmt.Errorf("artifact: build %s: %w", name, err)
	}

	if err := s.persist(path, value); err != nil {
		s.logger.Warn("artifact: failed to persist, continuing with in-memory value",
			zap.String("name", name), zap.Error(err))
	}
	return value, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".artifact")
}

func (s *Store) tryLoad(path string) ([]byte, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&env); err != nil {
		s.logger.Warn("artifact: corrupt envelope, rebuilding", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	if env.Version != s.version {
		s.logger.Info("artifact: version mismatch, rebuilding",
			zap.String("path", path), zap.String("have", env.Version), zap.String("want", s.version))
		return nil, false
	}
	return env.Payload, true
}

func (s *Store) persist(path string, value any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.dir, err)
	}

	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(value); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	var full bytes.Buffer
	if err := gob.NewEncoder(&full).Encode(envelope{Version: s.version, Payload: payload.Bytes()}); err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(full.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s -> %s: %w", tmpName, path, err)
	}
	return nil
}
