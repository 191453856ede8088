// Package jsonfile implements the tracker persistence port on top of a
// single flat JSON document. The whole store is written on every save
// (write-through); the write goes to a temporary file in the same
// directory and is renamed over the target, so a crash mid-write never
// leaves a half-written document for the next load.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/pkg/timeutil"
)

// NeverSentinel is the value stored in last_active for members that have
// never been active. Kept for compatibility with earlier data files.
const NeverSentinel = "Never"

// recordDTO is the persisted representation of one activity record.
type recordDTO struct {
	ProblemsSolved int            `json:"problems_solved"`
	LastActive     string         `json:"last_active"`
	Activity       map[string]int `json:"activity"`
	Goal           int            `json:"goal"`
	DisplayName    string         `json:"display_name,omitempty"`
}

// Store persists the tracker store to a JSON file.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// New creates a file store for the given path.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Load reads the persisted document. A missing or structurally invalid
// file yields an empty store and no error - that is the documented
// "first run" behavior, never surfaced to callers.
//
// The member order of the document is preserved: leaderboard ties break
// by insertion order, so the file is decoded key by key rather than into
// a plain map.
func (s *Store) Load(ctx context.Context) (*tracker.Store, error) {
	store := tracker.NewStore()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("data file not found, starting with empty store", "path", s.path)
		} else {
			s.logger.Warn("failed to read data file, starting with empty store",
				"path", s.path, "error", err)
		}
		return store, nil
	}

	if err := s.decodeInto(store, data); err != nil {
		s.logger.Warn("data file is corrupt, starting with empty store",
			"path", s.path, "error", err)
		return tracker.NewStore(), nil
	}

	s.logger.Info("data file loaded", "path", s.path, "members", store.Len())
	return store, nil
}

// decodeInto decodes the document into the store, preserving key order.
func (s *Store) decodeInto(store *tracker.Store, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected top-level object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected member key, got %v", tok)
		}

		var dto recordDTO
		if err := dec.Decode(&dto); err != nil {
			return err
		}

		store.Insert(dtoToRecord(tracker.MemberID(key), dto))
	}

	return nil
}

// dtoToRecord converts the persisted representation to the domain record,
// dropping malformed day keys and negative counts.
func dtoToRecord(id tracker.MemberID, dto recordDTO) *tracker.ActivityRecord {
	rec := tracker.NewRecord(id)
	rec.DisplayName = dto.DisplayName
	rec.Goal = dto.Goal
	if dto.Goal < 0 {
		rec.Goal = 0
	}
	rec.ProblemsSolved = dto.ProblemsSolved
	if dto.ProblemsSolved < 0 {
		rec.ProblemsSolved = 0
	}

	if dto.LastActive != "" && dto.LastActive != NeverSentinel {
		if t, err := time.Parse(time.RFC3339, dto.LastActive); err == nil {
			rec.LastActive = t.UTC()
		}
	}

	for key, n := range dto.Activity {
		if n < 0 {
			continue
		}
		if _, err := timeutil.ParseDayKey(key); err != nil {
			continue
		}
		rec.Activity[key] = n
	}

	return rec
}

// Save serializes the full store and atomically replaces the data file.
func (s *Store) Save(ctx context.Context, store *tracker.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := encode(store)
	if err != nil {
		return fmt.Errorf("jsonfile: encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: replace data file: %w", err)
	}

	return nil
}

// encode builds the document with members in insertion order.
func encode(store *tracker.Store) ([]byte, error) {
	members := store.Members()

	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, id := range members {
		rec, ok := store.Get(id)
		if !ok {
			continue
		}

		key, err := json.Marshal(id.String())
		if err != nil {
			return nil, err
		}
		value, err := json.MarshalIndent(recordToDTO(rec), "    ", "    ")
		if err != nil {
			return nil, err
		}

		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}

	if len(members) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// recordToDTO converts a domain record to its persisted representation.
func recordToDTO(rec *tracker.ActivityRecord) recordDTO {
	dto := recordDTO{
		ProblemsSolved: rec.ProblemsSolved,
		LastActive:     NeverSentinel,
		Activity:       rec.Activity,
		Goal:           rec.Goal,
		DisplayName:    rec.DisplayName,
	}
	if !rec.NeverActive() {
		dto.LastActive = rec.LastActive.UTC().Format(time.RFC3339)
	}
	return dto
}
