// Package recorder keeps the durable append-only JSON logs and computes
// trailing-window aggregates over them.
package recorder

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"alpha-sparrow/internal/domain"
)

const (
	priceLogFile = "crypto_data.json"
	riskLogFile  = "risk_meter.json"
	morningFile  = "good_morning.json"
)

// RiskEntry is one appended risk-meter snapshot.
type RiskEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	RiskMessage string    `json:"risk_message"`
}

// MorningEntry tracks the last good-morning message sent. Unlike the logs
// it is a single object, overwritten on each send.
type MorningEntry struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Store persists the JSON logs under one directory. Appends rewrite the
// whole array to a temp file and rename it into place, so a concurrent
// reader sees the old or the new log, never a torn one. The mutex
// serializes writers; reads are lock-free.
type Store struct {
	mu  sync.Mutex
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// AppendRecord appends one snapshot to the price log.
func (s *Store) AppendRecord(rec domain.TimeSeriesRecord) error {
	return appendToLog(s, priceLogFile, rec)
}

// Records returns the full price log. A missing or corrupt file reads as
// an empty log; callers never see the error.
func (s *Store) Records() []domain.TimeSeriesRecord {
	return readLog[domain.TimeSeriesRecord](s, priceLogFile)
}

// AppendRisk appends one entry to the risk-meter log.
func (s *Store) AppendRisk(entry RiskEntry) error {
	return appendToLog(s, riskLogFile, entry)
}

// RiskEntries returns the full risk-meter log.
func (s *Store) RiskEntries() []RiskEntry {
	return readLog[RiskEntry](s, riskLogFile)
}

// WriteMorning overwrites the last-morning marker.
func (s *Store) WriteMorning(entry MorningEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFileAtomic(filepath.Join(s.dir, morningFile), entry)
}

// LastMorning returns the last recorded morning message, if any.
func (s *Store) LastMorning() (MorningEntry, bool) {
	var entry MorningEntry
	data, err := os.ReadFile(filepath.Join(s.dir, morningFile))
	if err != nil {
		return entry, false
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return MorningEntry{}, false
	}
	return entry, true
}

func appendToLog[T any](s *Store, name string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := readLog[T](s, name)
	items = append(items, item)
	return writeFileAtomic(filepath.Join(s.dir, name), items)
}

func readLog[T any](s *Store, name string) []T {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("recorder: read %s: %v", name, err)
		}
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		// Corrupt log degrades to empty rather than failing the caller.
		log.Printf("recorder: corrupt %s, treating as empty: %v", name, err)
		return nil
	}
	return items
}

func writeFileAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
