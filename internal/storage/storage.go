// Package storage persists per-guild sync state on a JSON-file key/value
// store. Records are kept as plain JSON-friendly values, so everything
// round-trips through a marshal when read back.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

const syncHistoryLimit = 50

// Storage wraps the datastore with typed accessors for guild sync state.
type Storage struct {
	ds *datastore.DataStore
}

// SyncRecord is one executed sync action for a guild.
type SyncRecord struct {
	Action   string    `json:"action"` // "create", "edit", "delete"
	Command  string    `json:"command"`
	Datetime time.Time `json:"datetime"`
}

// Record is everything stored per guild.
type Record struct {
	SyncHistory      []SyncRecord `json:"sync_history"`
	DisabledCommands []string     `json:"disabled_commands"`
	Blacklisted      bool         `json:"blacklisted"`
}

// New opens the datastore at filePath, creating it if needed.
func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and closes the underlying datastore.
func (s *Storage) Close() error {
	return s.ds.Close()
}

func (s *Storage) guildRecord(guildID string) (*Record, error) {
	data, exists := s.ds.Get(guildKey(guildID))
	if !exists {
		return &Record{}, nil
	}

	// Values loaded from disk come back as generic maps; round-trip through
	// JSON to get the typed record.
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling guild record: %w", err)
	}
	var record Record
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling guild record: %w", err)
	}

	if len(record.SyncHistory) > syncHistoryLimit {
		record.SyncHistory = record.SyncHistory[len(record.SyncHistory)-syncHistoryLimit:]
	}
	return &record, nil
}

func guildKey(guildID string) string {
	if guildID == "" {
		return "global"
	}
	return guildID
}

// AppendSyncRecord records an executed sync action for a guild.
func (s *Storage) AppendSyncRecord(guildID string, rec SyncRecord) error {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}
	record.SyncHistory = append(record.SyncHistory, rec)
	s.ds.Add(guildKey(guildID), record)
	return nil
}

// FetchSyncHistory returns the recorded sync actions for a guild, oldest first.
func (s *Storage) FetchSyncHistory(guildID string) ([]SyncRecord, error) {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.SyncHistory, nil
}

// SetCommandDisabled marks a command name as excluded from (or restored to)
// the guild's desired set.
func (s *Storage) SetCommandDisabled(guildID, name string, disabled bool) error {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}

	filtered := record.DisabledCommands[:0]
	for _, n := range record.DisabledCommands {
		if n != name {
			filtered = append(filtered, n)
		}
	}
	record.DisabledCommands = filtered
	if disabled {
		record.DisabledCommands = append(record.DisabledCommands, name)
	}

	s.ds.Add(guildKey(guildID), record)
	return nil
}

// GetDisabledCommands returns the guild's disabled command names.
func (s *Storage) GetDisabledCommands(guildID string) ([]string, error) {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.DisabledCommands, nil
}

// SetGuildBlacklisted flags a guild so the syncer strips its commands instead
// of registering them.
func (s *Storage) SetGuildBlacklisted(guildID string, blacklisted bool) error {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}
	record.Blacklisted = blacklisted
	s.ds.Add(guildKey(guildID), record)
	return nil
}

// IsGuildBlacklisted reports whether a guild is blacklisted.
func (s *Storage) IsGuildBlacklisted(guildID string) (bool, error) {
	record, err := s.guildRecord(guildID)
	if err != nil {
		return false, err
	}
	return record.Blacklisted, nil
}
