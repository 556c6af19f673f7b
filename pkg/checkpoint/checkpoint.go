package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"steamdex/pkg/logger"
	"steamdex/pkg/models"
)

// Manager persists full-snapshot checkpoints of a collection run. Every
// snapshot is a complete copy of the accumulated records at a progress
// index; later snapshots supersede earlier ones, nothing is merged. An
// explicit manifest records every snapshot so resume never depends on
// directory enumeration order.
type Manager struct {
	dir    string
	prefix string
	logger logger.Logger
}

// Snapshot is the state restored from a checkpoint.
type Snapshot struct {
	Progress  int
	Records   []models.GameRecord
	Processed map[int]bool
}

// Manifest indexes the snapshots of a run.
type Manifest struct {
	RunID     string          `json:"run_id"`
	Prefix    string          `json:"prefix"`
	Entries   []ManifestEntry `json:"entries"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ManifestEntry describes one snapshot.
type ManifestEntry struct {
	Progress      int       `json:"progress"`
	RecordsFile   string    `json:"records_file"`
	ProcessedFile string    `json:"processed_file"`
	RecordCount   int       `json:"record_count"`
	CreatedAt     time.Time `json:"created_at"`
}

const manifestName = "manifest.json"

// NewManager creates a checkpoint manager writing under dir with the given
// file prefix.
func NewManager(dir, prefix string, log logger.Logger) (*Manager, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
	}
	return &Manager{dir: dir, prefix: prefix, logger: log}, nil
}

// Save writes a full snapshot of records at the given progress index: the
// record list, a companion processed-ID file, and an updated manifest. All
// writes go through a temp file and rename.
func (m *Manager) Save(records []models.GameRecord, progress int) error {
	recordsFile := fmt.Sprintf("%s_checkpoint_%d.json", m.prefix, progress)
	processedFile := fmt.Sprintf("%s_processed_%d.json", m.prefix, progress)

	if err := m.writeJSON(recordsFile, records); err != nil {
		return fmt.Errorf("failed to write checkpoint records: %w", err)
	}
	if err := m.writeJSON(processedFile, models.AppIDs(records)); err != nil {
		return fmt.Errorf("failed to write processed-ID file: %w", err)
	}

	manifest, err := m.loadManifest()
	if err != nil {
		m.logger.WithError(err).Warn("unreadable manifest, starting a fresh one")
		manifest = nil
	}
	if manifest == nil {
		manifest = &Manifest{
			RunID:  uuid.NewString(),
			Prefix: m.prefix,
		}
	}

	manifest.Entries = append(manifest.Entries, ManifestEntry{
		Progress:      progress,
		RecordsFile:   recordsFile,
		ProcessedFile: processedFile,
		RecordCount:   len(records),
		CreatedAt:     time.Now(),
	})
	manifest.UpdatedAt = time.Now()

	if err := m.writeJSON(manifestName, manifest); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	m.logger.InfoWithFields("checkpoint saved", map[string]interface{}{
		"progress": progress,
		"records":  len(records),
		"file":     recordsFile,
	})
	return nil
}

// LoadLatest restores the snapshot with the highest progress index not
// exceeding maxProgress. Entries whose record file is unreadable are
// skipped in favor of the next older one. Returns (nil, nil) when no
// usable snapshot exists.
//
// The processed set is always derived from the records themselves; the
// companion processed-ID file is advisory and only cross-checked to warn
// when the two have diverged.
func (m *Manager) LoadLatest(maxProgress int) (*Snapshot, error) {
	manifest, err := m.loadManifest()
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	if manifest == nil || len(manifest.Entries) == 0 {
		return nil, nil
	}

	entries := make([]ManifestEntry, len(manifest.Entries))
	copy(entries, manifest.Entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Progress > entries[j].Progress
	})

	for _, entry := range entries {
		if entry.Progress > maxProgress {
			continue
		}

		var records []models.GameRecord
		if err := m.readJSON(entry.RecordsFile, &records); err != nil {
			m.logger.WarnWithFields("skipping unreadable checkpoint", map[string]interface{}{
				"file":     entry.RecordsFile,
				"progress": entry.Progress,
				"error":    err.Error(),
			})
			continue
		}

		processed := models.IDSet(records)
		m.checkProcessedFile(entry, processed)

		m.logger.InfoWithFields("checkpoint loaded", map[string]interface{}{
			"progress": entry.Progress,
			"records":  len(records),
		})
		return &Snapshot{
			Progress:  entry.Progress,
			Records:   records,
			Processed: processed,
		}, nil
	}

	return nil, nil
}

// checkProcessedFile warns when the companion file disagrees with the ID
// set derived from the records. Records win.
func (m *Manager) checkProcessedFile(entry ManifestEntry, derived map[int]bool) {
	var ids []int
	if err := m.readJSON(entry.ProcessedFile, &ids); err != nil {
		m.logger.WithError(err).Warn("processed-ID file unreadable, using IDs derived from records")
		return
	}
	if len(ids) != len(derived) {
		m.logger.WarnWithFields("processed-ID file diverges from checkpoint records", map[string]interface{}{
			"file_ids":   len(ids),
			"record_ids": len(derived),
		})
		return
	}
	for _, id := range ids {
		if !derived[id] {
			m.logger.WarnWithFields("processed-ID file diverges from checkpoint records", map[string]interface{}{
				"unknown_id": id,
			})
			return
		}
	}
}

func (m *Manager) loadManifest() (*Manifest, error) {
	var manifest Manifest
	err := m.readJSON(manifestName, &manifest)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &manifest, nil
}

// writeJSON writes v atomically under the checkpoint directory.
func (m *Manager) writeJSON(name string, v interface{}) error {
	path := filepath.Join(m.dir, name)
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

func (m *Manager) readJSON(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
