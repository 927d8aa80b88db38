package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"debtledger-backend/models"
)

// DebtRepository persists the whole debt collection as a single JSON
// document. Every mutation rewrites the full file; the mutex serializes
// load+mutate+replace so concurrent requests within this process cannot
// lose each other's writes. Multi-process deployments are not supported.
type DebtRepository struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

// NewDebtRepository creates a debt repository backed by the JSON document
// at path, seeding an empty collection when the file does not exist yet
func NewDebtRepository(path string, logger *log.Logger) (*DebtRepository, error) {
	if logger == nil {
		logger = log.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	r := &DebtRepository{path: path, logger: logger}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := r.writeLocked([]models.DebtRecord{}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Load returns the persisted collection. A missing, unreadable or corrupt
// document degrades to an empty collection; the failure is logged, never
// returned.
func (r *DebtRepository) Load() []models.DebtRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

// Replace overwrites the persisted document with the given collection
func (r *DebtRepository) Replace(records []models.DebtRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(records)
}

// Mutate runs load, fn and replace as one critical section. When fn
// returns an error the document is left untouched and the error is
// returned as-is.
func (r *DebtRepository) Mutate(fn func([]models.DebtRecord) ([]models.DebtRecord, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(r.loadLocked())
	if err != nil {
		return err
	}
	return r.writeLocked(next)
}

func (r *DebtRepository) loadLocked() []models.DebtRecord {
	data, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Printf("debt store: reading %s: %v", r.path, err)
		return []models.DebtRecord{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.DebtRecord{}
	}

	var records []models.DebtRecord
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Printf("debt store: parsing %s: %v", r.path, err)
		return []models.DebtRecord{}
	}
	if records == nil {
		records = []models.DebtRecord{}
	}
	return records
}

func (r *DebtRepository) writeLocked(records []models.DebtRecord) error {
	if records == nil {
		// an empty collection is persisted as [], never as null
		records = []models.DebtRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode debt store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write debt store: %w", err)
	}
	return nil
}
