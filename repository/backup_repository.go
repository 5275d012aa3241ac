package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// BackupRepository reads and writes the full set of application documents at once
type BackupRepository struct {
	store DocumentStore
}

func NewBackupRepository(store DocumentStore) *BackupRepository {
	return &BackupRepository{store: store}
}

// Snapshot returns every stored document keyed by its storage key. Absent documents are omitted.
func (r *BackupRepository) Snapshot(ctx context.Context) (map[string]json.RawMessage, error) {
	docs := make(map[string]json.RawMessage, len(AllKeys))
	for _, key := range AllKeys {
		doc, err := r.store.Get(ctx, key)
		if errors.Is(err, ErrDocumentNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to snapshot %s: %w", key, err)
		}
		docs[key] = json.RawMessage(doc)
	}
	return docs, nil
}

// Restore replaces the stored documents with docs atomically. Documents missing from
// docs are deleted. Unknown keys and invalid JSON are rejected before anything is written.
func (r *BackupRepository) Restore(ctx context.Context, docs map[string]json.RawMessage) error {
	known := make(map[string]bool, len(AllKeys))
	for _, key := range AllKeys {
		known[key] = true
	}

	writes := make(map[string][]byte, len(docs))
	for key, doc := range docs {
		if !known[key] {
			return fmt.Errorf("unknown document key %q", key)
		}
		if !json.Valid(doc) {
			return fmt.Errorf("document %s is not valid JSON", key)
		}
		writes[key] = []byte(doc)
	}

	if err := r.store.ReplaceAll(ctx, AllKeys, writes); err != nil {
		return fmt.Errorf("failed to restore documents: %w", err)
	}
	return nil
}
