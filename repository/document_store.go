package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"

	"betledger/database"

	log "github.com/sirupsen/logrus"
)

// Fixed document keys, shared with the browser dashboard's storage layout
const (
	KeyBets       = "alphabet_bets_v1"
	KeyBankroll   = "alphabet_bankroll_v1"
	KeyCycle      = "alphabet_cycle_v1"
	KeyAllocation = "alphabet_allocation_v1"
)

// AllKeys lists every document the application owns
var AllKeys = []string{KeyBets, KeyBankroll, KeyCycle, KeyAllocation}

// ErrDocumentNotFound is returned by Get when no document is stored under the key
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore persists whole JSON documents under string keys
type DocumentStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, doc []byte) error
	Delete(ctx context.Context, key string) error
	// ReplaceAll writes docs and deletes every other key in scope, all or nothing
	ReplaceAll(ctx context.Context, scope []string, docs map[string][]byte) error
}

type queryable interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLDocumentStore keeps documents in the SQLite documents table
type SQLDocumentStore struct {
	db *database.DB
	q  queryable
}

// NewSQLDocumentStore creates a document store over a migrated database
func NewSQLDocumentStore(db *database.DB) *SQLDocumentStore {
	return &SQLDocumentStore{db: db, q: db.DB}
}

// newSQLDocumentStoreWithTx creates a document store bound to a transaction
func newSQLDocumentStoreWithTx(tx *sql.Tx) *SQLDocumentStore {
	return &SQLDocumentStore{q: tx}
}

// Get retrieves the document stored under key
func (s *SQLDocumentStore) Get(ctx context.Context, key string) ([]byte, error) {
	var body string
	err := s.q.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", key, err)
	}

	log.WithFields(log.Fields{
		"key":   key,
		"bytes": len(body),
	}).Debug("Read document")

	return []byte(body), nil
}

// Put overwrites the document stored under key
func (s *SQLDocumentStore) Put(ctx context.Context, key string, doc []byte) error {
	query := `
		INSERT INTO documents (key, body, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at
	`
	if _, err := s.q.ExecContext(ctx, query, key, string(doc)); err != nil {
		return fmt.Errorf("failed to put document %s: %w", key, err)
	}

	log.WithFields(log.Fields{
		"key":   key,
		"bytes": len(doc),
	}).Debug("Wrote document")

	return nil
}

// Delete removes the document stored under key. Deleting an absent key is not an error.
func (s *SQLDocumentStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	return nil
}

// ReplaceAll writes docs and deletes the rest of scope in a single transaction
func (s *SQLDocumentStore) ReplaceAll(ctx context.Context, scope []string, docs map[string][]byte) error {
	if s.db == nil {
		return fmt.Errorf("failed to replace documents: store is bound to a transaction")
	}

	return s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		txStore := newSQLDocumentStoreWithTx(tx)
		for _, key := range sortedKeys(docs) {
			if err := txStore.Put(ctx, key, docs[key]); err != nil {
				return err
			}
		}
		for _, key := range scope {
			if _, ok := docs[key]; ok {
				continue
			}
			if err := txStore.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

// MemoryDocumentStore keeps documents in process memory
type MemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{docs: make(map[string][]byte)}
}

func (s *MemoryDocumentStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return append([]byte(nil), doc...), nil
}

func (s *MemoryDocumentStore) Put(ctx context.Context, key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[key] = append([]byte(nil), doc...)
	return nil
}

func (s *MemoryDocumentStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, key)
	return nil
}

func (s *MemoryDocumentStore) ReplaceAll(ctx context.Context, scope []string, docs map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range scope {
		delete(s.docs, key)
	}
	for key, doc := range docs {
		s.docs[key] = append([]byte(nil), doc...)
	}
	return nil
}

func sortedKeys(docs map[string][]byte) []string {
	keys := make([]string, 0, len(docs))
	for k := range docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
