package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
)

// backupFile is the on-disk layout of a full backup
type backupFile struct {
	CreatedAt time.Time                  `json:"createdAt"`
	Documents map[string]json.RawMessage `json:"documents"`
}

// backupService implements the BackupService interface
type backupService struct {
	repo BackupRepository
	now  func() time.Time
}

func NewBackupService(repo BackupRepository) BackupService {
	return &backupService{repo: repo, now: time.Now}
}

// Export writes every stored document to w
func (s *backupService) Export(ctx context.Context, w io.Writer) error {
	docs, err := s.repo.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to snapshot documents: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backupFile{CreatedAt: s.now().UTC(), Documents: docs}); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Restore replaces the stored documents with those in the backup, all or nothing
func (s *backupService) Restore(ctx context.Context, r io.Reader) (int, error) {
	var backup backupFile
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return 0, fmt.Errorf("failed to read backup: %w", err)
	}
	if len(backup.Documents) == 0 {
		return 0, fmt.Errorf("backup contains no documents")
	}

	if err := s.repo.Restore(ctx, backup.Documents); err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"documents": len(backup.Documents),
		"createdAt": backup.CreatedAt,
	}).Info("Restored backup")
	return len(backup.Documents), nil
}
