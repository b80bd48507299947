package service

import (
	"context"
	"fmt"

	"github.com/rsidorov/fitcoach_bot/internal/model"
	"go.uber.org/zap"
)

type progressStore interface {
	Create(ctx context.Context, entry *model.ProgressEntry) error
	GetRecent(ctx context.Context, studentID int64, kind model.ProgressKind, limit int) ([]*model.ProgressEntry, error)
}

type ProgressService struct {
	progressRepo progressStore
	logger       *zap.Logger
}

func NewProgressService(progressRepo progressStore, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		logger:       logger,
	}
}

// AddEntry добавляет запись дневника. Нужен текст или файл, можно оба.
func (s *ProgressService) AddEntry(ctx context.Context, studentID int64, kind model.ProgressKind, content, artifactPath string) (*model.ProgressEntry, error) {
	if content == "" && artifactPath == "" {
		return nil, ErrValidation
	}

	entry := &model.ProgressEntry{
		StudentID:    studentID,
		Kind:         kind,
		Content:      content,
		ArtifactPath: artifactPath,
	}

	if err := s.progressRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("add progress entry: %w", err)
	}

	s.logger.Info("Progress entry added",
		zap.Int64("entry_id", entry.ID),
		zap.Int64("student_id", studentID),
		zap.String("kind", string(kind)),
	)

	return entry, nil
}

// GetRecent получает последние записи ученика указанного типа
func (s *ProgressService) GetRecent(ctx context.Context, studentID int64, kind model.ProgressKind, limit int) ([]*model.ProgressEntry, error) {
	return s.progressRepo.GetRecent(ctx, studentID, kind, limit)
}
