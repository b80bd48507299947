package service

import (
	"context"
	"fmt"

	"github.com/rsidorov/fitcoach_bot/internal/model"
	"go.uber.org/zap"
)

type knowledgeStore interface {
	Create(ctx context.Context, item *model.KnowledgeItem) error
	GetAll(ctx context.Context) ([]*model.KnowledgeItem, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type KnowledgeService struct {
	knowledgeRepo knowledgeStore
	logger        *zap.Logger
}

func NewKnowledgeService(knowledgeRepo knowledgeStore, logger *zap.Logger) *KnowledgeService {
	return &KnowledgeService{
		knowledgeRepo: knowledgeRepo,
		logger:        logger,
	}
}

// AddText добавляет текстовый материал
func (s *KnowledgeService) AddText(ctx context.Context, content string) (*model.KnowledgeItem, error) {
	if content == "" {
		return nil, ErrValidation
	}
	return s.add(ctx, &model.KnowledgeItem{Kind: model.KnowledgeKindText, Content: content})
}

// AddFile добавляет материал-файл по пути в хранилище
func (s *KnowledgeService) AddFile(ctx context.Context, filePath string) (*model.KnowledgeItem, error) {
	if filePath == "" {
		return nil, ErrValidation
	}
	return s.add(ctx, &model.KnowledgeItem{Kind: model.KnowledgeKindFile, FilePath: filePath})
}

// AddImage добавляет материал-изображение по пути в хранилище
func (s *KnowledgeService) AddImage(ctx context.Context, filePath string) (*model.KnowledgeItem, error) {
	if filePath == "" {
		return nil, ErrValidation
	}
	return s.add(ctx, &model.KnowledgeItem{Kind: model.KnowledgeKindImage, FilePath: filePath})
}

func (s *KnowledgeService) add(ctx context.Context, item *model.KnowledgeItem) (*model.KnowledgeItem, error) {
	if err := s.knowledgeRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("add knowledge item: %w", err)
	}

	s.logger.Info("Knowledge item added",
		zap.Int64("item_id", item.ID),
		zap.String("kind", string(item.Kind)),
	)

	return item, nil
}

// List получает все материалы
func (s *KnowledgeService) List(ctx context.Context) ([]*model.KnowledgeItem, error) {
	return s.knowledgeRepo.GetAll(ctx)
}

// Delete удаляет материал. ErrNotFound если его уже нет.
func (s *KnowledgeService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.knowledgeRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete knowledge item: %w", err)
	}

	if !deleted {
		return ErrNotFound
	}

	s.logger.Info("Knowledge item deleted", zap.Int64("item_id", id))
	return nil
}
