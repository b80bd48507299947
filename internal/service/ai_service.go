package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rsidorov/fitcoach_bot/internal/model"
	"go.uber.org/zap"
)

const (
	// Сколько последних записей каждой категории попадает в контекст
	recentEntriesLimit = 5

	// Лимит слов на одну запись дневника
	entryWordLimit = 200

	// Общий лимит слов на выжимку из базы знаний
	knowledgeWordLimit = 1000

	// Лимит токенов промпта перед генерацией
	promptTokenLimit = 8192

	// Сколько новых токенов модель генерирует за один вызов
	maxNewTokens = 100

	// Возвращается вместо выжимки, если базу знаний прочитать не удалось
	knowledgeUnavailable = "База знаний недоступна."
)

type generator interface {
	Generate(ctx context.Context, prompt string, maxNewTokens int) (string, error)
	TruncateToTokens(ctx context.Context, text string, limit int) (string, error)
}

// AIContext — собранный контекст для одного запроса к модели
type AIContext struct {
	Training  string
	Nutrition string
	Knowledge string
}

type AIService struct {
	progressRepo  progressStore
	knowledgeRepo knowledgeStore
	extractor     FileExtractor
	llm           generator
	logger        *zap.Logger
}

func NewAIService(
	progressRepo progressStore,
	knowledgeRepo knowledgeStore,
	extractor FileExtractor,
	llm generator,
	logger *zap.Logger,
) *AIService {
	return &AIService{
		progressRepo:  progressRepo,
		knowledgeRepo: knowledgeRepo,
		extractor:     extractor,
		llm:           llm,
		logger:        logger,
	}
}

// Answer отвечает на вопрос ученика с учётом его истории и базы знаний.
// Любая внутренняя ошибка превращается в текст для пользователя,
// наружу ошибка не выходит.
func (s *AIService) Answer(ctx context.Context, studentID int64, query string) string {
	aiCtx := s.BuildContext(ctx, studentID)
	prompt := buildPrompt(aiCtx, query)

	truncated, err := s.llm.TruncateToTokens(ctx, prompt, promptTokenLimit)
	if err != nil {
		s.logger.Error("Failed to truncate prompt",
			zap.Int64("student_id", studentID),
			zap.Error(err))
		return "⚠️ Не удалось обработать запрос. Попробуйте позже."
	}

	answer, err := s.llm.Generate(ctx, truncated, maxNewTokens)
	if err != nil {
		s.logger.Error("Failed to generate answer",
			zap.Int64("student_id", studentID),
			zap.Error(err))
		return "⚠️ Не удалось получить ответ. Попробуйте позже."
	}

	if answer == "" {
		return "⚠️ Модель не дала ответа. Попробуйте переформулировать вопрос."
	}

	return answer
}

// BuildContext собирает контекст из трёх источников по убыванию приоритета:
// тренировки, питание, база знаний. Сборка не падает: недоступный источник
// даёт пустой блок или заглушку.
func (s *AIService) BuildContext(ctx context.Context, studentID int64) AIContext {
	return AIContext{
		Training:  s.recentEntries(ctx, studentID, model.ProgressKindTraining),
		Nutrition: s.recentEntries(ctx, studentID, model.ProgressKindNutrition),
		Knowledge: s.KnowledgeSummary(ctx),
	}
}

func (s *AIService) recentEntries(ctx context.Context, studentID int64, kind model.ProgressKind) string {
	entries, err := s.progressRepo.GetRecent(ctx, studentID, kind, recentEntriesLimit)
	if err != nil {
		s.logger.Warn("Failed to load progress entries for context",
			zap.Int64("student_id", studentID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return ""
	}

	var parts []string
	for _, entry := range entries {
		if entry.Content == "" {
			continue
		}
		parts = append(parts,
			entry.CreatedAt.Format("02.01.2006")+": "+truncateWords(entry.Content, entryWordLimit))
	}

	return strings.Join(parts, "\n")
}

// KnowledgeSummary собирает выжимку из всех материалов базы знаний.
// Нечитаемые файлы логируются и пропускаются, сборка продолжается.
func (s *AIService) KnowledgeSummary(ctx context.Context) string {
	items, err := s.knowledgeRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load knowledge base", zap.Error(err))
		return knowledgeUnavailable
	}

	var sb strings.Builder
	for _, item := range items {
		switch {
		case item.Kind == model.KnowledgeKindText && item.Content != "":
			sb.WriteString(item.Content)
			sb.WriteString("\n")
		case item.Kind == model.KnowledgeKindFile && item.FilePath != "":
			text, err := s.extractor.Extract(item.FilePath)
			if err != nil {
				s.logger.Warn("Failed to extract knowledge file, skipping",
					zap.Int64("item_id", item.ID),
					zap.String("path", item.FilePath),
					zap.Error(err))
				continue
			}
			if text != "" {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		}
		// Изображения текста не дают и в выжимку не попадают
	}

	return truncateWords(sb.String(), knowledgeWordLimit)
}

func buildPrompt(aiCtx AIContext, query string) string {
	return fmt.Sprintf(
		"Context:\n"+
			"topic: Powerlifting fitness for teenagers.\n"+
			"Training history: %s\n"+
			"Nutrition history: %s\n"+
			"Knowledge base: %s\n\n"+
			"User query: %s\n\n"+
			"Assistant:",
		aiCtx.Training,
		aiCtx.Nutrition,
		aiCtx.Knowledge,
		query,
	)
}

// truncateWords обрезает текст до limit слов, добавляя многоточие
func truncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return strings.TrimSpace(text)
	}
	return strings.Join(words[:limit], " ") + "..."
}
