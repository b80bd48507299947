package app

import (
	"context"
	"sync"
	"time"

	"github.com/rsidorov/fitcoach_bot/internal/service"
	"go.uber.org/zap"
)

// AIJob — один запрос к модели от конкретного ученика.
// Reply вызывается из воркера, когда ответ готов.
type AIJob struct {
	StudentID int64
	Query     string
	Reply     func(text string)
}

// AIWorker выполняет генерацию ответов вне цепочки обработки апдейтов,
// чтобы медленная генерация не блокировала остальные диалоги
type AIWorker struct {
	aiService *service.AIService
	logger    *zap.Logger
	jobs      chan AIJob
	workers   int
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewAIWorker создаёт пул воркеров генерации
func NewAIWorker(aiService *service.AIService, workers int, logger *zap.Logger) *AIWorker {
	if workers < 1 {
		workers = 1
	}
	return &AIWorker{
		aiService: aiService,
		logger:    logger,
		jobs:      make(chan AIJob, 32),
		workers:   workers,
		stopChan:  make(chan struct{}),
	}
}

// Start запускает воркеры
func (w *AIWorker) Start(ctx context.Context) {
	w.logger.Info("Starting AI workers", zap.Int("count", w.workers))

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.run(ctx, i)
	}
}

// Stop останавливает воркеры и дожидается завершения текущих задач.
// Запросы, оставшиеся в очереди, получают ответ о перезапуске,
// чтобы ученик не ждал ответа, который уже не придёт.
func (w *AIWorker) Stop() {
	w.logger.Info("Stopping AI workers")
	close(w.stopChan)
	w.wg.Wait()

	for {
		select {
		case job := <-w.jobs:
			w.logger.Info("Replying to queued AI job on shutdown",
				zap.Int64("student_id", job.StudentID))
			job.Reply("⏳ Бот перезапускается. Задайте вопрос ещё раз через минуту.")
		default:
			return
		}
	}
}

// Enqueue ставит запрос в очередь. Возвращает false если очередь переполнена.
func (w *AIWorker) Enqueue(job AIJob) bool {
	select {
	case w.jobs <- job:
		return true
	default:
		w.logger.Warn("AI job queue is full, rejecting request",
			zap.Int64("student_id", job.StudentID))
		return false
	}
}

func (w *AIWorker) run(ctx context.Context, id int) {
	defer w.wg.Done()

	for {
		select {
		case job := <-w.jobs:
			start := time.Now()
			answer := w.aiService.Answer(ctx, job.StudentID, job.Query)
			w.logger.Info("AI job finished",
				zap.Int("worker", id),
				zap.Int64("student_id", job.StudentID),
				zap.Duration("took", time.Since(start)))
			job.Reply(answer)
		case <-w.stopChan:
			w.logger.Info("AI worker stopped", zap.Int("worker", id))
			return
		case <-ctx.Done():
			w.logger.Info("AI worker cancelled", zap.Int("worker", id))
			return
		}
	}
}
