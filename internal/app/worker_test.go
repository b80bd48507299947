package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rsidorov/fitcoach_bot/internal/model"
	"github.com/rsidorov/fitcoach_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nopProgressStore struct{}

func (nopProgressStore) Create(ctx context.Context, entry *model.ProgressEntry) error { return nil }
func (nopProgressStore) GetRecent(ctx context.Context, studentID int64, kind model.ProgressKind, limit int) ([]*model.ProgressEntry, error) {
	return nil, nil
}

type nopKnowledgeStore struct{}

func (nopKnowledgeStore) Create(ctx context.Context, item *model.KnowledgeItem) error { return nil }
func (nopKnowledgeStore) GetAll(ctx context.Context) ([]*model.KnowledgeItem, error) {
	return nil, nil
}
func (nopKnowledgeStore) Delete(ctx context.Context, id int64) (bool, error) { return false, nil }

type nopExtractor struct{}

func (nopExtractor) Extract(path string) (string, error) { return "", nil }

type fixedGenerator struct {
	answer string
}

func (g fixedGenerator) Generate(ctx context.Context, prompt string, maxNewTokens int) (string, error) {
	return g.answer, nil
}

func (g fixedGenerator) TruncateToTokens(ctx context.Context, text string, limit int) (string, error) {
	return text, nil
}

func newTestAIService(answer string) *service.AIService {
	return service.NewAIService(
		nopProgressStore{},
		nopKnowledgeStore{},
		nopExtractor{},
		fixedGenerator{answer: answer},
		zap.NewNop(),
	)
}

func TestAIWorkerDeliversAnswer(t *testing.T) {
	worker := NewAIWorker(newTestAIService("Пейте больше воды."), 1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	defer worker.Stop()

	got := make(chan string, 1)
	ok := worker.Enqueue(AIJob{
		StudentID: 7,
		Query:     "сколько пить воды?",
		Reply:     func(text string) { got <- text },
	})
	require.True(t, ok)

	select {
	case answer := <-got:
		assert.Equal(t, "Пейте больше воды.", answer)
	case <-time.After(5 * time.Second):
		t.Fatal("answer was not delivered")
	}
}

func TestAIWorkerQueueOverflow(t *testing.T) {
	// Воркеры не запущены: очередь только наполняется
	worker := NewAIWorker(newTestAIService(""), 1, zap.NewNop())

	job := AIJob{StudentID: 7, Query: "q", Reply: func(string) {}}
	for i := 0; i < 32; i++ {
		require.True(t, worker.Enqueue(job), fmt.Sprintf("job %d must fit", i))
	}

	assert.False(t, worker.Enqueue(job))
}

func TestAIWorkerStopAnswersQueuedJobs(t *testing.T) {
	// Воркеры не запущены: задачи остаются в очереди до Stop
	worker := NewAIWorker(newTestAIService(""), 1, zap.NewNop())

	got := make(chan string, 2)
	for i := 0; i < 2; i++ {
		require.True(t, worker.Enqueue(AIJob{
			StudentID: int64(i),
			Query:     "q",
			Reply:     func(text string) { got <- text },
		}))
	}

	worker.Stop()

	for i := 0; i < 2; i++ {
		select {
		case answer := <-got:
			assert.Contains(t, answer, "перезапускается")
		default:
			t.Fatalf("queued job %d got no reply on shutdown", i)
		}
	}
}
