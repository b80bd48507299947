package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/controller/state"
	"github.com/rsidorov/fitcoach_bot/internal/model"
	"github.com/rsidorov/fitcoach_bot/internal/service"
	"github.com/rsidorov/fitcoach_bot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testStudentTelegramID = int64(100)

type fakeUserStore struct{}

func (fakeUserStore) Create(ctx context.Context, user *model.User) error { return nil }
func (fakeUserStore) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return &model.User{ID: 1, TelegramID: telegramID, FirstName: "Иван", Username: "ivan"}, nil
}
func (fakeUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return &model.User{ID: id, TelegramID: testStudentTelegramID, FirstName: "Иван"}, nil
}
func (fakeUserStore) UpdateProfile(ctx context.Context, user *model.User) error { return nil }
func (fakeUserStore) GetStudents(ctx context.Context) ([]*model.User, error)    { return nil, nil }
func (fakeUserStore) GetTrainers(ctx context.Context) ([]*model.User, error)    { return nil, nil }

type fakeGroupStore struct{}

func (fakeGroupStore) Create(ctx context.Context, group *model.Group) error { return nil }
func (fakeGroupStore) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	return nil, nil
}
func (fakeGroupStore) GetByTrainerID(ctx context.Context, trainerID int64) ([]*model.Group, error) {
	return nil, nil
}
func (fakeGroupStore) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Group, error) {
	return nil, nil
}
func (fakeGroupStore) SetProgramPath(ctx context.Context, groupID int64, path string) error {
	return nil
}
func (fakeGroupStore) AddMember(ctx context.Context, groupID, studentID int64) (bool, error) {
	return false, nil
}
func (fakeGroupStore) GetMembers(ctx context.Context, groupID int64) ([]*model.User, error) {
	return nil, nil
}
func (fakeGroupStore) UpsertSchedule(ctx context.Context, groupID int64, content string) (*model.Schedule, error) {
	return nil, nil
}
func (fakeGroupStore) GetSchedule(ctx context.Context, groupID int64) (*model.Schedule, error) {
	return nil, nil
}

type fakePaymentStore struct{}

func (fakePaymentStore) Create(ctx context.Context, request *model.PaymentRequest) error { return nil }
func (fakePaymentStore) GetByID(ctx context.Context, id int64) (*model.PaymentRequest, error) {
	return nil, nil
}
func (fakePaymentStore) Decide(ctx context.Context, id int64, status model.PaymentStatus) (*model.PaymentRequest, bool, error) {
	return nil, false, nil
}
func (fakePaymentStore) GetPending(ctx context.Context) ([]*model.PaymentRequest, error) {
	return nil, nil
}

type fakeProgressStore struct{}

func (fakeProgressStore) Create(ctx context.Context, entry *model.ProgressEntry) error { return nil }
func (fakeProgressStore) GetRecent(ctx context.Context, studentID int64, kind model.ProgressKind, limit int) ([]*model.ProgressEntry, error) {
	return nil, nil
}

type fakeKnowledgeStore struct{}

func (fakeKnowledgeStore) Create(ctx context.Context, item *model.KnowledgeItem) error { return nil }
func (fakeKnowledgeStore) GetAll(ctx context.Context) ([]*model.KnowledgeItem, error) {
	return nil, nil
}
func (fakeKnowledgeStore) Delete(ctx context.Context, id int64) (bool, error) { return false, nil }

type fakeExtractor struct{}

func (fakeExtractor) Extract(path string) (string, error) { return "", nil }

type fakeGenerator struct{}

func (fakeGenerator) Generate(ctx context.Context, prompt string, maxNewTokens int) (string, error) {
	return "ответ", nil
}

func (fakeGenerator) TruncateToTokens(ctx context.Context, text string, limit int) (string, error) {
	return text, nil
}

// routingEnv собирает обработчики с фейковыми хранилищами и ботом,
// который шлёт запросы в локальный тестовый сервер вместо Telegram
type routingEnv struct {
	handlers *Handlers
	bot      *bot.Bot
	states   *state.Manager
	sent     *int32
}

func (e *routingEnv) sentMessages() int {
	return int(atomic.LoadInt32(e.sent))
}

func newRoutingEnv(t *testing.T) *routingEnv {
	t.Helper()

	var sent int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			atomic.AddInt32(&sent, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	t.Cleanup(srv.Close)

	b, err := bot.New("12345:test-token", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)

	logger := zap.NewNop()
	fileStorage, err := storage.NewLocalStorage(t.TempDir(), logger)
	require.NoError(t, err)

	stateManager := state.NewManager()
	h := NewHandlers(
		service.NewUserService(fakeUserStore{}, logger),
		service.NewGroupService(fakeGroupStore{}, fakeUserStore{}, logger),
		service.NewPaymentService(fakePaymentStore{}, fakeUserStore{}, logger),
		service.NewProgressService(fakeProgressStore{}, logger),
		service.NewKnowledgeService(fakeKnowledgeStore{}, logger),
		nil,
		fileStorage,
		stateManager,
		logger,
	)

	return &routingEnv{handlers: h, bot: b, states: stateManager, sent: &sent}
}

func textUpdate(text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   1,
			From: &models.User{ID: testStudentTelegramID, FirstName: "Иван", Username: "ivan"},
			Chat: models.Chat{ID: testStudentTelegramID},
			Text: text,
		},
	}
}

// Текст кнопки меню внутри активного диалога — это ввод шага,
// а не нажатие кнопки
func TestTextRoutingDialogStepBeatsMenuButton(t *testing.T) {
	env := newRoutingEnv(t)
	ctx := context.Background()

	env.states.StartDialog(testStudentTelegramID, state.StatePaymentCount)
	env.states.SetData(testStudentTelegramID, "payment_proof_path", "payments/1/proof.jpg")

	env.handlers.HandleTextMessage(ctx, env.bot, textUpdate(MenuNutrition))

	// Диалог оплаты не прерван: "Питание" не число, шаг переспрашивает
	assert.Equal(t, state.StatePaymentCount, env.states.GetState(testStudentTelegramID))
	_, started := env.states.GetString(testStudentTelegramID, "progress_kind")
	assert.False(t, started, "nutrition dialog must not start from inside another dialog")
	assert.Equal(t, 1, env.sentMessages())
}

func TestTextRoutingMenuButtonAfterCancel(t *testing.T) {
	env := newRoutingEnv(t)
	ctx := context.Background()

	env.states.StartDialog(testStudentTelegramID, state.StatePaymentCount)
	env.states.SetData(testStudentTelegramID, "payment_proof_path", "payments/1/proof.jpg")

	env.handlers.HandleCancel(ctx, env.bot, textUpdate("/cancel"))
	require.Equal(t, state.StateNone, env.states.GetState(testStudentTelegramID))

	// Тот же текст после отмены — уже кнопка меню
	env.handlers.HandleTextMessage(ctx, env.bot, textUpdate(MenuNutrition))

	assert.Equal(t, state.StateProgressData, env.states.GetState(testStudentTelegramID))
	kind, ok := env.states.GetString(testStudentTelegramID, "progress_kind")
	require.True(t, ok)
	assert.Equal(t, string(model.ProgressKindNutrition), kind)
}

func TestTextRoutingFallbackOutsideDialog(t *testing.T) {
	env := newRoutingEnv(t)

	env.handlers.HandleTextMessage(context.Background(), env.bot, textUpdate("что-то непонятное"))

	assert.Equal(t, state.StateNone, env.states.GetState(testStudentTelegramID))
	assert.Equal(t, 1, env.sentMessages())
}

func TestTextRoutingUnknownCommandGetsReply(t *testing.T) {
	env := newRoutingEnv(t)
	ctx := context.Background()

	env.handlers.HandleTextMessage(ctx, env.bot, textUpdate("/foo"))
	assert.Equal(t, 1, env.sentMessages())

	// Известные команды обрабатываются своими handlers, без дублей
	env.handlers.HandleTextMessage(ctx, env.bot, textUpdate("/cancel"))
	assert.Equal(t, 1, env.sentMessages())
}
