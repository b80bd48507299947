package handlers

import (
	"github.com/rsidorov/fitcoach_bot/internal/app"
	"github.com/rsidorov/fitcoach_bot/internal/controller/state"
	"github.com/rsidorov/fitcoach_bot/internal/service"
	"github.com/rsidorov/fitcoach_bot/internal/storage"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки апдейтов
type Handlers struct {
	userService      *service.UserService
	groupService     *service.GroupService
	paymentService   *service.PaymentService
	progressService  *service.ProgressService
	knowledgeService *service.KnowledgeService
	aiWorker         *app.AIWorker
	storage          storage.FileStorage
	stateManager     *state.Manager
	logger           *zap.Logger
}

// NewHandlers создаёт новый обработчик
func NewHandlers(
	userService *service.UserService,
	groupService *service.GroupService,
	paymentService *service.PaymentService,
	progressService *service.ProgressService,
	knowledgeService *service.KnowledgeService,
	aiWorker *app.AIWorker,
	fileStorage storage.FileStorage,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:      userService,
		groupService:     groupService,
		paymentService:   paymentService,
		progressService:  progressService,
		knowledgeService: knowledgeService,
		aiWorker:         aiWorker,
		storage:          fileStorage,
		stateManager:     stateManager,
		logger:           logger,
	}
}
