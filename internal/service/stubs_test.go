package service

import (
	"context"

	"github.com/rsidorov/fitcoach_bot/internal/model"
)

// Стабы хранилищ для юнит-тестов сервисов. Каждый метод переопределяется
// через функцию-поле, непереопределённый метод возвращает нули.

type stubUserStore struct {
	createFn          func(ctx context.Context, user *model.User) error
	getByTelegramIDFn func(ctx context.Context, telegramID int64) (*model.User, error)
	getByIDFn         func(ctx context.Context, id int64) (*model.User, error)
	updateProfileFn   func(ctx context.Context, user *model.User) error
	getStudentsFn     func(ctx context.Context) ([]*model.User, error)
	getTrainersFn     func(ctx context.Context) ([]*model.User, error)
}

func (s *stubUserStore) Create(ctx context.Context, user *model.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserStore) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	if s.getByTelegramIDFn != nil {
		return s.getByTelegramIDFn(ctx, telegramID)
	}
	return nil, nil
}

func (s *stubUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubUserStore) UpdateProfile(ctx context.Context, user *model.User) error {
	if s.updateProfileFn != nil {
		return s.updateProfileFn(ctx, user)
	}
	return nil
}

func (s *stubUserStore) GetStudents(ctx context.Context) ([]*model.User, error) {
	if s.getStudentsFn != nil {
		return s.getStudentsFn(ctx)
	}
	return nil, nil
}

func (s *stubUserStore) GetTrainers(ctx context.Context) ([]*model.User, error) {
	if s.getTrainersFn != nil {
		return s.getTrainersFn(ctx)
	}
	return nil, nil
}

type stubPaymentStore struct {
	createFn     func(ctx context.Context, request *model.PaymentRequest) error
	getByIDFn    func(ctx context.Context, id int64) (*model.PaymentRequest, error)
	decideFn     func(ctx context.Context, id int64, status model.PaymentStatus) (*model.PaymentRequest, bool, error)
	getPendingFn func(ctx context.Context) ([]*model.PaymentRequest, error)
}

func (s *stubPaymentStore) Create(ctx context.Context, request *model.PaymentRequest) error {
	if s.createFn != nil {
		return s.createFn(ctx, request)
	}
	return nil
}

func (s *stubPaymentStore) GetByID(ctx context.Context, id int64) (*model.PaymentRequest, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubPaymentStore) Decide(ctx context.Context, id int64, status model.PaymentStatus) (*model.PaymentRequest, bool, error) {
	if s.decideFn != nil {
		return s.decideFn(ctx, id, status)
	}
	return nil, false, nil
}

func (s *stubPaymentStore) GetPending(ctx context.Context) ([]*model.PaymentRequest, error) {
	if s.getPendingFn != nil {
		return s.getPendingFn(ctx)
	}
	return nil, nil
}

type stubGroupStore struct {
	createFn         func(ctx context.Context, group *model.Group) error
	getByIDFn        func(ctx context.Context, id int64) (*model.Group, error)
	getByTrainerIDFn func(ctx context.Context, trainerID int64) ([]*model.Group, error)
	getByStudentIDFn func(ctx context.Context, studentID int64) ([]*model.Group, error)
	setProgramPathFn func(ctx context.Context, groupID int64, path string) error
	addMemberFn      func(ctx context.Context, groupID, studentID int64) (bool, error)
	getMembersFn     func(ctx context.Context, groupID int64) ([]*model.User, error)
	upsertScheduleFn func(ctx context.Context, groupID int64, content string) (*model.Schedule, error)
	getScheduleFn    func(ctx context.Context, groupID int64) (*model.Schedule, error)
}

func (s *stubGroupStore) Create(ctx context.Context, group *model.Group) error {
	if s.createFn != nil {
		return s.createFn(ctx, group)
	}
	return nil
}

func (s *stubGroupStore) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubGroupStore) GetByTrainerID(ctx context.Context, trainerID int64) ([]*model.Group, error) {
	if s.getByTrainerIDFn != nil {
		return s.getByTrainerIDFn(ctx, trainerID)
	}
	return nil, nil
}

func (s *stubGroupStore) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Group, error) {
	if s.getByStudentIDFn != nil {
		return s.getByStudentIDFn(ctx, studentID)
	}
	return nil, nil
}

func (s *stubGroupStore) SetProgramPath(ctx context.Context, groupID int64, path string) error {
	if s.setProgramPathFn != nil {
		return s.setProgramPathFn(ctx, groupID, path)
	}
	return nil
}

func (s *stubGroupStore) AddMember(ctx context.Context, groupID, studentID int64) (bool, error) {
	if s.addMemberFn != nil {
		return s.addMemberFn(ctx, groupID, studentID)
	}
	return false, nil
}

func (s *stubGroupStore) GetMembers(ctx context.Context, groupID int64) ([]*model.User, error) {
	if s.getMembersFn != nil {
		return s.getMembersFn(ctx, groupID)
	}
	return nil, nil
}

func (s *stubGroupStore) UpsertSchedule(ctx context.Context, groupID int64, content string) (*model.Schedule, error) {
	if s.upsertScheduleFn != nil {
		return s.upsertScheduleFn(ctx, groupID, content)
	}
	return nil, nil
}

func (s *stubGroupStore) GetSchedule(ctx context.Context, groupID int64) (*model.Schedule, error) {
	if s.getScheduleFn != nil {
		return s.getScheduleFn(ctx, groupID)
	}
	return nil, nil
}

type stubProgressStore struct {
	createFn    func(ctx context.Context, entry *model.ProgressEntry) error
	getRecentFn func(ctx context.Context, studentID int64, kind model.ProgressKind, limit int) ([]*model.ProgressEntry, error)
}

func (s *stubProgressStore) Create(ctx context.Context, entry *model.ProgressEntry) error {
	if s.createFn != nil {
		return s.createFn(ctx, entry)
	}
	return nil
}

func (s *stubProgressStore) GetRecent(ctx context.Context, studentID int64, kind model.ProgressKind, limit int) ([]*model.ProgressEntry, error) {
	if s.getRecentFn != nil {
		return s.getRecentFn(ctx, studentID, kind, limit)
	}
	return nil, nil
}

type stubKnowledgeStore struct {
	createFn func(ctx context.Context, item *model.KnowledgeItem) error
	getAllFn func(ctx context.Context) ([]*model.KnowledgeItem, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

func (s *stubKnowledgeStore) Create(ctx context.Context, item *model.KnowledgeItem) error {
	if s.createFn != nil {
		return s.createFn(ctx, item)
	}
	return nil
}

func (s *stubKnowledgeStore) GetAll(ctx context.Context) ([]*model.KnowledgeItem, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return nil, nil
}

func (s *stubKnowledgeStore) Delete(ctx context.Context, id int64) (bool, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return false, nil
}

type stubExtractor struct {
	extractFn func(path string) (string, error)
}

func (s *stubExtractor) Extract(path string) (string, error) {
	if s.extractFn != nil {
		return s.extractFn(path)
	}
	return "", nil
}

type stubGenerator struct {
	generateFn func(ctx context.Context, prompt string, maxNewTokens int) (string, error)
	truncateFn func(ctx context.Context, text string, limit int) (string, error)
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, maxNewTokens int) (string, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, prompt, maxNewTokens)
	}
	return "", nil
}

func (s *stubGenerator) TruncateToTokens(ctx context.Context, text string, limit int) (string, error) {
	if s.truncateFn != nil {
		return s.truncateFn(ctx, text, limit)
	}
	return text, nil
}
