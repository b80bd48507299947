package service

import (
	"context"
	"fmt"

	"github.com/rsidorov/fitcoach_bot/internal/model"
	"go.uber.org/zap"
)

type paymentStore interface {
	Create(ctx context.Context, request *model.PaymentRequest) error
	GetByID(ctx context.Context, id int64) (*model.PaymentRequest, error)
	Decide(ctx context.Context, id int64, status model.PaymentStatus) (*model.PaymentRequest, bool, error)
	GetPending(ctx context.Context) ([]*model.PaymentRequest, error)
}

type PaymentService struct {
	paymentRepo paymentStore
	userRepo    userStore
	logger      *zap.Logger
}

func NewPaymentService(paymentRepo paymentStore, userRepo userStore, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// SubmitRequest создаёт заявку на оплату по чеку и количеству занятий
func (s *PaymentService) SubmitRequest(ctx context.Context, studentID int64, sessions int, proofPath string) (*model.PaymentRequest, error) {
	if sessions <= 0 {
		return nil, ErrValidation
	}

	request := &model.PaymentRequest{
		StudentID:         studentID,
		SessionsRequested: sessions,
		ProofPath:         proofPath,
	}

	if err := s.paymentRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("submit payment request: %w", err)
	}

	s.logger.Info("Payment request submitted",
		zap.Int64("request_id", request.ID),
		zap.Int64("student_id", studentID),
		zap.Int("sessions", sessions),
	)

	return request, nil
}

// Approve одобряет заявку: смена статуса и зачисление занятий атомарны.
// Для уже решённой заявки возвращает ErrAlreadyProcessed без изменений.
func (s *PaymentService) Approve(ctx context.Context, requestID int64) (*model.PaymentRequest, error) {
	return s.decide(ctx, requestID, model.PaymentStatusApproved)
}

// Reject отклоняет заявку без зачисления занятий
func (s *PaymentService) Reject(ctx context.Context, requestID int64) (*model.PaymentRequest, error) {
	return s.decide(ctx, requestID, model.PaymentStatusRejected)
}

func (s *PaymentService) decide(ctx context.Context, requestID int64, status model.PaymentStatus) (*model.PaymentRequest, error) {
	request, applied, err := s.paymentRepo.Decide(ctx, requestID, status)
	if err != nil {
		return nil, fmt.Errorf("decide payment request: %w", err)
	}

	if request == nil {
		return nil, ErrNotFound
	}

	if !applied {
		return request, ErrAlreadyProcessed
	}

	s.logger.Info("Payment request decided",
		zap.Int64("request_id", requestID),
		zap.Int64("student_id", request.StudentID),
		zap.String("status", string(status)),
		zap.Int("sessions", request.SessionsRequested),
	)

	return request, nil
}

// GetPending получает нерешённые заявки с данными учеников
func (s *PaymentService) GetPending(ctx context.Context) ([]*model.PaymentRequest, error) {
	requests, err := s.paymentRepo.GetPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("get pending requests: %w", err)
	}

	for _, request := range requests {
		student, err := s.userRepo.GetByID(ctx, request.StudentID)
		if err != nil {
			return nil, fmt.Errorf("get student %d: %w", request.StudentID, err)
		}
		request.Student = student
	}

	return requests, nil
}
