package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rsidorov/fitcoach_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubmitRequest(t *testing.T) {
	store := &stubPaymentStore{
		createFn: func(ctx context.Context, request *model.PaymentRequest) error {
			request.ID = 42
			return nil
		},
	}
	svc := NewPaymentService(store, &stubUserStore{}, zap.NewNop())

	request, err := svc.SubmitRequest(context.Background(), 7, 10, "payments/7/proof.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(42), request.ID)
	assert.Equal(t, int64(7), request.StudentID)
	assert.Equal(t, 10, request.SessionsRequested)
}

func TestSubmitRequestRejectsNonPositiveSessions(t *testing.T) {
	svc := NewPaymentService(&stubPaymentStore{}, &stubUserStore{}, zap.NewNop())

	for _, sessions := range []int{0, -1} {
		_, err := svc.SubmitRequest(context.Background(), 7, sessions, "proof.jpg")
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestApprove(t *testing.T) {
	var gotStatus model.PaymentStatus
	store := &stubPaymentStore{
		decideFn: func(ctx context.Context, id int64, status model.PaymentStatus) (*model.PaymentRequest, bool, error) {
			gotStatus = status
			return &model.PaymentRequest{ID: id, StudentID: 7, SessionsRequested: 10, Status: status}, true, nil
		},
	}
	svc := NewPaymentService(store, &stubUserStore{}, zap.NewNop())

	request, err := svc.Approve(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusApproved, gotStatus)
	assert.Equal(t, int64(42), request.ID)
}

func TestApproveAlreadyProcessed(t *testing.T) {
	store := &stubPaymentStore{
		decideFn: func(ctx context.Context, id int64, status model.PaymentStatus) (*model.PaymentRequest, bool, error) {
			// Заявка уже решена другим тренером
			return &model.PaymentRequest{ID: id, Status: model.PaymentStatusRejected}, false, nil
		},
	}
	svc := NewPaymentService(store, &stubUserStore{}, zap.NewNop())

	request, err := svc.Approve(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	require.NotNil(t, request)
	assert.Equal(t, model.PaymentStatusRejected, request.Status)
}

func TestApproveNotFound(t *testing.T) {
	svc := NewPaymentService(&stubPaymentStore{}, &stubUserStore{}, zap.NewNop())

	_, err := svc.Approve(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReject(t *testing.T) {
	var gotStatus model.PaymentStatus
	store := &stubPaymentStore{
		decideFn: func(ctx context.Context, id int64, status model.PaymentStatus) (*model.PaymentRequest, bool, error) {
			gotStatus = status
			return &model.PaymentRequest{ID: id, Status: status}, true, nil
		},
	}
	svc := NewPaymentService(store, &stubUserStore{}, zap.NewNop())

	_, err := svc.Reject(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusRejected, gotStatus)
}

func TestGetPendingEnrichesStudents(t *testing.T) {
	paymentStore := &stubPaymentStore{
		getPendingFn: func(ctx context.Context) ([]*model.PaymentRequest, error) {
			return []*model.PaymentRequest{
				{ID: 1, StudentID: 7},
				{ID: 2, StudentID: 8},
			}, nil
		},
	}
	userStore := &stubUserStore{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, FirstName: "Ученик"}, nil
		},
	}
	svc := NewPaymentService(paymentStore, userStore, zap.NewNop())

	requests, err := svc.GetPending(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, int64(7), requests[0].Student.ID)
	assert.Equal(t, int64(8), requests[1].Student.ID)
}

func TestGetPendingStoreError(t *testing.T) {
	paymentStore := &stubPaymentStore{
		getPendingFn: func(ctx context.Context) ([]*model.PaymentRequest, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewPaymentService(paymentStore, &stubUserStore{}, zap.NewNop())

	_, err := svc.GetPending(context.Background())
	assert.Error(t, err)
}
