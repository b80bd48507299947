package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rsidorov/fitcoach_bot/internal/model"
)

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create создаёт новую заявку на оплату в статусе pending
func (r *PaymentRepository) Create(ctx context.Context, request *model.PaymentRequest) error {
	query := `
		INSERT INTO payment_requests (student_id, sessions_requested, proof_path)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		request.StudentID,
		request.SessionsRequested,
		request.ProofPath,
	).Scan(&request.ID, &request.Status, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create payment request: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*model.PaymentRequest, error) {
	query := `
		SELECT id, student_id, sessions_requested, status, proof_path, created_at, updated_at
		FROM payment_requests
		WHERE id = $1
	`

	var request model.PaymentRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.StudentID,
		&request.SessionsRequested,
		&request.Status,
		&request.ProofPath,
		&request.CreatedAt,
		&request.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment request by id: %w", err)
	}

	return &request, nil
}

// Decide переводит заявку из pending в указанный финальный статус.
// Проверка статуса, смена статуса и зачисление занятий выполняются в одной
// транзакции: повторный вызов для уже решённой заявки ничего не меняет.
// Возвращает (заявка, true) если решение применено, (заявка, false) если
// заявка уже была в финальном статусе, (nil, false) если заявки нет.
func (r *PaymentRepository) Decide(ctx context.Context, id int64, status model.PaymentStatus) (*model.PaymentRequest, bool, error) {
	if !status.IsTerminal() {
		return nil, false, fmt.Errorf("decide payment: %q is not a terminal status", status)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var request model.PaymentRequest
	err = tx.QueryRow(ctx, `
		SELECT id, student_id, sessions_requested, status, proof_path, created_at, updated_at
		FROM payment_requests
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(
		&request.ID,
		&request.StudentID,
		&request.SessionsRequested,
		&request.Status,
		&request.ProofPath,
		&request.CreatedAt,
		&request.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lock payment request: %w", err)
	}

	// Статус меняется ровно один раз. Дубликат callback'а — no-op.
	if request.Status.IsTerminal() {
		return &request, false, nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE payment_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return nil, false, fmt.Errorf("update payment status: %w", err)
	}

	if status == model.PaymentStatusApproved {
		_, err = tx.Exec(ctx, `
			UPDATE users
			SET remaining_sessions = remaining_sessions + $1
			WHERE id = $2
		`, request.SessionsRequested, request.StudentID)
		if err != nil {
			return nil, false, fmt.Errorf("credit sessions: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit transaction: %w", err)
	}

	request.Status = status
	return &request, true, nil
}

// GetPending получает все нерешённые заявки
func (r *PaymentRepository) GetPending(ctx context.Context) ([]*model.PaymentRequest, error) {
	query := `
		SELECT id, student_id, sessions_requested, status, proof_path, created_at, updated_at
		FROM payment_requests
		WHERE status = 'pending'
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get pending payment requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.PaymentRequest
	for rows.Next() {
		var request model.PaymentRequest
		err := rows.Scan(
			&request.ID,
			&request.StudentID,
			&request.SessionsRequested,
			&request.Status,
			&request.ProofPath,
			&request.CreatedAt,
			&request.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment request: %w", err)
		}
		requests = append(requests, &request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment requests: %w", err)
	}

	return requests, nil
}
