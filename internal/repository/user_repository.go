package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rsidorov/fitcoach_bot/internal/model"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, username, first_name, is_trainer)
		VALUES ($1, $2, $3, $4)
		RETURNING id, remaining_sessions, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		user.TelegramID,
		user.Username,
		user.FirstName,
		user.IsTrainer,
	).Scan(&user.ID, &user.RemainingSessions, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, is_trainer, remaining_sessions, created_at
		FROM users
		WHERE telegram_id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, telegramID).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.IsTrainer,
		&user.RemainingSessions,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return &user, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, is_trainer, remaining_sessions, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.IsTrainer,
		&user.RemainingSessions,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

// UpdateProfile обновляет имя и username (роль и баланс не трогаем)
func (r *UserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET username = $1, first_name = $2
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, user.Username, user.FirstName, user.ID)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// GetStudents получает всех учеников
func (r *UserRepository) GetStudents(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, is_trainer, remaining_sessions, created_at
		FROM users
		WHERE is_trainer = false
		ORDER BY first_name, username
	`

	return r.queryUsers(ctx, query)
}

// GetTrainers получает всех тренеров
func (r *UserRepository) GetTrainers(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, is_trainer, remaining_sessions, created_at
		FROM users
		WHERE is_trainer = true
		ORDER BY first_name, username
	`

	return r.queryUsers(ctx, query)
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*model.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		err := rows.Scan(
			&user.ID,
			&user.TelegramID,
			&user.Username,
			&user.FirstName,
			&user.IsTrainer,
			&user.RemainingSessions,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}
