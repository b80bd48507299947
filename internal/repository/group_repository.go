package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rsidorov/fitcoach_bot/internal/model"
)

type GroupRepository struct {
	pool *pgxpool.Pool
}

func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

// Create создаёт новую группу. trainer_id после этого не меняется.
func (r *GroupRepository) Create(ctx context.Context, group *model.Group) error {
	query := `
		INSERT INTO groups (name, trainer_id, program_path)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		group.Name,
		group.TrainerID,
		group.ProgramPath,
	).Scan(&group.ID, &group.CreatedAt)

	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	return nil
}

// GetByID получает группу по ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	query := `
		SELECT id, name, trainer_id, program_path, created_at
		FROM groups
		WHERE id = $1
	`

	var group model.Group
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.TrainerID,
		&group.ProgramPath,
		&group.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get group by id: %w", err)
	}

	return &group, nil
}

// GetByTrainerID получает все группы тренера
func (r *GroupRepository) GetByTrainerID(ctx context.Context, trainerID int64) ([]*model.Group, error) {
	query := `
		SELECT id, name, trainer_id, program_path, created_at
		FROM groups
		WHERE trainer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get groups by trainer: %w", err)
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		var group model.Group
		err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.TrainerID,
			&group.ProgramPath,
			&group.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}

	return groups, nil
}

// GetByStudentID получает группы, в которых состоит ученик
func (r *GroupRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Group, error) {
	query := `
		SELECT g.id, g.name, g.trainer_id, g.program_path, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.student_id = $1
		ORDER BY g.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("get groups by student: %w", err)
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		var group model.Group
		err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.TrainerID,
			&group.ProgramPath,
			&group.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}

	return groups, nil
}

// SetProgramPath сохраняет путь к файлу программы тренировок
func (r *GroupRepository) SetProgramPath(ctx context.Context, groupID int64, path string) error {
	query := `
		UPDATE groups
		SET program_path = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, path, groupID)
	if err != nil {
		return fmt.Errorf("set program path: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("group not found")
	}

	return nil
}

// AddMember добавляет ученика в группу.
// Возвращает false если пара группа-ученик уже существует (дубликаты запрещены схемой).
func (r *GroupRepository) AddMember(ctx context.Context, groupID, studentID int64) (bool, error) {
	query := `
		INSERT INTO group_members (group_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, student_id) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query, groupID, studentID)
	if err != nil {
		return false, fmt.Errorf("add group member: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// GetMembers получает учеников группы
func (r *GroupRepository) GetMembers(ctx context.Context, groupID int64) ([]*model.User, error) {
	query := `
		SELECT u.id, u.telegram_id, u.username, u.first_name, u.is_trainer, u.remaining_sessions, u.created_at
		FROM users u
		JOIN group_members gm ON gm.student_id = u.id
		WHERE gm.group_id = $1
		ORDER BY u.first_name, u.username
	`

	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group members: %w", err)
	}
	defer rows.Close()

	var members []*model.User
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
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		members = append(members, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group members: %w", err)
	}

	return members, nil
}

// UpsertSchedule создаёт или заменяет расписание группы (одно на группу)
func (r *GroupRepository) UpsertSchedule(ctx context.Context, groupID int64, content string) (*model.Schedule, error) {
	query := `
		INSERT INTO schedules (group_id, content)
		VALUES ($1, $2)
		ON CONFLICT (group_id) DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()
		RETURNING id, group_id, content, created_at, updated_at
	`

	var schedule model.Schedule
	err := r.pool.QueryRow(ctx, query, groupID, content).Scan(
		&schedule.ID,
		&schedule.GroupID,
		&schedule.Content,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("upsert schedule: %w", err)
	}

	return &schedule, nil
}

// GetSchedule получает расписание группы
func (r *GroupRepository) GetSchedule(ctx context.Context, groupID int64) (*model.Schedule, error) {
	query := `
		SELECT id, group_id, content, created_at, updated_at
		FROM schedules
		WHERE group_id = $1
	`

	var schedule model.Schedule
	err := r.pool.QueryRow(ctx, query, groupID).Scan(
		&schedule.ID,
		&schedule.GroupID,
		&schedule.Content,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	return &schedule, nil
}
