package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rsidorov/fitcoach_bot/internal/model"
)

type ProgressRepository struct {
	pool *pgxpool.Pool
}

func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// Create добавляет запись в дневник. Записи не редактируются и не удаляются.
func (r *ProgressRepository) Create(ctx context.Context, entry *model.ProgressEntry) error {
	query := `
		INSERT INTO progress_entries (student_id, kind, content, artifact_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		entry.StudentID,
		entry.Kind,
		entry.Content,
		entry.ArtifactPath,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("create progress entry: %w", err)
	}

	return nil
}

// GetRecent получает последние limit записей ученика указанного типа
func (r *ProgressRepository) GetRecent(ctx context.Context, studentID int64, kind model.ProgressKind, limit int) ([]*model.ProgressEntry, error) {
	query := `
		SELECT id, student_id, kind, content, artifact_path, created_at
		FROM progress_entries
		WHERE student_id = $1 AND kind = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, studentID, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent progress entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.ProgressEntry
	for rows.Next() {
		var entry model.ProgressEntry
		err := rows.Scan(
			&entry.ID,
			&entry.StudentID,
			&entry.Kind,
			&entry.Content,
			&entry.ArtifactPath,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan progress entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress entries: %w", err)
	}

	return entries, nil
}
