package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rsidorov/fitcoach_bot/internal/model"
)

type KnowledgeRepository struct {
	pool *pgxpool.Pool
}

func NewKnowledgeRepository(pool *pgxpool.Pool) *KnowledgeRepository {
	return &KnowledgeRepository{pool: pool}
}

// Create добавляет материал в базу знаний
func (r *KnowledgeRepository) Create(ctx context.Context, item *model.KnowledgeItem) error {
	query := `
		INSERT INTO knowledge_items (kind, content, file_path)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		item.Kind,
		item.Content,
		item.FilePath,
	).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return fmt.Errorf("create knowledge item: %w", err)
	}

	return nil
}

// GetAll получает все материалы в порядке добавления
func (r *KnowledgeRepository) GetAll(ctx context.Context) ([]*model.KnowledgeItem, error) {
	query := `
		SELECT id, kind, content, file_path, created_at
		FROM knowledge_items
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get knowledge items: %w", err)
	}
	defer rows.Close()

	var items []*model.KnowledgeItem
	for rows.Next() {
		var item model.KnowledgeItem
		err := rows.Scan(
			&item.ID,
			&item.Kind,
			&item.Content,
			&item.FilePath,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan knowledge item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate knowledge items: %w", err)
	}

	return items, nil
}

// Delete удаляет материал. Возвращает false если материала уже нет.
func (r *KnowledgeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `
		DELETE FROM knowledge_items
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete knowledge item: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
