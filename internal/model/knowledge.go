package model

import "time"

type KnowledgeKind string

const (
	KnowledgeKindText  KnowledgeKind = "text"
	KnowledgeKindFile  KnowledgeKind = "file"
	KnowledgeKindImage KnowledgeKind = "image"
)

// KnowledgeItem — материал базы знаний. Добавление и удаление, без редактирования.
type KnowledgeItem struct {
	ID        int64         `json:"id"`
	Kind      KnowledgeKind `json:"kind"`
	Content   string        `json:"content"`
	FilePath  string        `json:"file_path"`
	CreatedAt time.Time     `json:"created_at"`
}
