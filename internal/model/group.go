package model

import "time"

type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	TrainerID   int64     `json:"trainer_id"` // Не меняется после создания
	ProgramPath string    `json:"program_path"`
	CreatedAt   time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Members  []*User   `json:"members,omitempty"`
	Schedule *Schedule `json:"schedule,omitempty"`
}

type Schedule struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
