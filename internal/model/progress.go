package model

import "time"

type ProgressKind string

const (
	ProgressKindTraining  ProgressKind = "training"
	ProgressKindPhoto     ProgressKind = "photo"
	ProgressKindNutrition ProgressKind = "nutrition"
)

// ProgressEntry — запись дневника ученика. Создаётся один раз и не меняется.
// Хотя бы одно из полей Content/ArtifactPath должно быть заполнено.
type ProgressEntry struct {
	ID           int64        `json:"id"`
	StudentID    int64        `json:"student_id"`
	Kind         ProgressKind `json:"kind"`
	Content      string       `json:"content"`
	ArtifactPath string       `json:"artifact_path"`
	CreatedAt    time.Time    `json:"created_at"`
}
