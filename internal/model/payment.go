package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"  // Ожидает решения тренера
	PaymentStatusApproved PaymentStatus = "approved" // Одобрена, занятия зачислены
	PaymentStatusRejected PaymentStatus = "rejected" // Отклонена тренером
)

// IsTerminal сообщает что статус уже финальный и повторное решение невозможно
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusApproved || s == PaymentStatusRejected
}

type PaymentRequest struct {
	ID                int64         `json:"id"`
	StudentID         int64         `json:"student_id"`
	SessionsRequested int           `json:"sessions_requested"`
	Status            PaymentStatus `json:"status"`
	ProofPath         string        `json:"proof_path"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	Student *User `json:"student,omitempty"`
}
