package model

import "time"

type User struct {
	ID                int64     `json:"id"`
	TelegramID        int64     `json:"telegram_id"`
	Username          string    `json:"username"`
	FirstName         string    `json:"first_name"`
	IsTrainer         bool      `json:"is_trainer"`
	RemainingSessions int       `json:"remaining_sessions"` // Оплаченные занятия, меняется только при одобрении оплаты
	CreatedAt         time.Time `json:"created_at"`
}

// DisplayName возвращает имя для отображения в списках учеников
func (u *User) DisplayName() string {
	name := u.FirstName
	if name == "" {
		name = "N/A"
	}
	username := u.Username
	if username == "" {
		username = "N/A"
	}
	return name + " (@" + username + ")"
}
