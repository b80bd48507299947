package service

import (
	"context"
	"fmt"

	"github.com/rsidorov/fitcoach_bot/internal/model"
	"go.uber.org/zap"
)

type userStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	GetStudents(ctx context.Context) ([]*model.User, error)
	GetTrainers(ctx context.Context) ([]*model.User, error)
}

type UserService struct {
	userRepo userStore
	logger   *zap.Logger
}

func NewUserService(userRepo userStore, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser регистрирует или обновляет пользователя при первом контакте
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error) {
	// Проверяем существует ли пользователь
	existingUser, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	// Если пользователь уже существует, обновляем профиль.
	// Роль и баланс занятий при этом не трогаем.
	if existingUser != nil {
		existingUser.Username = username
		existingUser.FirstName = firstName

		if err := s.userRepo.UpdateProfile(ctx, existingUser); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}

		return existingUser, nil
	}

	// Создаём нового ученика
	user := &model.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		IsTrainer:  false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// GetByID получает пользователя по ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetStudents получает всех учеников
func (s *UserService) GetStudents(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.GetStudents(ctx)
}

// GetTrainers получает всех тренеров
func (s *UserService) GetTrainers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.GetTrainers(ctx)
}

// RequireTrainer — единая точка проверки прав тренера. Роль каждый раз
// перечитывается из БД, чтобы проверка не работала по устаревшим данным.
func (s *UserService) RequireTrainer(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return nil, ErrNotFound
	}

	if !user.IsTrainer {
		return nil, ErrNotTrainer
	}

	return user, nil
}
