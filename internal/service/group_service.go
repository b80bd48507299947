package service

import (
	"context"
	"fmt"

	"github.com/rsidorov/fitcoach_bot/internal/model"
	"go.uber.org/zap"
)

type groupStore interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id int64) (*model.Group, error)
	GetByTrainerID(ctx context.Context, trainerID int64) ([]*model.Group, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*model.Group, error)
	SetProgramPath(ctx context.Context, groupID int64, path string) error
	AddMember(ctx context.Context, groupID, studentID int64) (bool, error)
	GetMembers(ctx context.Context, groupID int64) ([]*model.User, error)
	UpsertSchedule(ctx context.Context, groupID int64, content string) (*model.Schedule, error)
	GetSchedule(ctx context.Context, groupID int64) (*model.Schedule, error)
}

type GroupService struct {
	groupRepo groupStore
	userRepo  userStore
	logger    *zap.Logger
}

func NewGroupService(groupRepo groupStore, userRepo userStore, logger *zap.Logger) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// CreateGroup создаёт группу для тренера
func (s *GroupService) CreateGroup(ctx context.Context, name string, trainerID int64) (*model.Group, error) {
	group := &model.Group{
		Name:      name,
		TrainerID: trainerID,
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	s.logger.Info("Group created",
		zap.Int64("group_id", group.ID),
		zap.Int64("trainer_id", trainerID),
		zap.String("name", name),
	)

	return group, nil
}

// SetSchedule сохраняет текст расписания группы
func (s *GroupService) SetSchedule(ctx context.Context, groupID int64, content string) (*model.Schedule, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if group == nil {
		return nil, ErrNotFound
	}

	return s.groupRepo.UpsertSchedule(ctx, groupID, content)
}

// SetProgram сохраняет путь к загруженному файлу программы
func (s *GroupService) SetProgram(ctx context.Context, groupID int64, path string) error {
	if err := s.groupRepo.SetProgramPath(ctx, groupID, path); err != nil {
		return fmt.Errorf("set program: %w", err)
	}
	return nil
}

// AddMember добавляет ученика в группу.
// Возвращает ErrAlreadyMember при повторном добавлении той же пары.
func (s *GroupService) AddMember(ctx context.Context, groupID, studentID int64) (*model.User, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if group == nil {
		return nil, ErrNotFound
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, ErrNotFound
	}

	added, err := s.groupRepo.AddMember(ctx, groupID, studentID)
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}

	if !added {
		return student, ErrAlreadyMember
	}

	s.logger.Info("Student added to group",
		zap.Int64("group_id", groupID),
		zap.Int64("student_id", studentID),
	)

	return student, nil
}

// GetGroup получает группу с участниками и расписанием
func (s *GroupService) GetGroup(ctx context.Context, groupID int64) (*model.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if group == nil {
		return nil, ErrNotFound
	}

	group.Members, err = s.groupRepo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}

	group.Schedule, err = s.groupRepo.GetSchedule(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	return group, nil
}

// GetTrainerGroups получает группы тренера с участниками
func (s *GroupService) GetTrainerGroups(ctx context.Context, trainerID int64) ([]*model.Group, error) {
	groups, err := s.groupRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get trainer groups: %w", err)
	}

	for _, group := range groups {
		group.Members, err = s.groupRepo.GetMembers(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("get members of group %d: %w", group.ID, err)
		}
	}

	return groups, nil
}

// GetStudentGroups получает группы ученика с расписаниями
func (s *GroupService) GetStudentGroups(ctx context.Context, studentID int64) ([]*model.Group, error) {
	groups, err := s.groupRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student groups: %w", err)
	}

	for _, group := range groups {
		group.Schedule, err = s.groupRepo.GetSchedule(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("get schedule of group %d: %w", group.ID, err)
		}
	}

	return groups, nil
}
