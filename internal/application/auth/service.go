// Package auth 实现注册与登录
package auth

import (
	"context"

	"github.com/JamalC77/penned-works/internal/domain/entity"
	"github.com/JamalC77/penned-works/internal/domain/repository"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
	"github.com/JamalC77/penned-works/pkg/logger"
)

const minPasswordLength = 4

// Service 认证应用服务
type Service struct {
	userRepo repository.UserRepository
}

// NewService 创建认证服务
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// Register 注册新用户并返回实体，校验通过后才写库
func (s *Service) Register(ctx context.Context, username, password string) (*entity.User, error) {
	normalized := entity.NormalizeUsername(username)
	if normalized == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "username is required")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.ErrPasswordTooWeak
	}

	existing, err := s.userRepo.GetByUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}

	user := entity.NewUser(username)
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login 校验凭证，用户名不存在与密码错误返回同一个错误
func (s *Service) Login(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, entity.NormalizeUsername(username))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, apperrors.ErrLoginFailed
	}
	return user, nil
}

// GetUser 根据 ID 获取用户
func (s *Service) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
