// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"github.com/JamalC77/penned-works/internal/domain/entity"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	// Create 创建用户
	Create(ctx context.Context, user *entity.User) error

	// GetByID 根据 ID 获取用户
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByUsername 根据用户名获取用户，用户名已归一化为小写
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
