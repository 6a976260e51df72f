package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/JamalC77/penned-works/internal/config"
	"github.com/JamalC77/penned-works/internal/infrastructure/persistence/database"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	client, err := database.NewClient(&config.DatabaseConfig{
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return NewService(database.NewUserRepository(client))
}

func TestRegister_NormalizesUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "  WriterJane  ", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "writerjane" {
		t.Errorf("username = %q, want %q", user.Username, "writerjane")
	}
	if user.DisplayName != "WriterJane" {
		t.Errorf("display name = %q, want %q", user.DisplayName, "WriterJane")
	}
	if user.PasswordHash == "hunter2" {
		t.Error("password stored in plain text")
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jane", "abc"); !errors.Is(err, apperrors.ErrPasswordTooWeak) {
		t.Errorf("error = %v, want ErrPasswordTooWeak", err)
	}

	// 校验失败时不落库，同名注册仍然可用。
	if _, err := svc.Register(ctx, "jane", "abcd"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jane", "hunter2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 大小写不同也算重名。
	if _, err := svc.Register(ctx, "JANE", "hunter2"); !errors.Is(err, apperrors.ErrUsernameTaken) {
		t.Errorf("error = %v, want ErrUsernameTaken", err)
	}
}

func TestLogin_CaseInsensitiveUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "jane", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := svc.Login(ctx, "Jane", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("user id = %q, want %q", user.ID, registered.ID)
	}
}

// 用户名不存在和密码错误返回同一个错误，不泄露账号是否存在。
func TestLogin_GenericFailure(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jane", "hunter2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Login(ctx, "jane", "wrong"); !errors.Is(err, apperrors.ErrLoginFailed) {
		t.Errorf("wrong password error = %v, want ErrLoginFailed", err)
	}
	if _, err := svc.Login(ctx, "nobody", "hunter2"); !errors.Is(err, apperrors.ErrLoginFailed) {
		t.Errorf("unknown user error = %v, want ErrLoginFailed", err)
	}
}
