package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestService(t *testing.T) *Service {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(&User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &Service{DB: gdb}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := openTestService(t)

	u, err := s.Register(ctx, " Ana ", " Ana@Example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == 0 || u.Name != "Ana" || u.Email != "ana@example.com" {
		t.Errorf("user = %+v", u)
	}
	if u.PasswordHash == "password123" {
		t.Error("password stored in plain text")
	}

	if _, err := s.Register(ctx, "Other", "ana@example.com", "password456"); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate Register error = %v, want ErrUserExists", err)
	}

	got, err := s.Authenticate(ctx, "ANA@example.com", "password123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("authenticated id = %d, want %d", got.ID, u.ID)
	}

	if _, err := s.Authenticate(ctx, "ana@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v", err)
	}
	if _, err := s.Authenticate(ctx, "bo@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v", err)
	}
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	s := openTestService(t)
	u, err := s.Register(ctx, "Ana", "ana@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got, err := s.Get(ctx, u.ID); err != nil || got.Email != u.Email {
		t.Errorf("Get = %+v, %v", got, err)
	}
	if _, err := s.Get(ctx, u.ID+100); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing error = %v, want ErrNotFound", err)
	}
}
