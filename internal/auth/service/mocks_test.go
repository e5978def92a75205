package service

import (
	"context"

	"github.com/pkravets/huddle-auth/internal/auth/domain"
	"github.com/pkravets/huddle-auth/internal/auth/repository"
)

type mockUserRepo struct {
	createFunc           func(ctx context.Context, user domain.User) (domain.User, error)
	findByIdentifierFunc func(ctx context.Context, identifier string) (domain.User, error)
	existsFunc           func(ctx context.Context, field domain.Field, value string) (bool, error)
	deleteFunc           func(ctx context.Context, id int64) error
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	created := user
	created.ID = 1
	return created, nil
}

func (m *mockUserRepo) FindByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	if m.findByIdentifierFunc != nil {
		return m.findByIdentifierFunc(ctx, identifier)
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) Exists(ctx context.Context, field domain.Field, value string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, field, value)
	}
	return false, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash != "hashed:"+password {
		return errInvalidMockPassword
	}
	return nil
}
