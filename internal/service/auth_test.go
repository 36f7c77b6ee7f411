package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hackathonspt/attendee-hq/internal/domain"
	"github.com/hackathonspt/attendee-hq/internal/repository"
)

type fakeUserRepository struct {
	usersByEmail map[string]domain.User
	nextID       uint
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		usersByEmail: make(map[string]domain.User),
		nextID:       1,
	}
}

func (f *fakeUserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.usersByEmail[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = f.nextID
	f.nextID++
	f.usersByEmail[user.Email] = user

	return user, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash instead of the password", func(t *testing.T) {
		repo := newFakeUserRepository()
		svc := NewAuthService(repo)

		created, err := svc.Signup(ctx, domain.User{
			Email:    "ada@example.com",
			Password: "hunter2hunter2",
			Name:     "Ada",
		})

		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		stored := repo.usersByEmail["ada@example.com"]
		assert.NotEqual(t, "hunter2hunter2", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter2hunter2")))
	})

	t.Run("duplicate email returns ErrUserEmailExists", func(t *testing.T) {
		repo := newFakeUserRepository()
		svc := NewAuthService(repo)

		_, err := svc.Signup(ctx, domain.User{Email: "ada@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)

		_, err = svc.Signup(ctx, domain.User{Email: "ada@example.com", Password: "different1pass"})

		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *AuthService {
		t.Helper()
		repo := newFakeUserRepository()
		svc := NewAuthService(repo)
		_, err := svc.Signup(ctx, domain.User{Email: "ada@example.com", Password: "hunter2hunter2", Name: "Ada"})
		require.NoError(t, err)

		return svc
	}

	t.Run("returns the user on the right password", func(t *testing.T) {
		svc := setup(t)

		user, err := svc.Login(ctx, "ada@example.com", "hunter2hunter2")

		require.NoError(t, err)
		assert.Equal(t, "Ada", user.Name)
	})

	t.Run("wrong password returns ErrWrongPassword", func(t *testing.T) {
		svc := setup(t)

		_, err := svc.Login(ctx, "ada@example.com", "not-the-password")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email returns ErrUserNotFound", func(t *testing.T) {
		svc := setup(t)

		_, err := svc.Login(ctx, "nobody@example.com", "hunter2hunter2")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
