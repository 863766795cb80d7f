package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/backend/domain"
)

type userRepoMock struct {
	mock.Mock
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *userRepoMock) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if value := args.Get(0); value != nil {
		user = value.(*domain.User)
	}
	return user, args.Error(1)
}

func (m *userRepoMock) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	var user *domain.User
	if value := args.Get(0); value != nil {
		user = value.(*domain.User)
	}
	return user, args.Error(1)
}

type issuerStub struct {
	token  string
	lastID int64
}

func (s *issuerStub) Issue(userID int64) (string, error) {
	s.lastID = userID
	return s.token, nil
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := new(userRepoMock)
	var stored *domain.User
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.User)
	}).Return(int64(1), nil).Once()

	uc := New(repo, &issuerStub{}, nil)

	id, err := uc.Register(context.Background(), "alice", "alice@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	require.NotNil(t, stored)
	require.Equal(t, "alice", stored.Username)
	require.NotEqual(t, "secret", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
	repo.AssertExpectations(t)
}

func TestRegister_MissingFields(t *testing.T) {
	uc := New(new(userRepoMock), &issuerStub{}, nil)

	cases := []struct {
		name                      string
		username, email, password string
	}{
		{"no username", "", "a@b.c", "pw"},
		{"no email", "alice", "", "pw"},
		{"no password", "alice", "a@b.c", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tc.username, tc.email, tc.password)
			require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("Create", mock.Anything, mock.Anything).Return(int64(0), error(domain.ErrDuplicateUser)).Once()

	uc := New(repo, &issuerStub{}, nil)

	_, err := uc.Register(context.Background(), "alice", "alice@example.com", "secret")
	require.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
	repo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(userRepoMock)
	repo.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           42,
		Username:     "alice",
		PasswordHash: string(hash),
	}, nil).Once()

	issuer := &issuerStub{token: "signed-token"}
	uc := New(repo, issuer, nil)

	accessToken, err := uc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, "signed-token", accessToken)
	require.Equal(t, int64(42), issuer.lastID)
	repo.AssertExpectations(t)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(userRepoMock)
	repo.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           42,
		Username:     "alice",
		PasswordHash: string(hash),
	}, nil)
	repo.On("GetByUsername", mock.Anything, "nobody").Return(nil, error(domain.ErrUserNotFound))

	uc := New(repo, &issuerStub{}, nil)

	_, wrongPassword := uc.Login(context.Background(), "alice", "not-the-password")
	_, unknownUser := uc.Login(context.Background(), "nobody", "whatever")
	_, emptyPassword := uc.Login(context.Background(), "alice", "")

	// Same error value for every failure mode: nothing leaks which part was wrong.
	require.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
	require.ErrorIs(t, emptyPassword, domain.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}
