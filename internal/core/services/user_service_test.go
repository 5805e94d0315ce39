package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/core/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
	"github.com/minimarketpos/pos_backend/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deletedBy, deletedAt)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	ctx      context.Context
	adminID  string
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockRepo)
	s.ctx = context.Background()
	s.adminID = uuid.NewString()
}

func (s *UserServiceTestSuite) TestCreateUser_Success() {
	req := dto.CreateUserRequest{
		Username: "anna",
		Name:     "Anna",
		Password: "correct-horse-battery",
		Role:     "CASHIER",
	}

	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := s.service.CreateUser(s.ctx, req, s.adminID)

	s.Require().NoError(err)
	s.Require().NotNil(user)
	assert.Equal(s.T(), "anna", user.Username)
	assert.Equal(s.T(), domain.RoleCashier, user.Role)
	assert.Equal(s.T(), s.adminID, user.CreatedBy)
	// The stored hash must verify against the original password
	assert.True(s.T(), utils.CheckPasswordHash(req.Password, user.PasswordHash))
	assert.NotEqual(s.T(), req.Password, user.PasswordHash)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUser_InvalidRole() {
	req := dto.CreateUserRequest{
		Username: "anna",
		Name:     "Anna",
		Password: "correct-horse-battery",
		Role:     "MANAGER",
	}

	user, err := s.service.CreateUser(s.ctx, req, s.adminID)

	s.Require().Error(err)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.Nil(s.T(), user)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	req := dto.CreateUserRequest{
		Username: "anna",
		Name:     "Anna",
		Password: "correct-horse-battery",
		Role:     "CASHIER",
	}

	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := s.service.CreateUser(s.ctx, req, s.adminID)

	s.Require().Error(err)
	assert.ErrorIs(s.T(), err, apperrors.ErrDuplicate)
	assert.Contains(s.T(), err.Error(), "anna")
	assert.Nil(s.T(), user)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestAuthenticateUser_Success() {
	password := "correct-horse-battery"
	hash, err := utils.HashPassword(password)
	s.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "anna",
		PasswordHash: hash,
		Role:         domain.RoleCashier,
	}
	s.mockRepo.On("FindUserByUsername", s.ctx, "anna").Return(stored, nil).Once()

	user, err := s.service.AuthenticateUser(s.ctx, "anna", password)

	s.Require().NoError(err)
	assert.Equal(s.T(), stored.UserID, user.UserID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	hash, err := utils.HashPassword("the-real-password")
	s.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "anna",
		PasswordHash: hash,
		Role:         domain.RoleCashier,
	}
	s.mockRepo.On("FindUserByUsername", s.ctx, "anna").Return(stored, nil).Once()

	user, err := s.service.AuthenticateUser(s.ctx, "anna", "a-wrong-guess")

	s.Require().Error(err)
	assert.ErrorIs(s.T(), err, apperrors.ErrUnauthorized)
	assert.Nil(s.T(), user)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_UnknownUser() {
	s.mockRepo.On("FindUserByUsername", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := s.service.AuthenticateUser(s.ctx, "ghost", "whatever")

	s.Require().Error(err)
	// Unknown user and wrong password must be indistinguishable
	assert.ErrorIs(s.T(), err, apperrors.ErrUnauthorized)
	assert.Nil(s.T(), user)
}

func (s *UserServiceTestSuite) TestUpdateUser_PatchRole() {
	userID := uuid.NewString()
	stored := &domain.User{
		UserID:   userID,
		Username: "anna",
		Name:     "Anna",
		Role:     domain.RoleCashier,
	}
	s.mockRepo.On("FindUserByID", s.ctx, userID).Return(stored, nil).Once()
	s.mockRepo.On("UpdateUser", s.ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	newRole := "ADMIN"
	updated, err := s.service.UpdateUser(s.ctx, userID, dto.UpdateUserRequest{Role: &newRole}, s.adminID)

	s.Require().NoError(err)
	assert.Equal(s.T(), domain.RoleAdmin, updated.Role)
	assert.Equal(s.T(), "Anna", updated.Name)
	assert.Equal(s.T(), s.adminID, updated.LastUpdatedBy)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestUpdateUser_InvalidRole() {
	userID := uuid.NewString()
	stored := &domain.User{UserID: userID, Username: "anna", Role: domain.RoleCashier}
	s.mockRepo.On("FindUserByID", s.ctx, userID).Return(stored, nil).Once()

	badRole := "OWNER"
	updated, err := s.service.UpdateUser(s.ctx, userID, dto.UpdateUserRequest{Role: &badRole}, s.adminID)

	s.Require().Error(err)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.Nil(s.T(), updated)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestDeleteUser_Success() {
	userID := uuid.NewString()
	s.mockRepo.On("MarkUserDeleted", s.ctx, userID, s.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.DeleteUser(s.ctx, userID, s.adminID)

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestDeleteUser_SelfDeleteRejected() {
	err := s.service.DeleteUser(s.ctx, s.adminID, s.adminID)

	s.Require().Error(err)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
