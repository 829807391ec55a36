package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "reeltrack/internal/errors"
	"reeltrack/internal/model"
)

func TestFriendshipService_SendRequest(t *testing.T) {
	sender := uuid.New()
	target := uuid.New()

	tests := []struct {
		name          string
		senderID      uuid.UUID
		targetID      uuid.UUID
		setupMock     func(*MockUserRepository, *MockFriendshipRepository)
		expectedError error
	}{
		{
			name:     "successful request",
			senderID: sender,
			targetID: target,
			setupMock: func(mUser *MockUserRepository, mFriend *MockFriendshipRepository) {
				mUser.On("FindByID", mock.Anything, target).Return(&model.User{ID: target}, nil)
				mFriend.On("AreFriends", mock.Anything, sender, target).Return(false, nil)
				mFriend.On("FindRequest", mock.Anything, sender, target).Return(nil, gorm.ErrRecordNotFound)
				mFriend.On("FindRequest", mock.Anything, target, sender).Return(nil, gorm.ErrRecordNotFound)
				mFriend.On("CreateRequest", mock.Anything, mock.AnythingOfType("*model.FriendRequest")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "self request",
			senderID:      sender,
			targetID:      sender,
			setupMock:     func(mUser *MockUserRepository, mFriend *MockFriendshipRepository) {},
			expectedError: apperrors.ErrSelfAction,
		},
		{
			name:     "target does not exist",
			senderID: sender,
			targetID: target,
			setupMock: func(mUser *MockUserRepository, mFriend *MockFriendshipRepository) {
				mUser.On("FindByID", mock.Anything, target).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:     "already friends",
			senderID: sender,
			targetID: target,
			setupMock: func(mUser *MockUserRepository, mFriend *MockFriendshipRepository) {
				mUser.On("FindByID", mock.Anything, target).Return(&model.User{ID: target}, nil)
				mFriend.On("AreFriends", mock.Anything, sender, target).Return(true, nil)
			},
			expectedError: apperrors.ErrAlreadyFriends,
		},
		{
			name:     "request already sent",
			senderID: sender,
			targetID: target,
			setupMock: func(mUser *MockUserRepository, mFriend *MockFriendshipRepository) {
				mUser.On("FindByID", mock.Anything, target).Return(&model.User{ID: target}, nil)
				mFriend.On("AreFriends", mock.Anything, sender, target).Return(false, nil)
				mFriend.On("FindRequest", mock.Anything, sender, target).Return(&model.FriendRequest{}, nil)
			},
			expectedError: apperrors.ErrRequestAlreadySent,
		},
		{
			name:     "reverse request pending",
			senderID: sender,
			targetID: target,
			setupMock: func(mUser *MockUserRepository, mFriend *MockFriendshipRepository) {
				mUser.On("FindByID", mock.Anything, target).Return(&model.User{ID: target}, nil)
				mFriend.On("AreFriends", mock.Anything, sender, target).Return(false, nil)
				mFriend.On("FindRequest", mock.Anything, sender, target).Return(nil, gorm.ErrRecordNotFound)
				mFriend.On("FindRequest", mock.Anything, target, sender).Return(&model.FriendRequest{}, nil)
			},
			expectedError: apperrors.ErrRequestPending,
		},
		{
			name:     "concurrent duplicate insert",
			senderID: sender,
			targetID: target,
			setupMock: func(mUser *MockUserRepository, mFriend *MockFriendshipRepository) {
				mUser.On("FindByID", mock.Anything, target).Return(&model.User{ID: target}, nil)
				mFriend.On("AreFriends", mock.Anything, sender, target).Return(false, nil)
				mFriend.On("FindRequest", mock.Anything, sender, target).Return(nil, gorm.ErrRecordNotFound)
				mFriend.On("FindRequest", mock.Anything, target, sender).Return(nil, gorm.ErrRecordNotFound)
				mFriend.On("CreateRequest", mock.Anything, mock.AnythingOfType("*model.FriendRequest")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrRequestAlreadySent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockFriendRepo := new(MockFriendshipRepository)
			tt.setupMock(mockUserRepo, mockFriendRepo)

			svc := NewFriendshipService(mockUserRepo, mockFriendRepo)
			err := svc.SendRequest(context.Background(), tt.senderID, tt.targetID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockUserRepo.AssertExpectations(t)
			mockFriendRepo.AssertExpectations(t)
		})
	}
}

func TestFriendshipService_AcceptRequest(t *testing.T) {
	recipient := uuid.New()
	requester := uuid.New()

	t.Run("successful accept deletes request and creates friendship atomically", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockFriendRepo := new(MockFriendshipRepository)

		mockUserRepo.On("FindByID", mock.Anything, requester).Return(&model.User{ID: requester}, nil)
		mockFriendRepo.On("FindRequest", mock.Anything, requester, recipient).Return(&model.FriendRequest{}, nil)
		mockFriendRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		mockFriendRepo.On("DeleteRequest", mock.Anything, requester, recipient).Return(nil)
		mockFriendRepo.On("CreateFriendship", mock.Anything, recipient, requester).Return(nil)

		svc := NewFriendshipService(mockUserRepo, mockFriendRepo)
		err := svc.AcceptRequest(context.Background(), recipient, requester)

		assert.NoError(t, err)
		mockFriendRepo.AssertExpectations(t)
	})

	t.Run("no pending request", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockFriendRepo := new(MockFriendshipRepository)

		mockUserRepo.On("FindByID", mock.Anything, requester).Return(&model.User{ID: requester}, nil)
		mockFriendRepo.On("FindRequest", mock.Anything, requester, recipient).Return(nil, gorm.ErrRecordNotFound)

		svc := NewFriendshipService(mockUserRepo, mockFriendRepo)
		err := svc.AcceptRequest(context.Background(), recipient, requester)

		assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
	})

	t.Run("self accept", func(t *testing.T) {
		svc := NewFriendshipService(new(MockUserRepository), new(MockFriendshipRepository))
		err := svc.AcceptRequest(context.Background(), recipient, recipient)
		assert.ErrorIs(t, err, apperrors.ErrSelfAction)
	})
}

func TestFriendshipService_RejectOrRemove(t *testing.T) {
	user := uuid.New()
	target := uuid.New()

	tests := []struct {
		name           string
		setupMock      func(*MockFriendshipRepository)
		expectedAction string
		expectedError  error
	}{
		{
			name: "incoming request is rejected",
			setupMock: func(m *MockFriendshipRepository) {
				m.On("FindRequest", mock.Anything, target, user).Return(&model.FriendRequest{}, nil)
				m.On("DeleteRequest", mock.Anything, target, user).Return(nil)
			},
			expectedAction: ActionRejected,
		},
		{
			name: "outgoing request is cancelled",
			setupMock: func(m *MockFriendshipRepository) {
				m.On("FindRequest", mock.Anything, target, user).Return(nil, gorm.ErrRecordNotFound)
				m.On("FindRequest", mock.Anything, user, target).Return(&model.FriendRequest{}, nil)
				m.On("DeleteRequest", mock.Anything, user, target).Return(nil)
			},
			expectedAction: ActionCancelled,
		},
		{
			name: "friendship is removed",
			setupMock: func(m *MockFriendshipRepository) {
				m.On("FindRequest", mock.Anything, target, user).Return(nil, gorm.ErrRecordNotFound)
				m.On("FindRequest", mock.Anything, user, target).Return(nil, gorm.ErrRecordNotFound)
				m.On("AreFriends", mock.Anything, user, target).Return(true, nil)
				m.On("DeleteFriendship", mock.Anything, user, target).Return(nil)
			},
			expectedAction: ActionRemoved,
		},
		{
			name: "no relationship at all",
			setupMock: func(m *MockFriendshipRepository) {
				m.On("FindRequest", mock.Anything, target, user).Return(nil, gorm.ErrRecordNotFound)
				m.On("FindRequest", mock.Anything, user, target).Return(nil, gorm.ErrRecordNotFound)
				m.On("AreFriends", mock.Anything, user, target).Return(false, nil)
			},
			expectedError: apperrors.ErrNoRelationship,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockFriendRepo := new(MockFriendshipRepository)
			mockUserRepo.On("FindByID", mock.Anything, target).Return(&model.User{ID: target}, nil)
			tt.setupMock(mockFriendRepo)

			svc := NewFriendshipService(mockUserRepo, mockFriendRepo)
			action, err := svc.RejectOrRemove(context.Background(), user, target)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, action)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAction, action)
			}

			mockFriendRepo.AssertExpectations(t)
		})
	}
}

func TestFriendshipService_Friends(t *testing.T) {
	user := uuid.New()
	friendID := uuid.New()

	mockUserRepo := new(MockUserRepository)
	mockFriendRepo := new(MockFriendshipRepository)
	mockFriendRepo.On("ListFriends", mock.Anything, user).Return([]model.User{
		{ID: friendID, Name: "Friend", Email: "friend@example.com"},
	}, nil)

	svc := NewFriendshipService(mockUserRepo, mockFriendRepo)
	friends, err := svc.Friends(context.Background(), user)

	assert.NoError(t, err)
	assert.Len(t, friends, 1)
	assert.Equal(t, friendID, friends[0].ID)
	assert.Equal(t, "Friend", friends[0].Name)
}

func TestFriendshipService_PendingRequests(t *testing.T) {
	user := uuid.New()

	mockUserRepo := new(MockUserRepository)
	mockFriendRepo := new(MockFriendshipRepository)
	mockFriendRepo.On("ListRequesters", mock.Anything, user).Return([]model.User{}, nil)

	svc := NewFriendshipService(mockUserRepo, mockFriendRepo)
	requesters, err := svc.PendingRequests(context.Background(), user)

	assert.NoError(t, err)
	assert.Empty(t, requesters)
}
