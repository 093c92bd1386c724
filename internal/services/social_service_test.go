package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lcamargo/puzzlefeed/internal/errors"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/testutil/mocks"
)

type socialFixture struct {
	socialRepo  *mocks.MockSocialRepository
	commentRepo *mocks.MockCommentRepository
	playerRepo  *mocks.MockPlayerRepository
	puzzleRepo  *mocks.MockPuzzleRepository
	queue       *mocks.MockJobQueue
	service     SocialService
}

func newSocialFixture(t *testing.T) *socialFixture {
	t.Helper()
	f := &socialFixture{
		socialRepo:  &mocks.MockSocialRepository{},
		commentRepo: &mocks.MockCommentRepository{},
		playerRepo:  &mocks.MockPlayerRepository{},
		puzzleRepo:  &mocks.MockPuzzleRepository{},
		queue:       &mocks.MockJobQueue{},
	}
	f.service = NewSocialService(f.socialRepo, f.commentRepo, f.playerRepo, f.puzzleRepo, f.queue, time.Minute)
	return f
}

func TestFollow_RejectsSelfFollow(t *testing.T) {
	f := newSocialFixture(t)

	err := f.service.Follow(context.Background(), 1, 1)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestFollow_UnknownFollowee(t *testing.T) {
	f := newSocialFixture(t)
	f.playerRepo.On("Get", mock.Anything, int64(2)).Return(nil, nil)

	err := f.service.Follow(context.Background(), 1, 2)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestFollow_EnqueuesNotification(t *testing.T) {
	f := newSocialFixture(t)
	f.playerRepo.On("Get", mock.Anything, int64(2)).Return(&models.Player{ID: 2, Username: "bea"}, nil)
	f.socialRepo.On("BlockedIDs", mock.Anything, int64(1)).Return([]int64{}, nil)
	f.socialRepo.On("IsFollowing", mock.Anything, int64(1), int64(2)).Return(false, nil)
	f.socialRepo.On("Follow", mock.Anything, int64(1), int64(2)).Return(nil)
	f.queue.On("EnqueueNotify", int64(2), models.NotifyFollow, int64(1), "").Return(nil)

	err := f.service.Follow(context.Background(), 1, 2)
	require.NoError(t, err)
	f.queue.AssertExpectations(t)
}

func TestFollow_RepeatDoesNotRenotify(t *testing.T) {
	f := newSocialFixture(t)
	f.playerRepo.On("Get", mock.Anything, int64(2)).Return(&models.Player{ID: 2, Username: "bea"}, nil)
	f.socialRepo.On("BlockedIDs", mock.Anything, int64(1)).Return([]int64{}, nil)
	f.socialRepo.On("IsFollowing", mock.Anything, int64(1), int64(2)).Return(true, nil)
	f.socialRepo.On("Follow", mock.Anything, int64(1), int64(2)).Return(nil)

	err := f.service.Follow(context.Background(), 1, 2)
	require.NoError(t, err)
	f.queue.AssertNotCalled(t, "EnqueueNotify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFollow_RejectedWhenTargetBlocked(t *testing.T) {
	f := newSocialFixture(t)
	f.playerRepo.On("Get", mock.Anything, int64(2)).Return(&models.Player{ID: 2, Username: "bea"}, nil)
	f.socialRepo.On("BlockedIDs", mock.Anything, int64(1)).Return([]int64{2}, nil)

	err := f.service.Follow(context.Background(), 1, 2)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeForbidden, appErr.Code)
	f.socialRepo.AssertNotCalled(t, "Follow", mock.Anything, int64(1), int64(2))
}

func TestBlock_InvalidatesCachedBlockList(t *testing.T) {
	f := newSocialFixture(t)
	f.playerRepo.On("Get", mock.Anything, int64(2)).Return(&models.Player{ID: 2, Username: "bea"}, nil)

	// First read populates the cache with an empty list.
	f.socialRepo.On("BlockedIDs", mock.Anything, int64(1)).Return([]int64{}, nil).Once()
	ids, err := f.service.BlockedIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, ids)

	f.socialRepo.On("Block", mock.Anything, int64(1), int64(2)).Return(nil)
	require.NoError(t, f.service.Block(context.Background(), 1, 2))

	// The write must force the next read back to the repository.
	f.socialRepo.On("BlockedIDs", mock.Anything, int64(1)).Return([]int64{2}, nil).Once()
	ids, err = f.service.BlockedIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)
	f.socialRepo.AssertExpectations(t)
}

func TestBlockedIDs_CachesRepeatedReads(t *testing.T) {
	f := newSocialFixture(t)
	f.socialRepo.On("BlockedIDs", mock.Anything, int64(1)).Return([]int64{9}, nil).Once()

	for i := 0; i < 3; i++ {
		ids, err := f.service.BlockedIDs(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{9}, ids)
	}
	f.socialRepo.AssertExpectations(t)
}

func TestLike_NotifiesAuthorOnce(t *testing.T) {
	f := newSocialFixture(t)
	puzzle := &models.Puzzle{ID: "p1", Type: "math", AuthorID: 5}
	f.puzzleRepo.On("Get", mock.Anything, "p1").Return(puzzle, nil)
	f.socialRepo.On("Like", mock.Anything, int64(1), "p1").Return(nil)
	f.queue.On("EnqueueNotify", int64(5), models.NotifyLike, int64(1), "p1").Return(nil)

	require.NoError(t, f.service.Like(context.Background(), 1, "p1"))
	f.queue.AssertNumberOfCalls(t, "EnqueueNotify", 1)
}

func TestLike_OwnPuzzleDoesNotNotify(t *testing.T) {
	f := newSocialFixture(t)
	puzzle := &models.Puzzle{ID: "p1", Type: "math", AuthorID: 1}
	f.puzzleRepo.On("Get", mock.Anything, "p1").Return(puzzle, nil)
	f.socialRepo.On("Like", mock.Anything, int64(1), "p1").Return(nil)

	require.NoError(t, f.service.Like(context.Background(), 1, "p1"))
	f.queue.AssertNotCalled(t, "EnqueueNotify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLike_UnknownPuzzle(t *testing.T) {
	f := newSocialFixture(t)
	f.puzzleRepo.On("Get", mock.Anything, "missing").Return(nil, nil)

	err := f.service.Like(context.Background(), 1, "missing")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestComment_RejectsEmptyBody(t *testing.T) {
	f := newSocialFixture(t)

	_, err := f.service.Comment(context.Background(), 1, "p1", "   ")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestComment_InsertsAndNotifies(t *testing.T) {
	f := newSocialFixture(t)
	puzzle := &models.Puzzle{ID: "p1", Type: "riddle", AuthorID: 8}
	f.puzzleRepo.On("Get", mock.Anything, "p1").Return(puzzle, nil)
	f.commentRepo.On("Insert", mock.Anything, mock.MatchedBy(func(c models.Comment) bool {
		return c.PuzzleID == "p1" && c.PlayerID == 1 && c.Body == "nice one" && c.ID != ""
	})).Return(nil)
	f.queue.On("EnqueueNotify", int64(8), models.NotifyComment, int64(1), "p1").Return(nil)

	comment, err := f.service.Comment(context.Background(), 1, "p1", "  nice one  ")
	require.NoError(t, err)
	assert.Equal(t, "nice one", comment.Body)
	f.commentRepo.AssertExpectations(t)
	f.queue.AssertExpectations(t)
}

func TestDeleteComment_OnlyAuthor(t *testing.T) {
	f := newSocialFixture(t)
	f.commentRepo.On("Get", mock.Anything, "c1").Return(&models.Comment{ID: "c1", PlayerID: 2}, nil)

	err := f.service.DeleteComment(context.Background(), 1, "c1")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeForbidden, appErr.Code)
	f.commentRepo.AssertNotCalled(t, "Delete", mock.Anything, "c1")
}

func TestDeleteComment_AuthorSucceeds(t *testing.T) {
	f := newSocialFixture(t)
	f.commentRepo.On("Get", mock.Anything, "c1").Return(&models.Comment{ID: "c1", PlayerID: 1}, nil)
	f.commentRepo.On("Delete", mock.Anything, "c1").Return(nil)

	require.NoError(t, f.service.DeleteComment(context.Background(), 1, "c1"))
	f.commentRepo.AssertExpectations(t)
}
