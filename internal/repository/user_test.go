package repository_test

import (
	"context"
	"testing"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UserTestSuite struct {
	suite.Suite

	ctx      context.Context
	userRepo repository.UserRepository
}

func TestUserSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}

func (suite *UserTestSuite) SetupTest() {
	suite.ctx = testutil.MockContext()
	testutil.InsertUsers(suite.ctx)
	suite.userRepo = repository.NewUserRepository()
}

func (suite *UserTestSuite) TestReadUser() {
	t := suite.T()

	user, err := suite.userRepo.GetByID(suite.ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Name, user.Name)

	user, err = suite.userRepo.GetByName(suite.ctx, testutil.Author7.Name)
	require.NoError(t, err)
	require.Equal(t, testutil.Author7.ID, user.ID)

	_, err = suite.userRepo.GetByID(suite.ctx, 404)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	user, err = suite.userRepo.GetByIDForUpdate(suite.ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User2.Name, user.Name)

	users, err := suite.userRepo.GetByIDs(suite.ctx, []int64{testutil.User2.ID, testutil.User3.ID})
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func (suite *UserTestSuite) TestGetListAfter() {
	t := suite.T()

	users, err := suite.userRepo.GetListAfter(suite.ctx, 0, 3)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, testutil.User1.ID, users[0].ID)

	users, err = suite.userRepo.GetListAfter(suite.ctx, users[2].ID, 3)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, testutil.Author7.ID, users[0].ID)
}

func (suite *UserTestSuite) TestIncreaseReactionCount() {
	t := suite.T()
	id := testutil.Author7.ID

	require.NoError(t, suite.userRepo.IncreaseReactionCount(suite.ctx, id, entity.ReactionLike, 1))
	require.NoError(t, suite.userRepo.IncreaseReactionCount(suite.ctx, id, entity.ReactionLike, 1))
	require.NoError(t, suite.userRepo.IncreaseReactionCount(suite.ctx, id, entity.ReactionDislike, 1))
	require.NoError(t, suite.userRepo.IncreaseReactionCount(suite.ctx, id, entity.ReactionLike, -1))

	user := testutil.GetUser(suite.ctx, id)
	require.Equal(t, int64(1), user.LikeCount)
	require.Equal(t, int64(1), user.DislikeCount)
}

func (suite *UserTestSuite) TestIncreaseReactionCount_NeverNegative() {
	t := suite.T()
	id := testutil.User1.ID

	err := suite.userRepo.IncreaseReactionCount(suite.ctx, id, entity.ReactionDislike, -1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.Equal(t, int64(0), testutil.GetUser(suite.ctx, id).DislikeCount)

	err = suite.userRepo.IncreaseReactionCount(suite.ctx, 404, entity.ReactionLike, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = suite.userRepo.IncreaseReactionCount(suite.ctx, id, entity.ReactionKind("love"), 1)
	require.Error(t, err)
}

func (suite *UserTestSuite) TestUpdateReactionCount() {
	t := suite.T()
	id := testutil.User2.ID

	require.NoError(t, suite.userRepo.UpdateReactionCount(suite.ctx, id, entity.ReactionDislike, 5))
	user := testutil.GetUser(suite.ctx, id)
	require.Equal(t, int64(5), user.DislikeCount)
	require.Equal(t, int64(0), user.LikeCount)
}
