package domain

import (
	"testing"

	"github.com/moemoe-lab/forum/internal/common"
	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_userDomain_Get(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	redisClient := testutil.NewMemoryRedisClient()
	userRepo := repository.NewUserRepository()
	domain := NewUserDomain(userRepo, redisClient)

	resp, err := domain.Get(ctx, &model.GetUserRequest{UserID: testutil.Author7.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Author7.Name, resp.Name)
	require.Equal(t, int64(0), resp.Dislike)

	exists, err := redisClient.Exist(ctx, common.RedisKeyUser(testutil.Author7.ID))
	require.NoError(t, err)
	require.True(t, exists)

	// Served from cache until invalidated.
	require.NoError(t, userRepo.IncreaseReactionCount(ctx, testutil.Author7.ID, entity.ReactionDislike, 1))
	resp, err = domain.Get(ctx, &model.GetUserRequest{UserID: testutil.Author7.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.Dislike)

	require.NoError(t, redisClient.Del(ctx, common.RedisKeyUser(testutil.Author7.ID)))
	resp, err = domain.Get(ctx, &model.GetUserRequest{UserID: testutil.Author7.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Dislike)
}

func Test_userDomain_Get_Self(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockRedisClient{})

	resp, err := domain.Get(ctx, &model.GetUserRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.ID)
}

func Test_userDomain_Get_NotFound(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockRedisClient{})

	_, err := domain.Get(ctx, &model.GetUserRequest{UserID: 999})
	requireErrorCode(t, err, errorx.NotFound)

	_, err = domain.Get(ctx, &model.GetUserRequest{})
	requireErrorCode(t, err, errorx.BadRequest)
}
