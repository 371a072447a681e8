package domain

import (
	"context"
	"errors"

	"github.com/moemoe-lab/forum/internal/common"
	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"github.com/moemoe-lab/forum/pkg/xredis"
	"gorm.io/gorm"
)

type UserDomain interface {
	Get(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
}

type userDomain struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func NewUserDomain(userRepo repository.UserRepository, redisClient xredis.Client) UserDomain {
	return &userDomain{userRepo: userRepo, redisClient: redisClient}
}

// Get returns the profile of req.UserID, or of the requesting user when it is
// not set. Profiles are cached until the next reaction on their author.
func (d *userDomain) Get(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	userID := req.UserID
	if userID == 0 {
		userID = xcontext.RequestUserID(ctx)
	}

	if userID == 0 {
		return nil, errorx.New(errorx.BadRequest, "Missing uid")
	}

	key := common.RedisKeyUser(userID)

	var cached model.User
	err := d.redisClient.GetObj(ctx, key, &cached)
	if err == nil {
		resp := model.GetUserResponse(cached)
		return &resp, nil
	}

	if !errors.Is(err, xredis.ErrNotFound) {
		xcontext.Logger(ctx).Warnf("Cannot get user from cache: %v", err)
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	result := convertUser(user)
	ttl := xcontext.Configs(ctx).Redis.UserCacheTTL
	if err := d.redisClient.SetObj(ctx, key, result, ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache user: %v", err)
	}

	resp := model.GetUserResponse(result)
	return &resp, nil
}
