package domain

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/jwt"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxUserNameLength = 32
	minPasswordLength = 6
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
}

type authDomain struct {
	userRepo          repository.UserRepository
	accessTokenEngine *jwt.Engine[model.AccessToken]
}

func NewAuthDomain(ctx context.Context, userRepo repository.UserRepository) AuthDomain {
	cfg := xcontext.Configs(ctx).Auth
	return &authDomain{
		userRepo:          userRepo,
		accessTokenEngine: jwt.NewEngine[model.AccessToken](cfg.TokenSecret, cfg.AccessToken.Expiration),
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > maxUserNameLength {
		return nil, errorx.New(errorx.BadRequest, "Name must be 1 to %d characters", maxUserNameLength)
	}

	if len(req.Password) < minPasswordLength {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least %d characters", minPasswordLength)
	}

	_, err := d.userRepo.GetByName(ctx, name)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "The name is already taken")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		Name:          name,
		Password:      string(hashed),
	}
	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{ID: user.ID}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByName(ctx, strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid name or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid name or password")
	}

	token, err := d.accessTokenEngine.Generate(
		strconv.FormatInt(user.ID, 10),
		model.AccessToken{UID: user.ID, Name: user.Name},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{ID: user.ID, AccessToken: token}, nil
}
