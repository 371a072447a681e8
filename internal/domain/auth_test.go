package domain

import (
	"testing"

	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/jwt"
	"github.com/moemoe-lab/forum/pkg/testutil"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_authDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(ctx, repository.NewUserRepository())

	resp, err := domain.Register(ctx, &model.RegisterRequest{Name: " alice ", Password: "123456"})
	require.NoError(t, err)

	user := testutil.GetUser(ctx, resp.ID)
	require.Equal(t, "alice", user.Name)
	require.NotEqual(t, "123456", user.Password)
	require.Equal(t, int64(0), user.LikeCount)
}

func Test_authDomain_Register_Invalid(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(ctx, repository.NewUserRepository())

	testCases := []struct {
		name string
		req  *model.RegisterRequest
		code errorx.Code
	}{
		{
			name: "empty name",
			req:  &model.RegisterRequest{Name: "  ", Password: "123456"},
			code: errorx.BadRequest,
		},
		{
			name: "short password",
			req:  &model.RegisterRequest{Name: "bob", Password: "123"},
			code: errorx.BadRequest,
		},
		{
			name: "duplicated name",
			req:  &model.RegisterRequest{Name: testutil.User1.Name, Password: "123456"},
			code: errorx.AlreadyExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.Register(ctx, tc.req)
			requireErrorCode(t, err, tc.code)
		})
	}
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(ctx, repository.NewUserRepository())

	registered, err := domain.Register(ctx, &model.RegisterRequest{Name: "alice", Password: "123456"})
	require.NoError(t, err)

	resp, err := domain.Login(ctx, &model.LoginRequest{Name: "alice", Password: "123456"})
	require.NoError(t, err)
	require.Equal(t, registered.ID, resp.ID)

	cfg := xcontext.Configs(ctx).Auth
	token, err := jwt.NewEngine[model.AccessToken](cfg.TokenSecret, cfg.AccessToken.Expiration).
		Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, model.AccessToken{UID: registered.ID, Name: "alice"}, token)

	_, err = domain.Login(ctx, &model.LoginRequest{Name: "alice", Password: "wrong-password"})
	requireErrorCode(t, err, errorx.Unauthenticated)

	_, err = domain.Login(ctx, &model.LoginRequest{Name: "nobody", Password: "123456"})
	requireErrorCode(t, err, errorx.Unauthenticated)
}
