package jwt_test

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/moemoe-lab/forum/pkg/jwt"
	"github.com/stretchr/testify/require"
)

type info struct {
	UID  int64  `json:"uid"`
	Name string `json:"name"`
}

func TestJWT(t *testing.T) {
	engine := jwt.NewEngine[info]("secret", time.Minute)
	token, err := engine.Generate("7", info{UID: 7, Name: "author7"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, info{UID: 7, Name: "author7"}, obj)
}

func TestJWTExpiration(t *testing.T) {
	engine := jwt.NewEngine[info]("secret", -time.Minute)
	token, err := engine.Generate("7", info{UID: 7})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
	require.True(t, errors.Is(err, gojwt.ErrTokenExpired))
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := jwt.NewEngine[info]("secret", time.Minute).Generate("7", info{UID: 7})
	require.NoError(t, err)

	_, err = jwt.NewEngine[info]("not secret", time.Minute).Verify(token)
	require.Error(t, err)
}

func TestJWTDiffType(t *testing.T) {
	token, err := jwt.NewEngine[string]("secret", time.Minute).Generate("", "abc")
	require.NoError(t, err)

	_, err = jwt.NewEngine[info]("secret", time.Minute).Verify(token)
	require.Error(t, err)
}
