package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/moemoe-lab/forum/config"
	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/pkg/logger"
	"github.com/moemoe-lab/forum/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	cfg := config.Default()
	cfg.Env = "test"
	cfg.ApiServer.MaxLimit = 50
	cfg.ApiServer.DefaultLimit = 10
	cfg.Auth.TokenSecret = "secret"
	cfg.Auth.AccessToken = config.TokenConfigs{Name: "access_token", Expiration: time.Minute}
	cfg.Reaction = config.ReactionConfigs{
		CommitTimeout: 2 * time.Second,
		MaxRetries:    2,
		RetryBackoff:  time.Millisecond,
	}
	return cfg
}

// MockContext returns a context carrying a fresh in-memory database. The pool
// is limited to one connection: every connection to ":memory:" would open its
// own empty database, and concurrent transactions queue on it.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, MockConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(uid int64) context.Context {
	return xcontext.WithRequestUserID(MockContext(), uid)
}
