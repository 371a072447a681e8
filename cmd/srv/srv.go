package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/moemoe-lab/forum/config"
	"github.com/moemoe-lab/forum/internal/domain"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/kafka"
	"github.com/moemoe-lab/forum/pkg/logger"
	"github.com/moemoe-lab/forum/pkg/pubsub"
	"github.com/moemoe-lab/forum/pkg/router"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"github.com/moemoe-lab/forum/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context

	userRepo    repository.UserRepository
	topicRepo   repository.TopicRepository
	replyRepo   repository.ReplyRepository
	messageRepo repository.MessageRepository

	authDomain    domain.AuthDomain
	userDomain    domain.UserDomain
	topicDomain   domain.TopicDomain
	replyDomain   domain.ReplyDomain
	messageDomain domain.MessageDomain

	redisClient xredis.Client
	publisher   pubsub.Publisher
	subscriber  pubsub.Subscriber

	router *router.Router

	// stoppers run in order when the command exits.
	stoppers []func(context.Context) error
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(cctx.Context, cfg)
	s.loadLogger()
	return nil
}

func (s *srv) loadLogger() {
	cfg := xcontext.Configs(s.ctx)
	level := logger.ParseLevel(cfg.Log.Level)

	var l logger.Logger
	if cfg.Env == "local" {
		l = logger.NewLogger(level)
	} else {
		l = logger.NewProductionLogger(level)
	}

	s.ctx = xcontext.WithLogger(s.ctx, l)
}

func (s *srv) loadDatabase() error {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                      cfg.ConnectionString(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
		DontSupportRenameIndex:   true,
		DontSupportRenameColumn:  true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("cannot connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.ctx = xcontext.WithDB(s.ctx, db)
	xcontext.Logger(s.ctx).Infof("Connected to database %s:%s/%s", cfg.Host, cfg.Port, cfg.Database)
	return nil
}

func (s *srv) loadSnowFlake() error {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
	return nil
}

func (s *srv) loadRedis() error {
	cfg := xcontext.Configs(s.ctx).Redis
	client, err := xredis.NewClient(s.ctx, cfg.Addr)
	if err != nil {
		return fmt.Errorf("cannot connect to redis: %w", err)
	}

	s.redisClient = client
	s.stoppers = append(s.stoppers, func(context.Context) error { return client.Close() })
	return nil
}

func (s *srv) loadPublisher() error {
	brokers := xcontext.Configs(s.ctx).Kafka.Brokers()
	if len(brokers) == 0 {
		xcontext.Logger(s.ctx).Warnf("No kafka broker configured, reaction events are not published")
		return nil
	}

	publisher, err := kafka.NewPublisher("forum-api", brokers)
	if err != nil {
		return fmt.Errorf("cannot create kafka publisher: %w", err)
	}

	s.publisher = publisher
	s.stoppers = append(s.stoppers, publisher.Stop)
	return nil
}

func (s *srv) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, stop := range s.stoppers {
		if err := stop(ctx); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot stop service: %v", err)
		}
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.topicRepo = repository.NewTopicRepository()
	s.replyRepo = repository.NewReplyRepository()
	s.messageRepo = repository.NewMessageRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.ctx, s.userRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.redisClient)
	s.topicDomain = domain.NewTopicDomain(s.topicRepo, s.userRepo, s.redisClient, s.publisher)
	s.replyDomain = domain.NewReplyDomain(s.replyRepo, s.topicRepo, s.userRepo, s.redisClient, s.publisher)
	s.messageDomain = domain.NewMessageDomain(s.messageRepo, s.userRepo)
}
