package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/moemoe-lab/forum/internal/common"
	"github.com/moemoe-lab/forum/internal/middleware"
	"github.com/moemoe-lab/forum/pkg/router"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadSnowFlake(); err != nil {
		return err
	}

	if err := s.loadRedis(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}
	defer s.stop()

	if err := common.RegisterPromCollectors(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	httpSrv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		xcontext.Logger(s.ctx).Infof("Starting server on %s", cfg.Address())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithRequestID())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle("GET /metrics", promhttp.Handler())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSetAccessToken())
	{
		router.POST(authRouter, "/register", s.authDomain.Register)
		router.POST(authRouter, "/login", s.authDomain.Login)
	}

	// These following APIs are public.
	publicRouter := s.router.Branch()
	{
		router.GET(publicRouter, "/getUser", s.userDomain.Get)
		router.GET(publicRouter, "/getTopic", s.topicDomain.Get)
		router.GET(publicRouter, "/getListTopic", s.topicDomain.GetList)
		router.GET(publicRouter, "/getListReply", s.replyDomain.GetList)
	}

	// These following APIs need authentication with the access token.
	onlyTokenAuthRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier(s.ctx)
	onlyTokenAuthRouter.Before(authVerifier.Middleware())
	{
		// Topic API
		router.POST(onlyTokenAuthRouter, "/createTopic", s.topicDomain.Create)
		router.PUT(onlyTokenAuthRouter, "/topic/like", s.topicDomain.Like)
		router.PUT(onlyTokenAuthRouter, "/topic/dislike", s.topicDomain.Dislike)

		// Reply API
		router.POST(onlyTokenAuthRouter, "/createReply", s.replyDomain.Create)
		router.PUT(onlyTokenAuthRouter, "/topic/reply/like", s.replyDomain.Like)
		router.PUT(onlyTokenAuthRouter, "/topic/reply/dislike", s.replyDomain.Dislike)

		// Message API
		router.POST(onlyTokenAuthRouter, "/sendMessage", s.messageDomain.Send)
		router.GET(onlyTokenAuthRouter, "/getListMessage", s.messageDomain.GetList)
		router.PUT(onlyTokenAuthRouter, "/message/read", s.messageDomain.MarkRead)
	}
}
