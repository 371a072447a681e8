package main

import (
	"github.com/moemoe-lab/forum/internal/domain"
	"github.com/moemoe-lab/forum/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startReconcile(cctx *cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadRedis(); err != nil {
		return err
	}
	defer s.stop()

	s.loadRepos()
	reconciler := domain.NewReconciler(s.userRepo, s.redisClient, s.topicRepo, s.replyRepo)

	report, err := reconciler.Run(s.ctx, cctx.Bool("fix"))
	if err != nil {
		return err
	}

	logger := xcontext.Logger(s.ctx)
	for _, drift := range report.Drifts {
		logger.Warnf("User %d has %d %s, expected %d, fixed=%t",
			drift.UserID, drift.Stored, drift.Kind, drift.Expected, drift.Fixed)
	}

	logger.Infof("Checked %d users, %d drifted counters, fixed=%t",
		report.CheckedUsers, len(report.Drifts), report.Fixed)
	return nil
}
