package main

import (
	"context"
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/pkg/kafka"
	"github.com/moemoe-lab/forum/pkg/pubsub"
	"github.com/moemoe-lab/forum/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startSubscriber(*cli.Context) error {
	cfg := xcontext.Configs(s.ctx).Kafka
	brokers := cfg.Brokers()
	if len(brokers) == 0 {
		return errors.New("no kafka broker configured")
	}

	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadSnowFlake(); err != nil {
		return err
	}

	s.loadRepos()
	s.loadDomains()

	subscriber, err := kafka.NewSubscriber(cfg.GroupID, brokers, []string{model.ReactionTopic}, s.handleEvent)
	if err != nil {
		return err
	}
	s.subscriber = subscriber
	s.stoppers = append(s.stoppers, s.subscriber.Stop)
	defer s.stop()

	ctx, cancel := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := s.subscriber.Subscribe(ctx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Subscribed to %s as group %s", model.ReactionTopic, cfg.GroupID)
	<-ctx.Done()
	xcontext.Logger(s.ctx).Infof("Subscriber stopped")
	return nil
}

func (s *srv) handleEvent(ctx context.Context, topic string, pack *pubsub.Pack, t time.Time) {
	if topic != model.ReactionTopic {
		xcontext.Logger(ctx).Warnf("Unexpected topic %s", topic)
		return
	}

	var event model.ReactionEvent
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal reaction event: %v", err)
		return
	}

	if err := s.messageDomain.Notify(ctx, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot notify user %d of %s at %s: %v",
			event.TargetUID, event.Kind, t.Format(time.RFC3339), err)
	}
}
