package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/moemoe-lab/forum/internal/common"
	"github.com/moemoe-lab/forum/internal/domain/reaction"
	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/pubsub"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"github.com/moemoe-lab/forum/pkg/xredis"
)

// reactionTarget identifies the reacted entity in events and notifications.
type reactionTarget struct {
	TopicID  int64
	ReplyID  int64
	AuthorID int64
}

// reactionApplier turns a validated reaction parameter set into ledger calls
// on one kind of entity, then runs the post-commit side effects.
type reactionApplier struct {
	target      entity.ReactableType
	ledgers     map[entity.ReactionKind]*reaction.Ledger
	redisClient xredis.Client
	publisher   pubsub.Publisher
}

func newReactionApplier(
	target entity.ReactableType,
	entities reaction.EntityStore,
	counters reaction.CounterStore,
	redisClient xredis.Client,
	publisher pubsub.Publisher,
) *reactionApplier {
	return &reactionApplier{
		target: target,
		ledgers: map[entity.ReactionKind]*reaction.Ledger{
			entity.ReactionLike:    reaction.NewLedger(entity.ReactionLike, entities, counters),
			entity.ReactionDislike: reaction.NewLedger(entity.ReactionDislike, entities, counters),
		},
		redisClient: redisClient,
		publisher:   publisher,
	}
}

// checkReactionParams validates the parameters shared by every reaction
// endpoint.
func checkReactionParams(ctx context.Context, toUID *int64, isPush *bool) error {
	if toUID == nil || isPush == nil {
		return errorx.New(errorx.BadRequest, "Missing to_uid or is_push")
	}

	if xcontext.RequestUserID(ctx) == 0 {
		return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	return nil
}

func (a *reactionApplier) apply(
	ctx context.Context,
	kind entity.ReactionKind,
	target reactionTarget,
	toUID int64,
	push bool,
) (*model.ReactResponse, error) {
	if toUID != target.AuthorID {
		return nil, errorx.New(errorx.BadRequest, "The %s is not authored by user %d", a.target, toUID)
	}

	entityID := target.TopicID
	if a.target == entity.ReactableReply {
		entityID = target.ReplyID
	}

	req := reaction.Request{
		ActorUID:  xcontext.RequestUserID(ctx),
		TargetUID: toUID,
		EntityID:  entityID,
		Push:      push,
	}

	result, err := a.applyWithRetry(ctx, a.ledgers[kind], req)
	outcome := result.Effect.String()
	defer func() {
		common.PromCounters[common.ReactionTotal].
			WithLabelValues(string(a.target), string(kind), outcome).Inc()
	}()

	if err != nil {
		switch {
		case errors.Is(err, reaction.ErrEntityNotFound):
			outcome = "not_found"
			return nil, errorx.New(errorx.NotFound, "Not found %s", a.target)
		case errors.Is(err, reaction.ErrDuplicateReaction):
			outcome = "duplicate"
			return nil, errorx.New(errorx.AlreadyExists, "You have already %sd this %s", kind, a.target)
		default:
			outcome = "aborted"
			xcontext.Logger(ctx).Errorf("Cannot apply %s on %s %d: %v", kind, a.target, entityID, err)
			return nil, errorx.New(errorx.Aborted, "The reaction could not be saved, please try again")
		}
	}

	if result.Effect != reaction.NoEffect {
		a.afterCommit(ctx, kind, target, req)
	}

	return &model.ReactResponse{Effect: outcome}, nil
}

// applyWithRetry retries aborted transactions only. Every attempt has its own
// commit deadline.
func (a *reactionApplier) applyWithRetry(
	ctx context.Context, ledger *reaction.Ledger, req reaction.Request,
) (reaction.Result, error) {
	cfg := xcontext.Configs(ctx).Reaction

	b := backoff.NewExponentialBackOff()
	if cfg.RetryBackoff > 0 {
		b.InitialInterval = cfg.RetryBackoff
	}

	return backoff.Retry(ctx, func() (reaction.Result, error) {
		attemptCtx := ctx
		if cfg.CommitTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, cfg.CommitTimeout)
			defer cancel()
		}

		result, err := ledger.Apply(attemptCtx, req)
		if err != nil && !errors.Is(err, reaction.ErrTransactionAborted) {
			return result, backoff.Permanent(err)
		}

		return result, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(cfg.MaxRetries+1))
}

// afterCommit runs the side effects of an applied reaction. They never fail the
// request.
func (a *reactionApplier) afterCommit(
	ctx context.Context, kind entity.ReactionKind, target reactionTarget, req reaction.Request,
) {
	if err := a.redisClient.Del(ctx, common.RedisKeyUser(req.TargetUID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate user cache: %v", err)
	}

	if a.publisher == nil {
		return
	}

	b, err := json.Marshal(model.ReactionEvent{
		Target:    string(a.target),
		Kind:      string(kind),
		Push:      req.Push,
		ActorUID:  req.ActorUID,
		TargetUID: req.TargetUID,
		TopicID:   target.TopicID,
		ReplyID:   target.ReplyID,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal reaction event: %v", err)
		return
	}

	err = a.publisher.Publish(ctx, model.ReactionTopic, &pubsub.Pack{
		Key: []byte(strconv.FormatInt(req.TargetUID, 10)),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish reaction event: %v", err)
	}
}
