package domain

import (
	"context"

	"github.com/moemoe-lab/forum/internal/common"
	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"github.com/moemoe-lab/forum/pkg/xredis"
	"golang.org/x/sync/errgroup"
)

const reconcileBatchSize = 500

var reactionKinds = []entity.ReactionKind{entity.ReactionLike, entity.ReactionDislike}

// Reconciler compares the reaction counters of users with the reactor sets of
// the entities they authored.
type Reconciler interface {
	// Run reports every drifted counter. With fix, every drifted user is
	// recounted and repaired in its own transaction holding the user row, so a
	// reaction committed during the scan is never undone.
	Run(ctx context.Context, fix bool) (*model.ReconcileReport, error)
}

type reconciler struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
	reactables  []repository.ReactableRepository
}

func NewReconciler(
	userRepo repository.UserRepository,
	redisClient xredis.Client,
	reactables ...repository.ReactableRepository,
) Reconciler {
	return &reconciler{userRepo: userRepo, redisClient: redisClient, reactables: reactables}
}

type reactionCounts map[int64]map[entity.ReactionKind]int64

func (c reactionCounts) add(userID int64, kind entity.ReactionKind, n int64) {
	if c[userID] == nil {
		c[userID] = map[entity.ReactionKind]int64{}
	}

	c[userID][kind] += n
}

func (r *reconciler) Run(ctx context.Context, fix bool) (*model.ReconcileReport, error) {
	expected, err := r.countReactions(ctx)
	if err != nil {
		return nil, err
	}

	report := &model.ReconcileReport{Drifts: []model.CounterDrift{}}
	lastID := int64(0)
	for {
		users, err := r.userRepo.GetListAfter(ctx, lastID, reconcileBatchSize)
		if err != nil {
			return nil, err
		}

		for _, user := range users {
			report.CheckedUsers++
			stored := map[entity.ReactionKind]int64{
				entity.ReactionLike:    user.LikeCount,
				entity.ReactionDislike: user.DislikeCount,
			}

			for _, kind := range reactionKinds {
				if stored[kind] != expected[user.ID][kind] {
					report.Drifts = append(report.Drifts, model.CounterDrift{
						UserID:   user.ID,
						Kind:     string(kind),
						Stored:   stored[kind],
						Expected: expected[user.ID][kind],
					})
				}
			}
		}

		if len(users) < reconcileBatchSize {
			break
		}

		lastID = users[len(users)-1].ID
	}

	for _, drift := range report.Drifts {
		xcontext.Logger(ctx).Warnf("Counter drift of user %d on %s: stored=%d expected=%d",
			drift.UserID, drift.Kind, drift.Stored, drift.Expected)
	}

	if !fix || len(report.Drifts) == 0 {
		return report, nil
	}

	driftsOfUser := map[int64][]int{}
	userIDs := []int64{}
	for i, drift := range report.Drifts {
		if _, ok := driftsOfUser[drift.UserID]; !ok {
			userIDs = append(userIDs, drift.UserID)
		}
		driftsOfUser[drift.UserID] = append(driftsOfUser[drift.UserID], i)
	}

	for _, userID := range userIDs {
		stored, recounted, err := r.fixUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		for _, i := range driftsOfUser[userID] {
			drift := &report.Drifts[i]
			kind := entity.ReactionKind(drift.Kind)
			drift.Expected = recounted[kind]
			drift.Fixed = stored[kind] != recounted[kind]
		}

		written := false
		for _, kind := range reactionKinds {
			written = written || stored[kind] != recounted[kind]
		}

		if !written {
			xcontext.Logger(ctx).Infof("Counters of user %d were settled during the scan", userID)
			continue
		}

		if err := r.redisClient.Del(ctx, common.RedisKeyUser(userID)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate user cache: %v", err)
		}
	}

	report.Fixed = true
	return report, nil
}

// fixUser recounts the reactor sets of the entities authored by the user while
// holding the user row, and overwrites the counters that differ. A reaction
// committed before the lock is counted. A later one waits on the user row and
// applies its delta on the repaired value. It returns the counters found under
// the lock and the recounted ones.
func (r *reconciler) fixUser(
	ctx context.Context, userID int64,
) (map[entity.ReactionKind]int64, map[entity.ReactionKind]int64, error) {
	var stored, recounted map[entity.ReactionKind]int64
	err := xcontext.WithTransaction(ctx, func(ctx context.Context) error {
		user, err := r.userRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		stored = map[entity.ReactionKind]int64{
			entity.ReactionLike:    user.LikeCount,
			entity.ReactionDislike: user.DislikeCount,
		}

		recounted = map[entity.ReactionKind]int64{}
		for _, repo := range r.reactables {
			records, err := repo.GetReactionsByAuthorID(ctx, userID)
			if err != nil {
				return err
			}

			for _, record := range records {
				for _, kind := range reactionKinds {
					recounted[kind] += int64(len(record.Reactors(kind)))
				}
			}
		}

		for _, kind := range reactionKinds {
			if stored[kind] == recounted[kind] {
				continue
			}

			if err := r.userRepo.UpdateReactionCount(ctx, userID, kind, recounted[kind]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return stored, recounted, nil
}

// countReactions scans every reactable table concurrently and merges the
// per-author totals.
func (r *reconciler) countReactions(ctx context.Context) (reactionCounts, error) {
	partials := make([]reactionCounts, len(r.reactables))

	g, gctx := errgroup.WithContext(ctx)
	for i, repo := range r.reactables {
		i, repo := i, repo
		partials[i] = reactionCounts{}
		g.Go(func() error {
			return repo.ForEachReactions(gctx, reconcileBatchSize, func(record repository.AuthorReactions) error {
				for _, kind := range reactionKinds {
					partials[i].add(record.AuthorID, kind, int64(len(record.Reactors(kind))))
				}

				return nil
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := reactionCounts{}
	for _, partial := range partials {
		for userID, counts := range partial {
			for kind, n := range counts {
				total.add(userID, kind, n)
			}
		}
	}

	return total, nil
}
