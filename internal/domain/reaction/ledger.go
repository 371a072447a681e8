// Package reaction keeps the reactor sets of reactable entities consistent
// with the reaction counters of their authors.
package reaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var (
	ErrEntityNotFound     = errors.New("reactable entity not found")
	ErrDuplicateReaction  = errors.New("duplicate reaction")
	ErrTransactionAborted = errors.New("reaction transaction aborted")
)

type Effect int

const (
	NoEffect Effect = iota
	Added
	Removed
)

func (e Effect) String() string {
	switch e {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "no_effect"
	}
}

// Request asks to add (Push) or remove the reaction of ActorUID on EntityID,
// which is authored by TargetUID.
type Request struct {
	ActorUID  int64
	TargetUID int64
	EntityID  int64
	Push      bool
}

type Result struct {
	Effect Effect
}

// EntityStore is satisfied by the topic and reply repositories.
type EntityStore interface {
	GetReactions(ctx context.Context, id int64) (*entity.Reactions, error)
	UpdateReactors(ctx context.Context, id int64, kind entity.ReactionKind, reactors []int64, version int64) error
}

// CounterStore is satisfied by the user repository.
type CounterStore interface {
	IncreaseReactionCount(ctx context.Context, id int64, kind entity.ReactionKind, delta int64) error
}

// Ledger applies reactions of one kind on one kind of entity.
type Ledger struct {
	kind     entity.ReactionKind
	entities EntityStore
	counters CounterStore
}

func NewLedger(kind entity.ReactionKind, entities EntityStore, counters CounterStore) *Ledger {
	return &Ledger{kind: kind, entities: entities, counters: counters}
}

func (l *Ledger) Kind() entity.ReactionKind {
	return l.kind
}

// Apply changes the reactor set of the entity and the counter of its author in
// one transaction. A self reaction and the removal of an absent reaction
// succeed with NoEffect. Failures other than ErrEntityNotFound and
// ErrDuplicateReaction are reported as ErrTransactionAborted; nothing is
// written in any failure case, so the request can be retried as is.
func (l *Ledger) Apply(ctx context.Context, req Request) (Result, error) {
	if req.ActorUID == req.TargetUID {
		return Result{Effect: NoEffect}, nil
	}

	result := Result{Effect: NoEffect}
	err := xcontext.WithTransaction(ctx, func(ctx context.Context) error {
		reactions, err := l.entities.GetReactions(ctx, req.EntityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntityNotFound
			}

			return err
		}

		reactors := reactions.Reactors(l.kind)
		index := slices.Index(reactors, req.ActorUID)

		var newReactors []int64
		var delta int64
		switch {
		case req.Push && index >= 0:
			return ErrDuplicateReaction
		case req.Push:
			newReactors = append(slices.Clone(reactors), req.ActorUID)
			delta = 1
		case index < 0:
			return nil
		default:
			newReactors = slices.Delete(slices.Clone(reactors), index, index+1)
			delta = -1
		}

		err = l.entities.UpdateReactors(ctx, req.EntityID, l.kind, newReactors, reactions.Version)
		if err != nil {
			return err
		}

		if err := l.counters.IncreaseReactionCount(ctx, req.TargetUID, l.kind, delta); err != nil {
			return err
		}

		if req.Push {
			result.Effect = Added
		} else {
			result.Effect = Removed
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrEntityNotFound) || errors.Is(err, ErrDuplicateReaction) {
			return Result{Effect: NoEffect}, err
		}

		return Result{Effect: NoEffect}, fmt.Errorf("%w: %w", ErrTransactionAborted, err)
	}

	return result, nil
}
