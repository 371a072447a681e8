package repository

import (
	"context"
	"errors"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactableRepository exposes the reactor sets of one kind of reactable
// entity (topics or replies).
type ReactableRepository interface {
	// GetReactions reads the reactor sets and the version of the entity. Inside
	// a transaction the row stays locked until commit on stores supporting
	// row-level locking.
	GetReactions(ctx context.Context, id int64) (*entity.Reactions, error)

	// UpdateReactors writes the reactor set of kind if the entity is still at
	// version, and bumps the version.
	UpdateReactors(ctx context.Context, id int64, kind entity.ReactionKind, reactors []int64, version int64) error

	// ForEachReactions visits every entity in id order, batchSize rows at a time.
	ForEachReactions(ctx context.Context, batchSize int, fn func(AuthorReactions) error) error

	// GetReactionsByAuthorID reads the reactor sets of every entity authored
	// by authorID.
	GetReactionsByAuthorID(ctx context.Context, authorID int64) ([]AuthorReactions, error)
}

type AuthorReactions struct {
	ID       int64
	AuthorID int64
	entity.Reactions
}

type reactableRepository[T any] struct{}

func (r *reactableRepository[T]) GetReactions(ctx context.Context, id int64) (*entity.Reactions, error) {
	var result entity.Reactions
	err := xcontext.DB(ctx).
		Model(new(T)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("likes", "dislikes", "version").
		Where("id=?", id).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *reactableRepository[T]) UpdateReactors(
	ctx context.Context, id int64, kind entity.ReactionKind, reactors []int64, version int64,
) error {
	column := kind.SetColumn()
	if column == "" {
		return errors.New("invalid reaction kind")
	}

	tx := xcontext.DB(ctx).
		Model(new(T)).
		Where("id=? AND version=?", id, version).
		Updates(map[string]any{
			column:    entity.Array[int64](reactors),
			"version": gorm.Expr("version+1"),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}

	return nil
}

func (r *reactableRepository[T]) ForEachReactions(
	ctx context.Context, batchSize int, fn func(AuthorReactions) error,
) error {
	if batchSize <= 0 {
		batchSize = 500
	}

	lastID := int64(0)
	for {
		var batch []AuthorReactions
		err := xcontext.DB(ctx).
			Model(new(T)).
			Select("id", "author_id", "likes", "dislikes", "version").
			Where("id > ?", lastID).
			Order("id ASC").
			Limit(batchSize).
			Find(&batch).Error
		if err != nil {
			return err
		}

		for _, record := range batch {
			if err := fn(record); err != nil {
				return err
			}
		}

		if len(batch) < batchSize {
			return nil
		}

		lastID = batch[len(batch)-1].ID
	}
}

func (r *reactableRepository[T]) GetReactionsByAuthorID(
	ctx context.Context, authorID int64,
) ([]AuthorReactions, error) {
	var result []AuthorReactions
	err := xcontext.DB(ctx).
		Model(new(T)).
		Select("id", "author_id", "likes", "dislikes", "version").
		Where("author_id=?", authorID).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
