package entity

import (
	"context"

	"github.com/moemoe-lab/forum/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Topic{},
		&Reply{},
		&Message{},
	)
}
