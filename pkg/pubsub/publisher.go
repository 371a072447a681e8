package pubsub

import (
	"context"
	"time"
)

// Pack is one message on a topic. Key decides the partition.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
}

type SubscribeHandler func(ctx context.Context, topic string, pack *Pack, t time.Time)

type Subscriber interface {
	// Subscribe blocks until the subscriber joins its group, then keeps
	// consuming in the background until ctx is done.
	Subscribe(ctx context.Context) error
	Stop(ctx context.Context) error
}
