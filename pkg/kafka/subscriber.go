package kafka

import (
	"context"
	"errors"

	"github.com/Shopify/sarama"
	"github.com/moemoe-lab/forum/pkg/pubsub"
	"github.com/moemoe-lab/forum/pkg/xcontext"
)

type subscriber struct {
	groupID string
	topics  []string
	client  sarama.ConsumerGroup
	handler pubsub.SubscribeHandler
}

func NewSubscriber(
	groupID string,
	brokerAddrs []string,
	topics []string,
	handler pubsub.SubscribeHandler,
) (*subscriber, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	client, err := sarama.NewConsumerGroup(brokerAddrs, groupID, config)
	if err != nil {
		return nil, err
	}

	return &subscriber{
		groupID: groupID,
		topics:  topics,
		client:  client,
		handler: handler,
	}, nil
}

func (s *subscriber) Stop(ctx context.Context) error {
	return s.client.Close()
}

func (s *subscriber) Subscribe(ctx context.Context) error {
	consumer := &consumerGroupHandler{ctx: ctx, ready: make(chan struct{}), fn: s.handler}
	errCh := make(chan error, 1)

	go func() {
		for {
			// Consume returns on every rebalance, the session must be recreated.
			err := s.client.Consume(ctx, s.topics, consumer)
			if err != nil && !errors.Is(err, sarama.ErrClosedConsumerGroup) {
				xcontext.Logger(ctx).Errorf("Error from consumer group %s: %v", s.groupID, err)
				select {
				case errCh <- err:
				default:
				}
				return
			}

			if ctx.Err() != nil || err != nil {
				return
			}

			consumer.ready = make(chan struct{})
		}
	}()

	select {
	case <-consumer.ready:
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type consumerGroupHandler struct {
	ctx   context.Context
	ready chan struct{}
	fn    pubsub.SubscribeHandler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(
	session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim,
) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			h.fn(h.ctx, message.Topic, &pubsub.Pack{Key: message.Key, Msg: message.Value}, message.Timestamp)
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
