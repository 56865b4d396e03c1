package kafka

import (
	"Flicker/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	likesConsumer sarama.ConsumerGroup
	likesHandler  sarama.ConsumerGroupHandler

	commentLikesConsumer sarama.ConsumerGroup
	commentLikesHandler  sarama.ConsumerGroupHandler

	replyLikesConsumer sarama.ConsumerGroup
	replyLikesHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	likesConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaLikeConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	commentLikesConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaCommentLikeConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	replyLikesConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaReplyLikeConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		likesConsumer:        likesConsumer,
		likesHandler:         NewLikesHandler(),
		commentLikesConsumer: commentLikesConsumer,
		commentLikesHandler:  NewCommentLikesHandler(),
		replyLikesConsumer:   replyLikesConsumer,
		replyLikesHandler:    NewReplyLikesHandler(),
	}, nil
}

// Start 启动所有消费者并阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go runConsumer(ctx, m.likesConsumer, m.likesHandler, cfg.KafkaLikeConsumer.Topic, "like")
	go runConsumer(ctx, m.commentLikesConsumer, m.commentLikesHandler, cfg.KafkaCommentLikeConsumer.Topic, "comment like")
	go runConsumer(ctx, m.replyLikesConsumer, m.replyLikesHandler, cfg.KafkaReplyLikeConsumer.Topic, "reply like")

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.likesConsumer.Close(); err != nil {
		log.Error("Failed to close like consumer", "err", err)
	}
	if err := m.commentLikesConsumer.Close(); err != nil {
		log.Error("Failed to close comment like consumer", "err", err)
	}
	if err := m.replyLikesConsumer.Close(); err != nil {
		log.Error("Failed to close reply like consumer", "err", err)
	}

	return nil
}

func runConsumer(ctx context.Context, consumer sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topic, name string) {
	log.Info("consumer started", "name", name, "topic", topic)
	for {
		if err := consumer.Consume(ctx, []string{topic}, handler); err != nil {
			log.Error("Error from consumer", "name", name, "err", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}
