package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"ticketly/internal/orders"

	"github.com/IBM/sarama"
)

// errMalformed marks payloads that can never be processed no matter how
// often the broker redelivers them.
var errMalformed = errors.New("malformed order message")

type OrderConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeoutMs     int
	HeartbeatMs          int
	RetryBackoffMs       int
	MaxProcessingTime    time.Duration
	AutoCommit           bool
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "ticketly-order-ingest",
		Topics:               []string{"order-events"},
		SessionTimeoutMs:     30000,
		HeartbeatMs:          3000,
		RetryBackoffMs:       100,
		MaxProcessingTime:    5 * time.Minute,
		AutoCommit:           true,
		OffsetOldest:         true,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

type KafkaOrderConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	orderService  orders.Service
	topics        []string
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewKafkaOrderConsumer(config *ConsumerConfig, orderService orders.Service) (OrderConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaOrderConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		orderService:  orderService,
		topics:        config.Topics,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (koc *KafkaOrderConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	log.Printf("Starting %d order ingest workers for topics: %v", numWorkers, koc.topics)

	go koc.handleErrors()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			koc.runWorker(ctx, workerID)
		}(i)
	}

	log.Printf("All %d order ingest workers started", numWorkers)
	return nil
}

func (koc *KafkaOrderConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &consumerGroupHandler{
		consumer:     koc,
		workerID:     workerID,
		orderService: koc.orderService,
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("Ingest worker %d shutting down", workerID)
			return
		default:
			err := koc.consumerGroup.Consume(ctx, koc.topics, handler)
			if err != nil {
				log.Printf("Ingest worker %d error consuming messages: %v", workerID, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (koc *KafkaOrderConsumer) handleErrors() {
	for err := range koc.consumerGroup.Errors() {
		log.Printf("Order ingest consumer group error: %v", err)
	}
}

func (koc *KafkaOrderConsumer) Stop() error {
	log.Println("Stopping order ingest consumer...")
	koc.cancel()

	err := koc.consumerGroup.Close()
	if err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	log.Println("Order ingest consumer stopped")
	return nil
}

func (koc *KafkaOrderConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-koc.ctx.Done():
		return fmt.Errorf("consumer context is cancelled")
	default:
		if koc.orderService == nil {
			return fmt.Errorf("order service not configured")
		}
		return nil
	}
}

type consumerGroupHandler struct {
	consumer     *KafkaOrderConsumer
	workerID     int
	orderService orders.Service
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Printf("Ingest worker %d: consumer group session started", h.workerID)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Printf("Ingest worker %d: consumer group session ended", h.workerID)
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			err := h.processMessage(session.Context(), message)
			if err != nil {
				log.Printf("Ingest worker %d: error processing message: %v", h.workerID, err)
			}
			if shouldMark(err) {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	log.Printf("Ingest worker %d: processing order from topic %s, partition %d, offset %d",
		h.workerID, message.Topic, message.Partition, message.Offset)

	var orderMessage OrderMessage
	if err := json.Unmarshal(message.Value, &orderMessage); err != nil {
		return fmt.Errorf("%w: unmarshal: %v", errMalformed, err)
	}

	order, err := orderMessage.ToOrder()
	if err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}

	return h.recordWithRetry(ctx, order)
}

// shouldMark reports whether the message offset can be committed.
// Malformed payloads are committed: replaying them will never succeed,
// so they must not wedge the partition. Persistence failures are not,
// so the broker redelivers and the idempotent upsert absorbs the
// replay.
func shouldMark(err error) bool {
	return err == nil || errors.Is(err, errMalformed)
}

func (h *consumerGroupHandler) recordWithRetry(ctx context.Context, order *orders.Order) error {
	maxRetries := h.consumer.config.MaxRetries
	backoff := h.consumer.config.RetryBackoffDuration

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := h.orderService.RecordOrder(ctx, order)
		if err == nil {
			if attempt > 0 {
				log.Printf("Ingest worker %d: recorded order %s after %d retries", h.workerID, order.ID, attempt)
			}
			return nil
		}

		if attempt == maxRetries {
			log.Printf("Ingest worker %d: failed to record order %s after %d attempts: %v",
				h.workerID, order.ID, maxRetries, err)
			return err
		}

		// Exponential backoff
		delay := backoff * time.Duration(1<<attempt)

		select {
		case <-time.After(delay):
			continue
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}
