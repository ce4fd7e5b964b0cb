package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ticketly/internal/orders"
	"ticketly/pkg/cache"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderService struct {
	recordErr error
	recorded  []*orders.Order
}

func (s *stubOrderService) SetCacheService(cache.Service) {}

func (s *stubOrderService) GetAllOrders(context.Context, orders.OrderListQuery) (*orders.PaginatedOrders, error) {
	return nil, nil
}

func (s *stubOrderService) GetOrganizerOrders(context.Context, uuid.UUID, orders.OrderListQuery) (*orders.PaginatedOrders, error) {
	return nil, nil
}

func (s *stubOrderService) GetOrderByID(context.Context, uuid.UUID, uuid.UUID, bool) (*orders.OrderResponse, error) {
	return nil, nil
}

func (s *stubOrderService) RecordOrder(_ context.Context, order *orders.Order) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.recorded = append(s.recorded, order)
	return nil
}

func newTestHandler(svc orders.Service) *consumerGroupHandler {
	config := DefaultConsumerConfig()
	config.MaxRetries = 0
	config.RetryBackoffDuration = time.Millisecond

	return &consumerGroupHandler{
		consumer:     &KafkaOrderConsumer{config: config},
		workerID:     0,
		orderService: svc,
	}
}

func TestProcessMessageRecordsValidOrder(t *testing.T) {
	svc := &stubOrderService{}
	handler := newTestHandler(svc)

	message := validMessage()
	payload, err := json.Marshal(message)
	require.NoError(t, err)

	err = handler.processMessage(context.Background(), &sarama.ConsumerMessage{Value: payload})
	require.NoError(t, err)
	require.Len(t, svc.recorded, 1)
	assert.Equal(t, message.ID, svc.recorded[0].ID.String())
	assert.True(t, shouldMark(err))
}

func TestProcessMessageFlagsMalformedPayloads(t *testing.T) {
	svc := &stubOrderService{}
	handler := newTestHandler(svc)

	err := handler.processMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("{not json")})
	require.Error(t, err)
	assert.ErrorIs(t, err, errMalformed)
	assert.True(t, shouldMark(err))

	invalid := validMessage()
	invalid.Quantity = 0
	payload, marshalErr := json.Marshal(invalid)
	require.NoError(t, marshalErr)

	err = handler.processMessage(context.Background(), &sarama.ConsumerMessage{Value: payload})
	require.Error(t, err)
	assert.ErrorIs(t, err, errMalformed)
	assert.True(t, shouldMark(err))
	assert.Empty(t, svc.recorded)
}

func TestProcessMessageKeepsPersistenceFailuresForRedelivery(t *testing.T) {
	svc := &stubOrderService{recordErr: errors.New("connection refused")}
	handler := newTestHandler(svc)

	payload, err := json.Marshal(validMessage())
	require.NoError(t, err)

	err = handler.processMessage(context.Background(), &sarama.ConsumerMessage{Value: payload})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errMalformed)
	assert.False(t, shouldMark(err), "offset must not be committed while the order is unrecorded")
}
