package ingest

import (
	"testing"
	"time"

	"ticketly/internal/orders"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMessage() OrderMessage {
	return OrderMessage{
		ID:            uuid.NewString(),
		UserID:        uuid.NewString(),
		UserName:      "Ana Torres",
		EventID:       uuid.NewString(),
		TicketTypeID:  uuid.NewString(),
		TicketType:    "VIP",
		Quantity:      2,
		TotalPrice:    300,
		PaymentStatus: "paid",
		OrderedAt:     time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC),
	}
}

func TestToOrder(t *testing.T) {
	message := validMessage()

	order, err := message.ToOrder()
	require.NoError(t, err)

	assert.Equal(t, message.ID, order.ID.String())
	assert.Equal(t, message.UserID, order.UserID.String())
	assert.Equal(t, "Ana Torres", order.UserName)
	require.NotNil(t, order.TicketTypeID)
	assert.Equal(t, message.TicketTypeID, order.TicketTypeID.String())
	assert.Equal(t, orders.PaymentPaid, order.PaymentStatus)
	assert.Equal(t, message.OrderedAt, order.OrderedAt)
}

func TestToOrderAllowsMissingTicketType(t *testing.T) {
	message := validMessage()
	message.TicketTypeID = ""
	message.TicketType = ""

	order, err := message.ToOrder()
	require.NoError(t, err)
	assert.Nil(t, order.TicketTypeID)
	assert.Empty(t, order.TicketType)
}

func TestToOrderRejectsBadIDs(t *testing.T) {
	message := validMessage()
	message.ID = "not-a-uuid"
	_, err := message.ToOrder()
	assert.Error(t, err)

	message = validMessage()
	message.EventID = "nope"
	_, err = message.ToOrder()
	assert.Error(t, err)
}

func TestToOrderRejectsInvalidQuantityAndStatus(t *testing.T) {
	message := validMessage()
	message.Quantity = 0
	_, err := message.ToOrder()
	assert.Error(t, err)

	message = validMessage()
	message.PaymentStatus = "completed"
	_, err = message.ToOrder()
	assert.Error(t, err)
}

func TestToOrderDefaultsOrderedAt(t *testing.T) {
	message := validMessage()
	message.OrderedAt = time.Time{}

	order, err := message.ToOrder()
	require.NoError(t, err)
	assert.False(t, order.OrderedAt.IsZero())
}
