package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	orders     map[uuid.UUID]*Order
	organizers map[uuid.UUID]uuid.UUID // event ID -> organizer ID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		orders:     make(map[uuid.UUID]*Order),
		organizers: make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *fakeRepository) Create(_ context.Context, order *Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeRepository) Upsert(_ context.Context, order *Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *fakeRepository) GetByIDForOrganizer(_ context.Context, id uuid.UUID, organizerID uuid.UUID) (*Order, error) {
	order, ok := r.orders[id]
	if !ok || r.organizers[order.EventID] != organizerID {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *fakeRepository) GetAll(_ context.Context, _ OrderListQuery) ([]Order, int64, error) {
	result := make([]Order, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, *order)
	}
	return result, int64(len(result)), nil
}

func (r *fakeRepository) GetByOrganizer(_ context.Context, organizerID uuid.UUID, _ OrderListQuery) ([]Order, int64, error) {
	var result []Order
	for _, order := range r.orders {
		if r.organizers[order.EventID] == organizerID {
			result = append(result, *order)
		}
	}
	return result, int64(len(result)), nil
}

func seedOrder(repo *fakeRepository, organizerID uuid.UUID) *Order {
	eventID := uuid.New()
	repo.organizers[eventID] = organizerID

	order := &Order{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		UserName:      "Ana Torres",
		EventID:       eventID,
		TicketType:    "General",
		Quantity:      2,
		TotalPrice:    500,
		PaymentStatus: PaymentPaid,
		OrderedAt:     time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC),
	}
	repo.orders[order.ID] = order
	return order
}

func TestGetOrderByIDScopesOrganizersToTheirEvents(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	owner := uuid.New()
	other := uuid.New()
	order := seedOrder(repo, owner)

	// The owning organizer sees the order.
	got, err := service.GetOrderByID(context.Background(), order.ID, owner, false)
	require.NoError(t, err)
	assert.Equal(t, order.ID.String(), got.ID)

	// Another organizer gets a not-found, not someone else's order.
	_, err = service.GetOrderByID(context.Background(), order.ID, other, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderByIDAdminSeesAnyOrder(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	order := seedOrder(repo, uuid.New())
	admin := uuid.New()

	got, err := service.GetOrderByID(context.Background(), order.ID, admin, true)
	require.NoError(t, err)
	assert.Equal(t, order.ID.String(), got.ID)
}

func TestGetOrderByIDUnknownOrder(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	_, err := service.GetOrderByID(context.Background(), uuid.New(), uuid.New(), true)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRecordOrderReplayOverwritesMutableFields(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	order := seedOrder(repo, uuid.New())

	replay := *order
	replay.PaymentStatus = PaymentRefunded
	require.NoError(t, service.RecordOrder(context.Background(), &replay))

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentRefunded, stored.PaymentStatus)
}
