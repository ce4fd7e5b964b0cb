package events

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
	events map[uuid.UUID]*Event
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{events: make(map[uuid.UUID]*Event)}
}

func (f *fakeRepository) Create(_ context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeRepository) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	for column, value := range updates {
		switch column {
		case "title":
			event.Title = value.(string)
		case "address":
			event.Address = value.(string)
		case "starts_at":
			t := value.(time.Time)
			event.StartsAt = &t
		case "ends_at":
			t := value.(time.Time)
			event.EndsAt = &t
		case "capacity":
			event.Capacity = value.(int)
		case "status":
			event.Status = Status(value.(string))
		}
	}

	copied := *event
	return &copied, nil
}

func (f *fakeRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.events, id)
	return nil
}

func (f *fakeRepository) GetAll(_ context.Context, _ EventListQuery) ([]Event, int64, error) {
	var all []Event
	for _, event := range f.events {
		all = append(all, *event)
	}
	return all, int64(len(all)), nil
}

func (f *fakeRepository) GetByOrganizer(_ context.Context, organizerID uuid.UUID, _ EventListQuery) ([]Event, int64, error) {
	var mine []Event
	for _, event := range f.events {
		if event.OrganizerID == organizerID {
			mine = append(mine, *event)
		}
	}
	return mine, int64(len(mine)), nil
}

func (f *fakeRepository) GetByAddress(_ context.Context, address string) ([]Event, error) {
	var matches []Event
	for _, event := range f.events {
		if event.Address == address {
			matches = append(matches, *event)
		}
	}
	return matches, nil
}

func ts(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return &parsed
}

func createRequest(address string, startsAt, endsAt *time.Time) CreateEventRequest {
	return CreateEventRequest{
		Title:    "Concierto de Verano",
		Address:  address,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Capacity: 100,
	}
}

func TestCreateEventRejectsOverlapAtSameAddress(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	organizer := uuid.New()

	first, err := svc.CreateEvent(ctx, organizer,
		createRequest("Calle Sol 5", ts(t, "2024-06-01T18:00:00Z"), ts(t, "2024-06-01T22:00:00Z")))
	require.NoError(t, err)

	_, err = svc.CreateEvent(ctx, organizer,
		createRequest("Calle Sol 5", ts(t, "2024-06-01T20:00:00Z"), ts(t, "2024-06-02T01:00:00Z")))
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.Conflicting.ID)
	assert.Equal(t, "Calle Sol 5", conflict.Conflicting.Address)
}

func TestCreateEventSharedBoundaryConflicts(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	organizer := uuid.New()

	_, err := svc.CreateEvent(ctx, organizer,
		createRequest("Av Reforma 100", ts(t, "2024-06-01T10:00:00Z"), ts(t, "2024-06-01T12:00:00Z")))
	require.NoError(t, err)

	// Ending exactly when the next one starts still counts as a clash.
	_, err = svc.CreateEvent(ctx, organizer,
		createRequest("Av Reforma 100", ts(t, "2024-06-01T12:00:00Z"), ts(t, "2024-06-01T14:00:00Z")))

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestCreateEventAllowsDifferentAddress(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	organizer := uuid.New()

	_, err := svc.CreateEvent(ctx, organizer,
		createRequest("Calle Sol 5", ts(t, "2024-06-01T18:00:00Z"), ts(t, "2024-06-01T22:00:00Z")))
	require.NoError(t, err)

	// Address comparison is case-sensitive.
	_, err = svc.CreateEvent(ctx, organizer,
		createRequest("calle sol 5", ts(t, "2024-06-01T18:00:00Z"), ts(t, "2024-06-01T22:00:00Z")))
	require.NoError(t, err)
}

func TestCreateEventAllowsDisjointTimes(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	organizer := uuid.New()

	_, err := svc.CreateEvent(ctx, organizer,
		createRequest("Calle Sol 5", ts(t, "2024-06-01T10:00:00Z"), ts(t, "2024-06-01T12:00:00Z")))
	require.NoError(t, err)

	_, err = svc.CreateEvent(ctx, organizer,
		createRequest("Calle Sol 5", ts(t, "2024-06-01T13:00:00Z"), ts(t, "2024-06-01T15:00:00Z")))
	require.NoError(t, err)
}

func TestCreateEventRejectsInvertedSchedule(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.CreateEvent(context.Background(), uuid.New(),
		createRequest("Calle Sol 5", ts(t, "2024-06-01T22:00:00Z"), ts(t, "2024-06-01T18:00:00Z")))
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestUpdateEventExcludesItselfFromConflictCheck(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	organizer := uuid.New()

	created, err := svc.CreateEvent(ctx, organizer,
		createRequest("Calle Sol 5", ts(t, "2024-06-01T18:00:00Z"), ts(t, "2024-06-01T22:00:00Z")))
	require.NoError(t, err)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	// Extending its own window must not clash with itself.
	updated, err := svc.UpdateEvent(ctx, id, organizer, UpdateEventRequest{
		EndsAt: ts(t, "2024-06-01T23:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
}

func TestUpdateEventDetectsConflictAfterReschedule(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	organizer := uuid.New()

	_, err := svc.CreateEvent(ctx, organizer,
		createRequest("Calle Sol 5", ts(t, "2024-06-01T18:00:00Z"), ts(t, "2024-06-01T22:00:00Z")))
	require.NoError(t, err)

	other, err := svc.CreateEvent(ctx, organizer,
		createRequest("Calle Luna 9", ts(t, "2024-06-01T19:00:00Z"), ts(t, "2024-06-01T21:00:00Z")))
	require.NoError(t, err)

	otherID, err := uuid.Parse(other.ID)
	require.NoError(t, err)

	address := "Calle Sol 5"
	_, err = svc.UpdateEvent(ctx, otherID, organizer, UpdateEventRequest{Address: &address})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestCreateEventSkipsConflictCheckWithoutBounds(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	organizer := uuid.New()

	// Seed an event without an end so the comparison side is incomplete.
	require.NoError(t, repo.Create(ctx, &Event{
		Title:       "Sin fecha de cierre",
		Address:     "Calle Sol 5",
		StartsAt:    ts(t, "2024-06-01T18:00:00Z"),
		OrganizerID: organizer,
	}))

	_, err := svc.CreateEvent(ctx, organizer,
		createRequest("Calle Sol 5", ts(t, "2024-06-01T18:00:00Z"), ts(t, "2024-06-01T22:00:00Z")))
	require.NoError(t, err)
}

func TestUpdateEventRejectsNonOwner(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, uuid.New(),
		createRequest("Calle Sol 5", ts(t, "2024-06-01T18:00:00Z"), ts(t, "2024-06-01T22:00:00Z")))
	require.NoError(t, err)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	title := "Otro titulo"
	_, err = svc.UpdateEvent(ctx, id, uuid.New(), UpdateEventRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotEventOwner)
}

func TestDeleteEventRemovesIt(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	organizer := uuid.New()

	created, err := svc.CreateEvent(ctx, organizer,
		createRequest("Calle Sol 5", ts(t, "2024-06-01T18:00:00Z"), ts(t, "2024-06-01T22:00:00Z")))
	require.NoError(t, err)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, id, organizer))

	_, err = svc.GetEventByID(ctx, id)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
