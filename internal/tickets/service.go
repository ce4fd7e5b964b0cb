package tickets

import (
	"context"
	"errors"

	"ticketly/internal/events"
	"ticketly/internal/shared/constants"
	"ticketly/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrDuplicateName      = errors.New("ticket type name already exists for this event")
	ErrEventNotFound      = errors.New("event not found")
	ErrNotEventOwner      = errors.New("event does not belong to this organizer")
	ErrQuotaBelowSold     = errors.New("quota cannot be lower than tickets already sold")
)

// EventSource provides the events needed for ownership checks.
type EventSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateTicketType(ctx context.Context, eventID uuid.UUID, actorID uuid.UUID, isAdmin bool, req CreateTicketTypeRequest) (*TicketTypeResponse, error)
	GetTicketTypesByEvent(ctx context.Context, eventID uuid.UUID) ([]TicketTypeResponse, error)
	UpdateTicketType(ctx context.Context, id uuid.UUID, actorID uuid.UUID, isAdmin bool, req UpdateTicketTypeRequest) (*TicketTypeResponse, error)
	DeleteTicketType(ctx context.Context, id uuid.UUID, actorID uuid.UUID, isAdmin bool) error
}

type service struct {
	repo         Repository
	eventSource  EventSource
	cacheService cache.Service
}

func NewService(repo Repository, eventSource EventSource) Service {
	return &service{
		repo:        repo,
		eventSource: eventSource,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateTicketType(ctx context.Context, eventID uuid.UUID, actorID uuid.UUID, isAdmin bool, req CreateTicketTypeRequest) (*TicketTypeResponse, error) {
	if err := s.authorizeEvent(ctx, eventID, actorID, isAdmin); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, eventID, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	ticketType := &TicketType{
		EventID: eventID,
		Name:    req.Name,
		Price:   req.Price,
		Quota:   req.Quota,
	}

	if err := s.repo.Create(ctx, ticketType); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	response := ticketType.ToResponse()
	return &response, nil
}

func (s *service) GetTicketTypesByEvent(ctx context.Context, eventID uuid.UUID) ([]TicketTypeResponse, error) {
	if _, err := s.eventSource.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	ticketTypes, err := s.repo.GetByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	responses := make([]TicketTypeResponse, len(ticketTypes))
	for i := range ticketTypes {
		responses[i] = ticketTypes[i].ToResponse()
	}
	return responses, nil
}

func (s *service) UpdateTicketType(ctx context.Context, id uuid.UUID, actorID uuid.UUID, isAdmin bool, req UpdateTicketTypeRequest) (*TicketTypeResponse, error) {
	ticketType, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketTypeNotFound
		}
		return nil, err
	}

	if err := s.authorizeEvent(ctx, ticketType.EventID, actorID, isAdmin); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		exists, err := s.repo.NameExists(ctx, ticketType.EventID, *req.Name, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateName
		}
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Quota != nil {
		if *req.Quota < ticketType.Sold {
			return nil, ErrQuotaBelowSold
		}
		updates["quota"] = *req.Quota
	}

	if len(updates) == 0 {
		response := ticketType.ToResponse()
		return &response, nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteTicketType(ctx context.Context, id uuid.UUID, actorID uuid.UUID, isAdmin bool) error {
	ticketType, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketTypeNotFound
		}
		return err
	}

	if err := s.authorizeEvent(ctx, ticketType.EventID, actorID, isAdmin); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) authorizeEvent(ctx context.Context, eventID uuid.UUID, actorID uuid.UUID, isAdmin bool) error {
	event, err := s.eventSource.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if !isAdmin && event.OrganizerID != actorID {
		return ErrNotEventOwner
	}
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}

	// Ticket types ride along in event detail payloads and feed analytics.
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENT_ALL)
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ANALYTICS)
}
