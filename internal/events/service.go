package events

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"ticketly/internal/schedule"
	"ticketly/internal/shared/constants"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrNotEventOwner   = errors.New("event does not belong to this organizer")
	ErrInvalidSchedule = errors.New("event start must not be after its end")
)

// ConflictError reports that the requested schedule overlaps an existing
// event at the same address.
type ConflictError struct {
	Conflicting EventResponse
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflicts with event %s at %s", e.Conflicting.ID, e.Conflicting.Address)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateEvent(ctx context.Context, organizerID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, organizerID uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(ctx context.Context, id uuid.UUID, organizerID uuid.UUID) error
	UpdateEventAsAdmin(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEventAsAdmin(ctx context.Context, id uuid.UUID) error
	GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	GetOrganizerEvents(ctx context.Context, organizerID uuid.UUID, query EventListQuery) (*PaginatedEvents, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateEvent(ctx context.Context, organizerID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	event := &Event{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		BannerURL:   req.BannerURL,
		VideoURL:    req.VideoURL,
		Status:      StatusDraft,
		OrganizerID: organizerID,
	}

	if err := s.validateSchedule(event); err != nil {
		return nil, err
	}

	if err := s.checkScheduleConflict(ctx, event); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.log.LogEventCreated(ctx, event.ID.String(), organizerID.String())
	s.invalidateEventCache(ctx, nil)

	response := event.ToResponse()
	return &response, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	cacheKey := constants.BuildEventDetailKey(id.String())

	var cached EventResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	response := event.ToResponse()
	s.setCache(ctx, cacheKey, response, constants.TTL_EVENT_DETAIL)

	return &response, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, organizerID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if event.OrganizerID != organizerID {
		return nil, ErrNotEventOwner
	}

	return s.applyUpdate(ctx, event, req)
}

func (s *service) UpdateEventAsAdmin(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	return s.applyUpdate(ctx, event, req)
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID, organizerID uuid.UUID) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if event.OrganizerID != organizerID {
		return ErrNotEventOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateEventCache(ctx, &id)
	return nil
}

func (s *service) DeleteEventAsAdmin(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateEventCache(ctx, &id)
	return nil
}

func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	events, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}
	return paginate(events, totalCount, query), nil
}

func (s *service) GetOrganizerEvents(ctx context.Context, organizerID uuid.UUID, query EventListQuery) (*PaginatedEvents, error) {
	events, totalCount, err := s.repo.GetByOrganizer(ctx, organizerID, query)
	if err != nil {
		return nil, err
	}
	return paginate(events, totalCount, query), nil
}

// applyUpdate applies the patch, re-validates the resulting schedule and
// persists the changes. The conflict check runs against the event as it
// would look after the update, so moving only the start time still gets
// checked against the stored address and end time.
func (s *service) applyUpdate(ctx context.Context, event *Event, req UpdateEventRequest) (*EventResponse, error) {
	updates := make(map[string]interface{})
	patched := *event

	if req.Title != nil {
		updates["title"] = *req.Title
		patched.Title = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
		patched.Description = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
		patched.Category = *req.Category
	}
	if req.Address != nil {
		updates["address"] = *req.Address
		patched.Address = *req.Address
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
		patched.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
		patched.Longitude = req.Longitude
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
		patched.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
		patched.EndsAt = req.EndsAt
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
		patched.Capacity = *req.Capacity
	}
	if req.BannerURL != nil {
		updates["banner_url"] = *req.BannerURL
		patched.BannerURL = *req.BannerURL
	}
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
		patched.VideoURL = *req.VideoURL
	}
	if req.Status != nil {
		updates["status"] = *req.Status
		patched.Status = Status(*req.Status)
	}

	if len(updates) == 0 {
		response := event.ToResponse()
		return &response, nil
	}

	if req.StartsAt != nil || req.EndsAt != nil || req.Address != nil {
		if err := s.validateSchedule(&patched); err != nil {
			return nil, err
		}
		if err := s.checkScheduleConflict(ctx, &patched); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, event.ID, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx, &event.ID)

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) validateSchedule(event *Event) error {
	if event.StartsAt != nil && event.EndsAt != nil && event.StartsAt.After(*event.EndsAt) {
		return ErrInvalidSchedule
	}
	return nil
}

// checkScheduleConflict looks for another event occupying the same
// address over an overlapping time range. Events without both bounds
// are never considered, on either side of the comparison.
func (s *service) checkScheduleConflict(ctx context.Context, event *Event) error {
	if event.StartsAt == nil || event.EndsAt == nil {
		return nil
	}

	neighbors, err := s.repo.GetByAddress(ctx, event.Address)
	if err != nil {
		return err
	}

	slots := make([]schedule.Slot, 0, len(neighbors))
	for i := range neighbors {
		slots = append(slots, neighbors[i].toSlot())
	}

	conflict := schedule.FindConflict(event.toSlot(), slots)
	if conflict == nil {
		return nil
	}

	s.log.LogScheduleConflict(ctx, conflict.ID.String(), event.Address)

	for i := range neighbors {
		if neighbors[i].ID == conflict.ID {
			return &ConflictError{Conflicting: neighbors[i].ToResponse()}
		}
	}

	// Unreachable unless the repository result changed under us.
	return &ConflictError{Conflicting: EventResponse{ID: conflict.ID.String(), Address: conflict.Address}}
}

func paginate(events []Event, totalCount int64, query EventListQuery) *PaginatedEvents {
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = events[i].ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}
}

// Cache helper methods
func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Set(ctx, key, value, ttl)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return cache.ErrCacheMiss
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) invalidateEventCache(ctx context.Context, eventID *uuid.UUID) {
	if s.cacheService == nil {
		return
	}

	patterns := []string{
		constants.PATTERN_INVALIDATE_EVENT_ALL,
		constants.PATTERN_INVALIDATE_ANALYTICS,
	}
	if eventID != nil {
		patterns = append(patterns, constants.CACHE_KEY_EVENT_DETAIL+eventID.String()+"*")
	}

	for _, pattern := range patterns {
		_ = s.cacheService.DeletePattern(ctx, pattern)
	}
}
