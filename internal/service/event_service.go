package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/repository"
)

const defaultEventDuration = 60

type EventService struct {
	events EventRepository
	saved  SavedEventRepository
	social SocialRepository
	rsvps  *RSVPService
	logger *zap.Logger
}

func NewEventService(events EventRepository, saved SavedEventRepository, social SocialRepository, rsvps *RSVPService, logger *zap.Logger) *EventService {
	return &EventService{
		events: events,
		saved:  saved,
		social: social,
		rsvps:  rsvps,
		logger: logger,
	}
}

// ListEvents returns events newest first. With a viewer, events created by
// anyone the viewer blocked or was blocked by are left out.
func (s *EventService) ListEvents(ctx context.Context, viewerID, creatorID uint, query string) ([]models.Event, error) {
	filter := models.EventFilter{CreatorID: creatorID, Query: query}
	if viewerID != 0 {
		blocked, err := s.social.BlockedUserIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		filter.ExcludeCreatorIDs = blocked
	}
	return s.events.List(ctx, filter)
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, "event")
	}
	return event, nil
}

func (s *EventService) CreateEvent(ctx context.Context, creatorID uint, req models.EventRequest) (*models.Event, error) {
	event := &models.Event{
		CreatorID:       creatorID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Location:        req.Location,
		Class:           req.Class,
		DateAndTime:     req.DateAndTime,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		EventFormat:     req.EventFormat,
		VirtualRoomLink: req.VirtualRoomLink,
		StudyRoom:       req.StudyRoom,
		Tags:            req.Tags,
	}
	if event.Title == "" {
		return nil, newError(ErrValidation, "title is required")
	}
	if event.DurationMinutes == 0 {
		event.DurationMinutes = defaultEventDuration
	}
	if event.EventFormat == "" {
		event.EventFormat = models.EventFormatInPerson
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	if len(req.InvitedIDs) > 0 {
		if _, err := s.rsvps.InviteUsers(ctx, event.ID, creatorID, req.InvitedIDs); err != nil {
			s.logger.Warn("failed to send initial invites", zap.Uint("event_id", event.ID), zap.Error(err))
		} else if fresh, err := s.events.GetByID(ctx, event.ID); err == nil {
			event = fresh
		}
	}
	return event, nil
}

func (s *EventService) ownedEvent(ctx context.Context, userID, eventID uint) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fromRepo(err, "event")
	}
	if event.CreatorID != userID {
		return nil, newError(ErrForbidden, "only the event creator can do this")
	}
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, userID, eventID uint, req models.UpdateEventRequest) (*models.Event, error) {
	if _, err := s.ownedEvent(ctx, userID, eventID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Class != nil {
		updates["class"] = *req.Class
	}
	if req.DateAndTime != nil {
		updates["date_and_time"] = *req.DateAndTime
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.EventFormat != nil {
		updates["event_format"] = *req.EventFormat
	}
	if req.VirtualRoomLink != nil {
		updates["virtual_room_link"] = *req.VirtualRoomLink
	}
	if req.StudyRoom != nil {
		updates["study_room"] = *req.StudyRoom
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}

	if err := s.events.Update(ctx, eventID, updates); err != nil {
		return nil, fromRepo(err, "event")
	}
	return s.GetEvent(ctx, eventID)
}

func (s *EventService) DeleteEvent(ctx context.Context, userID, eventID uint) error {
	if _, err := s.ownedEvent(ctx, userID, eventID); err != nil {
		return err
	}
	return fromRepo(s.events.Delete(ctx, eventID), "event")
}

func (s *EventService) SaveEvent(ctx context.Context, userID, eventID uint) error {
	if err := s.saved.Save(ctx, userID, eventID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return newError(ErrConflict, "event already saved")
		}
		return fromRepo(err, "event")
	}
	return nil
}

func (s *EventService) UnsaveEvent(ctx context.Context, userID, eventID uint) error {
	if err := s.saved.Unsave(ctx, userID, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, "saved event not found")
		}
		return err
	}
	return nil
}

// ListSaved hides saved events whose creator is in a block relationship
// with userID.
func (s *EventService) ListSaved(ctx context.Context, userID uint) ([]models.Event, error) {
	blocked, err := s.social.BlockedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.saved.ListByUser(ctx, userID, blocked)
}
