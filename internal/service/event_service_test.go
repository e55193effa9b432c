package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/repository"
)

func newTestEventService(t *testing.T) (*EventService, *fakeEvents, *fakeSocial) {
	users := newFakeUsers(&models.User{Username: "ann"}, &models.User{Username: "bob"}, &models.User{Username: "cat"})
	events := newFakeEvents()
	social := newFakeSocial()
	attendees := newFakeAttendees()
	logger := zaptest.NewLogger(t)
	rsvps := NewRSVPService(events, attendees, social, users, &fakeNotifier{}, logger)
	return NewEventService(events, newFakeSaved(events), social, rsvps, logger), events, social
}

// fakeSaved mirrors the repository: saving needs the event to exist.
type fakeSaved struct {
	events *fakeEvents
	rows   map[pair]bool
	order  []uint
}

func newFakeSaved(events *fakeEvents) *fakeSaved {
	return &fakeSaved{events: events, rows: map[pair]bool{}}
}

func (f *fakeSaved) Save(ctx context.Context, userID, eventID uint) error {
	if _, err := f.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	if f.rows[pair{userID, eventID}] {
		return repository.ErrDuplicate
	}
	f.rows[pair{userID, eventID}] = true
	f.order = append([]uint{eventID}, f.order...)
	return nil
}

func (f *fakeSaved) Unsave(_ context.Context, userID, eventID uint) error {
	if !f.rows[pair{userID, eventID}] {
		return repository.ErrNotFound
	}
	delete(f.rows, pair{userID, eventID})
	return nil
}

func (f *fakeSaved) ListByUser(ctx context.Context, userID uint, exclude []uint) ([]models.Event, error) {
	var out []models.Event
	for _, id := range f.order {
		if !f.rows[pair{userID, id}] {
			continue
		}
		e, _ := f.events.GetByID(ctx, id)
		if containsID(exclude, e.CreatorID) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func TestEventService_ListEventsHidesBlockedCreators(t *testing.T) {
	ctx := context.Background()
	svc, _, social := newTestEventService(t)

	for _, creator := range []uint{1, 2, 3} {
		_, err := svc.CreateEvent(ctx, creator, models.EventRequest{Title: "session", DateAndTime: time.Now()})
		require.NoError(t, err)
	}
	require.NoError(t, social.CreateBlock(ctx, 1, 2))
	require.NoError(t, social.CreateBlock(ctx, 3, 1))

	all, err := svc.ListEvents(ctx, 0, 0, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	visible, err := svc.ListEvents(ctx, 1, 0, "")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, uint(1), visible[0].CreatorID)

	forBob, err := svc.ListEvents(ctx, 2, 0, "")
	require.NoError(t, err)
	for _, e := range forBob {
		assert.NotEqual(t, uint(1), e.CreatorID)
	}
}

func TestEventService_CreateEventDefaults(t *testing.T) {
	svc, _, _ := newTestEventService(t)
	event, err := svc.CreateEvent(context.Background(), 1, models.EventRequest{Title: "  Finals prep ", DateAndTime: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "Finals prep", event.Title)
	assert.Equal(t, 60, event.DurationMinutes)
	assert.Equal(t, models.EventFormatInPerson, event.EventFormat)
	assert.Equal(t, uint(1), event.CreatorID)
}

func TestEventService_CreatorOnlyMutations(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestEventService(t)

	event, err := svc.CreateEvent(ctx, 1, models.EventRequest{Title: "session", DateAndTime: time.Now()})
	require.NoError(t, err)

	title := "renamed"
	_, err = svc.UpdateEvent(ctx, 2, event.ID, models.UpdateEventRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.DeleteEvent(ctx, 2, event.ID), ErrForbidden)

	updated, err := svc.UpdateEvent(ctx, 1, event.ID, models.UpdateEventRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)

	require.NoError(t, svc.DeleteEvent(ctx, 1, event.ID))
	_, err = svc.GetEvent(ctx, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventService_SavedEvents(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestEventService(t)

	first, err := svc.CreateEvent(ctx, 1, models.EventRequest{Title: "first", DateAndTime: time.Now()})
	require.NoError(t, err)
	second, err := svc.CreateEvent(ctx, 1, models.EventRequest{Title: "second", DateAndTime: time.Now()})
	require.NoError(t, err)

	require.NoError(t, svc.SaveEvent(ctx, 2, first.ID))
	require.NoError(t, svc.SaveEvent(ctx, 2, second.ID))
	assert.ErrorIs(t, svc.SaveEvent(ctx, 2, first.ID), ErrConflict)
	assert.ErrorIs(t, svc.SaveEvent(ctx, 2, 99), ErrNotFound)

	saved, err := svc.ListSaved(ctx, 2)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, second.ID, saved[0].ID, "most recently saved first")

	require.NoError(t, svc.UnsaveEvent(ctx, 2, first.ID))
	assert.ErrorIs(t, svc.UnsaveEvent(ctx, 2, first.ID), ErrNotFound)

	saved, err = svc.ListSaved(ctx, 2)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, second.ID, saved[0].ID)
}

func TestEventService_ListSavedHidesBlockedCreators(t *testing.T) {
	ctx := context.Background()
	svc, _, social := newTestEventService(t)

	fromOne, err := svc.CreateEvent(ctx, 1, models.EventRequest{Title: "one", DateAndTime: time.Now()})
	require.NoError(t, err)
	fromThree, err := svc.CreateEvent(ctx, 3, models.EventRequest{Title: "three", DateAndTime: time.Now()})
	require.NoError(t, err)
	require.NoError(t, svc.SaveEvent(ctx, 2, fromOne.ID))
	require.NoError(t, svc.SaveEvent(ctx, 2, fromThree.ID))

	require.NoError(t, social.CreateBlock(ctx, 3, 2))

	saved, err := svc.ListSaved(ctx, 2)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, fromOne.ID, saved[0].ID)
}
