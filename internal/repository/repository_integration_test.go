//go:build integration

package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/pkg/database"
)

// setupPostgres starts a throwaway postgres container and migrates it.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "cramr",
			"POSTGRES_PASSWORD": "cramr",
			"POSTGRES_DB":       "cramr",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgC.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate postgres container: %v", err)
		}
	})

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://cramr:cramr@%s:%s/cramr?sslmode=disable", host, port.Port())
	db, err := gorm.Open(postgres.Open(database.WithStatementTimeout(dsn, 10*time.Second)), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func createUser(t *testing.T, repo *UserRepository, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", Password: "x"}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func createEvent(t *testing.T, repo *EventRepository, creatorID uint, capacity int) *models.Event {
	t.Helper()
	e := &models.Event{
		CreatorID:   creatorID,
		Title:       fmt.Sprintf("event by %d", creatorID),
		DateAndTime: time.Now().Add(24 * time.Hour),
		Capacity:    capacity,
		EventFormat: models.EventFormatInPerson,
	}
	require.NoError(t, repo.Create(context.Background(), e))
	return e
}

func acceptedSet(t *testing.T, db *gorm.DB, eventID uint) []int64 {
	t.Helper()
	var ids []int64
	require.NoError(t, db.Model(&models.EventAttendee{}).
		Where("event_id = ? AND status = ?", eventID, models.RSVPStatusAccepted).
		Order("user_id").
		Pluck("user_id", &ids).Error)
	return ids
}

func sorted(ids []int64) []int64 {
	out := append([]int64{}, ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestRepositories(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	events := NewEventRepository(db)
	attendees := NewAttendeeRepository(db)
	social := NewSocialRepository(db)
	saved := NewSavedEventRepository(db)

	t.Run("rsvp transitions keep rsvped_ids in sync", func(t *testing.T) {
		creator := createUser(t, users, "rsvp_creator")
		u1 := createUser(t, users, "rsvp_u1")
		event := createEvent(t, events, creator.ID, 0)

		prev, err := attendees.Upsert(ctx, event.ID, u1.ID, models.RSVPStatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, "", prev)

		got, err := events.GetByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Contains(t, []int64(got.RSVPedIDs), int64(u1.ID))
		assert.Contains(t, []int64(got.AcceptedIDs), int64(u1.ID))

		prev, err = attendees.Upsert(ctx, event.ID, u1.ID, models.RSVPStatusDeclined)
		require.NoError(t, err)
		assert.Equal(t, models.RSVPStatusAccepted, prev)

		got, err = events.GetByID(ctx, event.ID)
		require.NoError(t, err)
		assert.NotContains(t, []int64(got.RSVPedIDs), int64(u1.ID))
		assert.NotContains(t, []int64(got.AcceptedIDs), int64(u1.ID))
		assert.Contains(t, []int64(got.DeclinedIDs), int64(u1.ID))

		_, err = attendees.Upsert(ctx, event.ID, u1.ID, models.RSVPStatusPending)
		require.NoError(t, err)
		got, err = events.GetByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Empty(t, got.RSVPedIDs)
		assert.Empty(t, got.DeclinedIDs)

		require.NoError(t, attendees.Delete(ctx, event.ID, u1.ID))
		assert.ErrorIs(t, attendees.Delete(ctx, event.ID, u1.ID), ErrNotFound)
	})

	t.Run("concurrent rsvps lose no updates", func(t *testing.T) {
		creator := createUser(t, users, "conc_creator")
		event := createEvent(t, events, creator.ID, 0)

		var ids []uint
		for i := 0; i < 12; i++ {
			ids = append(ids, createUser(t, users, fmt.Sprintf("conc_u%d", i)).ID)
		}

		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func(i int, id uint) {
				defer wg.Done()
				status := models.RSVPStatusAccepted
				if i%3 == 0 {
					status = models.RSVPStatusDeclined
				}
				_, err := attendees.Upsert(ctx, event.ID, id, status)
				assert.NoError(t, err)
			}(i, id)
		}
		wg.Wait()

		got, err := events.GetByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, acceptedSet(t, db, event.ID), sorted(got.RSVPedIDs))
		assert.Len(t, got.DeclinedIDs, 4)
	})

	t.Run("capacity", func(t *testing.T) {
		creator := createUser(t, users, "cap_creator")
		a := createUser(t, users, "cap_a")
		b := createUser(t, users, "cap_b")
		event := createEvent(t, events, creator.ID, 1)

		_, err := attendees.Upsert(ctx, event.ID, a.ID, models.RSVPStatusAccepted)
		require.NoError(t, err)
		_, err = attendees.Upsert(ctx, event.ID, a.ID, models.RSVPStatusAccepted)
		require.NoError(t, err)

		_, err = attendees.Upsert(ctx, event.ID, b.ID, models.RSVPStatusAccepted)
		assert.ErrorIs(t, err, ErrCapacityReached)
		_, err = attendees.Upsert(ctx, event.ID, b.ID, models.RSVPStatusPending)
		assert.NoError(t, err)
	})

	t.Run("rsvp on missing event", func(t *testing.T) {
		u := createUser(t, users, "missing_ev")
		_, err := attendees.Upsert(ctx, 999999, u.ID, models.RSVPStatusAccepted)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invite skips existing attendees", func(t *testing.T) {
		creator := createUser(t, users, "inv_creator")
		a := createUser(t, users, "inv_a")
		b := createUser(t, users, "inv_b")
		event := createEvent(t, events, creator.ID, 0)

		_, err := attendees.Upsert(ctx, event.ID, a.ID, models.RSVPStatusAccepted)
		require.NoError(t, err)

		invited, err := attendees.Invite(ctx, event.ID, []uint{a.ID, b.ID})
		require.NoError(t, err)
		assert.Equal(t, []uint{b.ID}, invited)

		got, err := events.GetByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{int64(b.ID)}, []int64(got.InvitedIDs))

		rows, err := attendees.ListByEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("follow then unfollow restores counts", func(t *testing.T) {
		a := createUser(t, users, "fol_a")
		b := createUser(t, users, "fol_b")

		require.NoError(t, social.CreateFollow(ctx, a.ID, b.ID))
		assert.ErrorIs(t, social.CreateFollow(ctx, a.ID, b.ID), ErrDuplicate)

		ga, _ := users.GetByID(ctx, a.ID)
		gb, _ := users.GetByID(ctx, b.ID)
		assert.Equal(t, 1, ga.Following)
		assert.Equal(t, []int64{int64(b.ID)}, []int64(ga.FollowingIDs))
		assert.Equal(t, 1, gb.Followers)
		assert.Equal(t, []int64{int64(a.ID)}, []int64(gb.FollowerIDs))

		require.NoError(t, social.DeleteFollow(ctx, a.ID, b.ID))
		assert.ErrorIs(t, social.DeleteFollow(ctx, a.ID, b.ID), ErrNotFound)

		ga, _ = users.GetByID(ctx, a.ID)
		gb, _ = users.GetByID(ctx, b.ID)
		assert.Equal(t, 0, ga.Following)
		assert.Empty(t, ga.FollowingIDs)
		assert.Equal(t, 0, gb.Followers)
		assert.Empty(t, gb.FollowerIDs)
	})

	t.Run("block removes follows both ways and hides events", func(t *testing.T) {
		a := createUser(t, users, "blk_a")
		b := createUser(t, users, "blk_b")
		createEvent(t, events, b.ID, 0)
		own := createEvent(t, events, a.ID, 0)

		require.NoError(t, social.CreateFollow(ctx, b.ID, a.ID))
		require.NoError(t, social.CreateFollow(ctx, a.ID, b.ID))

		require.NoError(t, social.CreateBlock(ctx, a.ID, b.ID))
		assert.ErrorIs(t, social.CreateBlock(ctx, a.ID, b.ID), ErrDuplicate)

		exists, err := social.FollowExists(ctx, b.ID, a.ID)
		require.NoError(t, err)
		assert.False(t, exists)
		exists, err = social.FollowExists(ctx, a.ID, b.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		ga, _ := users.GetByID(ctx, a.ID)
		gb, _ := users.GetByID(ctx, b.ID)
		assert.Equal(t, 0, ga.Followers)
		assert.Equal(t, 0, ga.Following)
		assert.Equal(t, 0, gb.Followers)
		assert.Equal(t, 0, gb.Following)

		isBlocked, err := social.BlockExists(ctx, a.ID, b.ID)
		require.NoError(t, err)
		isBlockedBy, err := social.BlockExists(ctx, b.ID, a.ID)
		require.NoError(t, err)
		assert.True(t, isBlocked)
		assert.False(t, isBlockedBy)

		for _, viewer := range []uint{a.ID, b.ID} {
			blocked, err := social.BlockedUserIDs(ctx, viewer)
			require.NoError(t, err)
			list, err := events.List(ctx, models.EventFilter{ExcludeCreatorIDs: blocked})
			require.NoError(t, err)
			for _, e := range list {
				assert.NotContains(t, blocked, e.CreatorID)
			}
		}

		blocked, _ := social.BlockedUserIDs(ctx, a.ID)
		list, err := events.List(ctx, models.EventFilter{ExcludeCreatorIDs: blocked, CreatorID: a.ID})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, own.ID, list[0].ID)

		require.NoError(t, social.DeleteBlock(ctx, a.ID, b.ID))
		assert.ErrorIs(t, social.DeleteBlock(ctx, a.ID, b.ID), ErrNotFound)
	})

	t.Run("follow on a blocked pair is refused", func(t *testing.T) {
		a := createUser(t, users, "fblk_a")
		b := createUser(t, users, "fblk_b")
		require.NoError(t, social.CreateBlock(ctx, b.ID, a.ID))

		assert.ErrorIs(t, social.CreateFollow(ctx, a.ID, b.ID), ErrBlocked)
		assert.ErrorIs(t, social.CreateFollow(ctx, b.ID, a.ID), ErrBlocked)

		ga, _ := users.GetByID(ctx, a.ID)
		gb, _ := users.GetByID(ctx, b.ID)
		assert.Equal(t, 0, ga.Following)
		assert.Empty(t, ga.FollowingIDs)
		assert.Equal(t, 0, gb.Followers)
		assert.Empty(t, gb.FollowerIDs)
	})

	t.Run("events are listed newest first", func(t *testing.T) {
		c := createUser(t, users, "order_c")
		first := createEvent(t, events, c.ID, 0)
		second := createEvent(t, events, c.ID, 0)

		list, err := events.List(ctx, models.EventFilter{CreatorID: c.ID})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)
	})

	t.Run("saved events mirror saved_ids", func(t *testing.T) {
		c := createUser(t, users, "save_c")
		u := createUser(t, users, "save_u")
		event := createEvent(t, events, c.ID, 0)

		require.NoError(t, saved.Save(ctx, u.ID, event.ID))
		assert.ErrorIs(t, saved.Save(ctx, u.ID, event.ID), ErrDuplicate)

		got, _ := events.GetByID(ctx, event.ID)
		assert.Equal(t, []int64{int64(u.ID)}, []int64(got.SavedIDs))

		list, err := saved.ListByUser(ctx, u.ID, nil)
		require.NoError(t, err)
		require.Len(t, list, 1)

		list, err = saved.ListByUser(ctx, u.ID, []uint{c.ID})
		require.NoError(t, err)
		assert.Empty(t, list)

		require.NoError(t, saved.Unsave(ctx, u.ID, event.ID))
		assert.ErrorIs(t, saved.Unsave(ctx, u.ID, event.ID), ErrNotFound)
		got, _ = events.GetByID(ctx, event.ID)
		assert.Empty(t, got.SavedIDs)
	})

	t.Run("duplicate username is translated", func(t *testing.T) {
		createUser(t, users, "dup_user")
		err := users.Create(ctx, &models.User{Username: "dup_user", Email: "other@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("deleting a user cleans up counters and arrays", func(t *testing.T) {
		a := createUser(t, users, "del_a")
		b := createUser(t, users, "del_b")
		c := createUser(t, users, "del_c")
		event := createEvent(t, events, c.ID, 0)

		require.NoError(t, social.CreateFollow(ctx, a.ID, b.ID))
		_, err := attendees.Upsert(ctx, event.ID, a.ID, models.RSVPStatusAccepted)
		require.NoError(t, err)

		require.NoError(t, users.Delete(ctx, a.ID))

		_, err = users.GetByID(ctx, a.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		gb, _ := users.GetByID(ctx, b.ID)
		assert.Equal(t, 0, gb.Followers)
		got, _ := events.GetByID(ctx, event.ID)
		assert.Empty(t, got.RSVPedIDs)
	})
}
