package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cramr/cramr-backend/internal/models"
)

// statusArrays lists the event array columns mirrored from attendee status.
// rsvped_ids and accepted_ids both hold the accepted set.
var statusArrays = []struct {
	column string
	status string
}{
	{"rsvped_ids", models.RSVPStatusAccepted},
	{"accepted_ids", models.RSVPStatusAccepted},
	{"declined_ids", models.RSVPStatusDeclined},
}

// AttendeeRepository keeps event_attendees and the events status arrays in
// step. Every mutation locks the event row and updates the arrays with
// server-side array_append/array_remove, so concurrent RSVPs cannot lose
// updates.
type AttendeeRepository struct {
	db *gorm.DB
}

func NewAttendeeRepository(db *gorm.DB) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

// Upsert sets userID's status on eventID and returns the previous status
// ("" when the user had no row). Accepting a full event yields
// ErrCapacityReached; a missing event yields ErrNotFound.
func (r *AttendeeRepository) Upsert(ctx context.Context, eventID, userID uint, status string) (string, error) {
	var previous string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(lockForUpdate).Select("id", "capacity", "rsvped_ids").First(&event, eventID).Error; err != nil {
			return translate(err)
		}

		var existing models.EventAttendee
		err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Take(&existing).Error
		switch {
		case err == nil:
			previous = existing.Status
		case translate(err) != ErrNotFound:
			return err
		}

		if status == models.RSVPStatusAccepted && previous != models.RSVPStatusAccepted &&
			event.Capacity > 0 && len(event.RSVPedIDs) >= event.Capacity {
			return ErrCapacityReached
		}

		attendee := models.EventAttendee{EventID: eventID, UserID: userID, Status: status}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&attendee).Error; err != nil {
			return err
		}

		return syncStatusArrays(tx, eventID, userID, status)
	})
	return previous, err
}

// Delete removes the attendee row and every array membership. It returns
// ErrNotFound when the user had no row.
func (r *AttendeeRepository) Delete(ctx context.Context, eventID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate).Select("id").First(&models.Event{}, eventID).Error; err != nil {
			return translate(err)
		}

		res := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.EventAttendee{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := syncStatusArrays(tx, eventID, userID, ""); err != nil {
			return err
		}
		return tx.Exec(`UPDATE events SET invited_ids = array_remove(invited_ids, ?) WHERE id = ?`,
			int64(userID), eventID).Error
	})
}

func (r *AttendeeRepository) Get(ctx context.Context, eventID, userID uint) (*models.EventAttendee, error) {
	var attendee models.EventAttendee
	err := r.db.WithContext(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).Take(&attendee).Error
	if err != nil {
		return nil, translate(err)
	}
	return &attendee, nil
}

func (r *AttendeeRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.AttendeeWithUser, error) {
	var rows []models.AttendeeWithUser
	err := r.db.WithContext(ctx).Table("event_attendees AS ea").
		Select("ea.event_id, ea.user_id, ea.status, ea.updated_at, u.username, u.full_name, u.profile_picture_url").
		Joins("JOIN users u ON u.id = ea.user_id").
		Where("ea.event_id = ?", eventID).
		Order("ea.updated_at DESC").
		Scan(&rows).Error
	return rows, err
}

// Invite adds an invited row for each user without one and returns the
// users that were newly invited.
func (r *AttendeeRepository) Invite(ctx context.Context, eventID uint, userIDs []uint) ([]uint, error) {
	var invited []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate).Select("id").First(&models.Event{}, eventID).Error; err != nil {
			return translate(err)
		}

		for _, userID := range userIDs {
			attendee := models.EventAttendee{EventID: eventID, UserID: userID, Status: models.RSVPStatusInvited}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&attendee)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			if err := tx.Exec(`UPDATE events SET invited_ids = array_append(invited_ids, ?) WHERE id = ? AND NOT (? = ANY(invited_ids))`,
				int64(userID), eventID, int64(userID)).Error; err != nil {
				return err
			}
			invited = append(invited, userID)
		}
		return nil
	})
	return invited, err
}

// syncStatusArrays puts userID into the arrays that match status and takes
// it out of the others. An empty status removes it everywhere.
func syncStatusArrays(tx *gorm.DB, eventID, userID uint, status string) error {
	uid := int64(userID)
	for _, a := range statusArrays {
		var sql string
		var args []interface{}
		if a.status == status {
			sql = fmt.Sprintf(`UPDATE events SET %[1]s = array_append(%[1]s, ?) WHERE id = ? AND NOT (? = ANY(%[1]s))`, a.column)
			args = []interface{}{uid, eventID, uid}
		} else {
			sql = fmt.Sprintf(`UPDATE events SET %[1]s = array_remove(%[1]s, ?) WHERE id = ?`, a.column)
			args = []interface{}{uid, eventID}
		}
		if err := tx.Exec(sql, args...).Error; err != nil {
			return err
		}
	}
	return nil
}
