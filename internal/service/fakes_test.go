package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/repository"
)

type pair [2]uint

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*models.User
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[uint]*models.User{}}
	for _, u := range users {
		_ = f.Create(context.Background(), u)
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email || existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	if u.ID == 0 {
		f.nextID++
		u.ID = f.nextID
	} else if u.ID > f.nextID {
		f.nextID = u.ID
	}
	if u.Username == "" {
		u.Username = fmt.Sprintf("user%d", u.ID)
	}
	if u.Email == "" {
		u.Email = u.Username + "@example.com"
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) find(match func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Email == email })
}

func (f *fakeUsers) GetByIdentifier(_ context.Context, id string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Email == id || u.Username == id })
}

func (f *fakeUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	_, err := f.find(func(u *models.User) bool { return u.Username == username })
	return err == nil, nil
}

func (f *fakeUsers) ListByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Search(_ context.Context, q string, exclude []uint, limit int) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.byID {
		if containsID(exclude, u.ID) || !strings.Contains(u.Username, strings.ToLower(q)) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, id uint, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "username":
			u.Username = v.(string)
		case "full_name":
			u.FullName = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "banner_color":
			u.BannerColor = v.(string)
		case "password":
			u.Password = v.(string)
		case "profile_picture_url":
			u.ProfilePictureURL = v.(string)
		case "email_verified":
			u.EmailVerified = v.(bool)
		case "two_factor_enabled":
			u.TwoFactorEnabled = v.(bool)
		case "push_notifications_enabled":
			u.PushNotificationsEnabled = v.(bool)
		}
	}
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	return f.Update(ctx, id, map[string]interface{}{"password": hashed})
}

func (f *fakeUsers) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeSocial struct {
	mu      sync.Mutex
	follows map[pair]bool
	blocks  map[pair]bool

	// beforeFollow runs at the start of CreateFollow, outside the lock.
	beforeFollow func()
}

func newFakeSocial() *fakeSocial {
	return &fakeSocial{follows: map[pair]bool{}, blocks: map[pair]bool{}}
}

func (f *fakeSocial) CreateFollow(_ context.Context, a, b uint) error {
	if f.beforeFollow != nil {
		f.beforeFollow()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.blocks[pair{a, b}] || f.blocks[pair{b, a}] {
		return repository.ErrBlocked
	}
	if f.follows[pair{a, b}] {
		return repository.ErrDuplicate
	}
	f.follows[pair{a, b}] = true
	return nil
}

func (f *fakeSocial) DeleteFollow(_ context.Context, a, b uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.follows[pair{a, b}] {
		return repository.ErrNotFound
	}
	delete(f.follows, pair{a, b})
	return nil
}

func (f *fakeSocial) FollowExists(_ context.Context, a, b uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.follows[pair{a, b}], nil
}

func (f *fakeSocial) ListFollowers(context.Context, uint) ([]models.User, error) { return nil, nil }

func (f *fakeSocial) ListFollowing(context.Context, uint) ([]models.User, error) { return nil, nil }

func (f *fakeSocial) CreateBlock(_ context.Context, a, b uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.blocks[pair{a, b}] {
		return repository.ErrDuplicate
	}
	f.blocks[pair{a, b}] = true
	delete(f.follows, pair{a, b})
	delete(f.follows, pair{b, a})
	return nil
}

func (f *fakeSocial) DeleteBlock(_ context.Context, a, b uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.blocks[pair{a, b}] {
		return repository.ErrNotFound
	}
	delete(f.blocks, pair{a, b})
	return nil
}

func (f *fakeSocial) BlockExists(_ context.Context, a, b uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blocks[pair{a, b}], nil
}

func (f *fakeSocial) BlockedUserIDs(_ context.Context, id uint) ([]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uint
	for p := range f.blocks {
		switch id {
		case p[0]:
			out = append(out, p[1])
		case p[1]:
			out = append(out, p[0])
		}
	}
	return out, nil
}

func (f *fakeSocial) ListBlocked(context.Context, uint) ([]models.User, error) { return nil, nil }

type fakeEvents struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*models.Event
	last   models.EventFilter
}

func newFakeEvents(events ...*models.Event) *fakeEvents {
	f := &fakeEvents{byID: map[uint]*models.Event{}}
	for _, e := range events {
		_ = f.Create(context.Background(), e)
	}
	return f
}

func (f *fakeEvents) Create(_ context.Context, e *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEvents) GetByID(_ context.Context, id uint) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEvents) List(_ context.Context, filter models.EventFilter) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = filter
	var out []models.Event
	for _, e := range f.byID {
		if containsID(filter.ExcludeCreatorIDs, e.CreatorID) {
			continue
		}
		if filter.CreatorID != 0 && e.CreatorID != filter.CreatorID {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeEvents) Update(_ context.Context, id uint, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := updates["title"]; ok {
		e.Title = v.(string)
	}
	if v, ok := updates["capacity"]; ok {
		e.Capacity = v.(int)
	}
	return nil
}

func (f *fakeEvents) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeAttendees struct {
	mu     sync.Mutex
	status map[pair]string
}

func newFakeAttendees() *fakeAttendees {
	return &fakeAttendees{status: map[pair]string{}}
}

func (f *fakeAttendees) Upsert(_ context.Context, eventID, userID uint, status string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev := f.status[pair{eventID, userID}]
	f.status[pair{eventID, userID}] = status
	return prev, nil
}

func (f *fakeAttendees) Delete(_ context.Context, eventID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.status[pair{eventID, userID}]; !ok {
		return repository.ErrNotFound
	}
	delete(f.status, pair{eventID, userID})
	return nil
}

func (f *fakeAttendees) Get(_ context.Context, eventID, userID uint) (*models.EventAttendee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.status[pair{eventID, userID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.EventAttendee{EventID: eventID, UserID: userID, Status: s}, nil
}

func (f *fakeAttendees) ListByEvent(_ context.Context, eventID uint) ([]models.AttendeeWithUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AttendeeWithUser
	for p, s := range f.status {
		if p[0] == eventID {
			out = append(out, models.AttendeeWithUser{EventID: eventID, UserID: p[1], Status: s})
		}
	}
	return out, nil
}

func (f *fakeAttendees) Invite(_ context.Context, eventID uint, ids []uint) ([]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var invited []uint
	for _, id := range ids {
		if _, ok := f.status[pair{eventID, id}]; ok {
			continue
		}
		f.status[pair{eventID, id}] = models.RSVPStatusInvited
		invited = append(invited, id)
	}
	return invited, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []NotificationInput
}

func (f *fakeNotifier) Notify(_ context.Context, in NotificationInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, in)
}

func (f *fakeNotifier) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, n := range f.sent {
		out = append(out, n.Type)
	}
	return out
}

type fakeMailer struct {
	mu    sync.Mutex
	codes map[string]string
	sent  int
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{codes: map[string]string{}}
}

func (f *fakeMailer) SendWelcomeEmail(string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent++
	return nil
}

func (f *fakeMailer) SendOTPEmail(to, _, code string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent++
	f.codes["otp:"+to] = code
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(to, _, code string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent++
	f.codes["reset:"+to] = code
	return nil
}

func (f *fakeMailer) code(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[key]
}
