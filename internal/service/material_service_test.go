package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/repository"
)

type fakeStorage struct {
	objects   map[string]string
	deleteErr error
}

func (f *fakeStorage) Upload(_ context.Context, key string, src io.Reader, _ int64, _ string) (string, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	f.objects[key] = string(b)
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

type fakeMaterials struct {
	rows map[uint]models.StudyMaterial
}

func (f *fakeMaterials) Create(_ context.Context, m *models.StudyMaterial) error {
	m.ID = uint(len(f.rows) + 1)
	f.rows[m.ID] = *m
	return nil
}

func (f *fakeMaterials) GetByID(_ context.Context, id uint) (*models.StudyMaterial, error) {
	m, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (f *fakeMaterials) ListByEvent(_ context.Context, eventID uint) ([]models.StudyMaterial, error) {
	var out []models.StudyMaterial
	for _, m := range f.rows {
		if m.EventID != nil && *m.EventID == eventID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaterials) ListByUser(_ context.Context, userID uint) ([]models.StudyMaterial, error) {
	var out []models.StudyMaterial
	for _, m := range f.rows {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaterials) Delete(_ context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func newTestMaterialService(t *testing.T, maxSize int64) (*MaterialService, *fakeStorage, *fakeUsers) {
	users := newFakeUsers(&models.User{Username: "ann"}, &models.User{Username: "bob"})
	events := newFakeEvents(&models.Event{CreatorID: 1, Title: "Calc"})
	store := &fakeStorage{objects: map[string]string{}}
	svc := NewMaterialService(&fakeMaterials{rows: map[uint]models.StudyMaterial{}}, events, users, store, maxSize, zaptest.NewLogger(t))
	return svc, store, users
}

func upload(name, contentType, body string) Upload {
	return Upload{FileName: name, Size: int64(len(body)), ContentType: contentType, Body: strings.NewReader(body)}
}

func TestMaterialService_UploadMaterial(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestMaterialService(t, 1024)

	eventID := uint(1)
	m, err := svc.UploadMaterial(ctx, 1, &eventID, upload("Notes.PDF", "application/pdf", "pdf-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(m.ObjectKey, "materials/1/"))
	assert.True(t, strings.HasSuffix(m.ObjectKey, ".pdf"))
	assert.Equal(t, "Notes.PDF", m.FileName)
	assert.Equal(t, "pdf-bytes", store.objects[m.ObjectKey])

	missing := uint(42)
	_, err = svc.UploadMaterial(ctx, 1, &missing, upload("a.pdf", "application/pdf", "x"))
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.ListByEvent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, svc.DeleteMaterial(ctx, 2, m.ID), ErrForbidden)
	require.NoError(t, svc.DeleteMaterial(ctx, 1, m.ID))
	assert.Empty(t, store.objects)
}

func TestMaterialService_DeleteIgnoresStorageErrors(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestMaterialService(t, 1024)

	m, err := svc.UploadMaterial(ctx, 1, nil, upload("a.txt", "text/plain", "hello"))
	require.NoError(t, err)

	store.deleteErr = errors.New("bucket unavailable")
	require.NoError(t, svc.DeleteMaterial(ctx, 1, m.ID))
}

func TestMaterialService_UploadLimits(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestMaterialService(t, 4)

	_, err := svc.UploadFile(ctx, 1, upload("big.txt", "text/plain", "too large"))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.UploadFile(ctx, 1, upload("empty.txt", "text/plain", ""))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMaterialService_UploadProfilePicture(t *testing.T) {
	ctx := context.Background()
	svc, _, users := newTestMaterialService(t, 1024)

	_, err := svc.UploadProfilePicture(ctx, 1, upload("doc.pdf", "application/pdf", "x"))
	assert.ErrorIs(t, err, ErrValidation)

	file, err := svc.UploadProfilePicture(ctx, 1, upload("me.png", "image/png", "png"))
	require.NoError(t, err)
	assert.Contains(t, file.URL, "profile-pictures/1/")

	u, err := users.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, file.URL, u.ProfilePictureURL)
}
