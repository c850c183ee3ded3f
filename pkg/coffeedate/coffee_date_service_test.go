package coffeedate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"coffee-chronicles/domain"
	"coffee-chronicles/entities"
	"coffee-chronicles/pkg/dynamo/dynamotest"
	"coffee-chronicles/pkg/photo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCoffeeDatesTable = "coffee-dates"
	testPhotosTable      = "photos"
)

type fakeBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func (f *fakeBlobStore) PutFile(_ context.Context, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = data
	return nil
}

func (f *fakeBlobStore) GetFile(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[key]
	if !ok {
		return nil, errors.New("no such key: " + key)
	}
	return data, nil
}

func (f *fakeBlobStore) DeleteFile(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, key)
	return nil
}

func (f *fakeBlobStore) Bucket() string { return "test-bucket" }

func (f *fakeBlobStore) PublicURL(key string) string {
	return fmt.Sprintf("https://test-bucket.s3.amazonaws.com/%s", key)
}

type fakeThumbnailer struct{}

func (fakeThumbnailer) Resize(data []byte, _, _ int) ([]byte, error) {
	return data, nil
}

func newTestService() (CoffeeDateService, photo.PhotoService, *fakeBlobStore) {
	store := dynamotest.New()
	blobs := &fakeBlobStore{blobs: map[string][]byte{}}
	photoService := photo.NewPhotoService(store, blobs, fakeThumbnailer{}, testPhotosTable)
	svc := NewCoffeeDateService(store, photoService, testCoffeeDatesTable)
	return svc, photoService, blobs
}

func createRequest(name, visitDate string) domain.CreateCoffeeDateRequest {
	return domain.CreateCoffeeDateRequest{
		CafeInfo: entities.CafeInfo{
			PlaceID:          "place-" + name,
			Name:             name,
			FormattedAddress: "123 Bean St",
			Coordinates:      entities.Coordinates{Lat: 37.77, Lng: -122.41},
			Types:            []string{"cafe"},
		},
		Ratings:   entities.Ratings{Coffee: 4},
		VisitDate: visitDate,
	}
}

func uploadPhotos(t *testing.T, photoService photo.PhotoService, coffeeDateID string, names ...string) []string {
	t.Helper()
	files := make([]domain.FileUpload, 0, len(names))
	for _, name := range names {
		files = append(files, domain.FileUpload{
			Filename:    name,
			ContentType: "image/jpeg",
			Size:        1024,
			Data:        []byte(name),
		})
	}
	uploaded, err := photoService.Upload(context.Background(), files, coffeeDateID)
	require.NoError(t, err)
	ids := make([]string, 0, len(uploaded))
	for _, p := range uploaded {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestCreateAndGetByID(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), createRequest("Blue Bottle", "2026-03-14"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Photos)
	assert.Empty(t, created.PrimaryPhotoID)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Blue Bottle", got.CafeInfo.Name)
	assert.Equal(t, 4, got.Ratings.Coffee)
	assert.Equal(t, created.VisitDate, got.VisitDate)
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	svc, _, _ := newTestService()

	got, err := svc.GetByID(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateRejectsInvalidRating(t *testing.T) {
	svc, _, _ := newTestService()

	req := createRequest("Blue Bottle", "2026-03-14")
	req.Ratings.Coffee = 6

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "ratings.coffee", vErr.Field)
}

func TestCreateRejectsBlankCafeName(t *testing.T) {
	svc, _, _ := newTestService()

	req := createRequest("   ", "2026-03-14")

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "cafeInfo.name", vErr.Field)
}

func TestGetAllNewestVisitFirst(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), createRequest("Older", "2026-01-05"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), createRequest("Newer", "2026-03-14"))
	require.NoError(t, err)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Newer", all[0].CafeInfo.Name)
	assert.Equal(t, "Older", all[1].CafeInfo.Name)
}

func TestGetAllOrdersAcrossTimezoneOffsets(t *testing.T) {
	svc, _, _ := newTestService()

	// 2026-03-14T01:00+09:00 is 2026-03-13T16:00Z, the earlier instant
	_, err := svc.Create(context.Background(), createRequest("Earlier", "2026-03-14T01:00:00+09:00"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), createRequest("Later", "2026-03-13T20:00:00Z"))
	require.NoError(t, err)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Later", all[0].CafeInfo.Name)
	assert.Equal(t, "Earlier", all[1].CafeInfo.Name)
}

func TestCreateNormalizesVisitDateToUTC(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), createRequest("Blue Bottle", "2026-03-14T01:00:00+09:00"))
	require.NoError(t, err)

	utc := time.Date(2026, 3, 13, 16, 0, 0, 0, time.UTC)
	assert.True(t, created.VisitDate.Equal(utc))
	assert.Equal(t, time.UTC, created.VisitDate.Location())

	updated, err := svc.Update(context.Background(), created.ID, domain.UpdateCoffeeDateRequest{
		VisitDate: "2026-06-01T02:00:00+05:00",
	})
	require.NoError(t, err)
	assert.True(t, updated.VisitDate.Equal(time.Date(2026, 5, 31, 21, 0, 0, 0, time.UTC)))
}

func TestUpdateRequiresAtLeastOneField(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), createRequest("Blue Bottle", "2026-03-14"))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, domain.UpdateCoffeeDateRequest{})
	require.Error(t, err)

	var vErr *domain.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestUpdateVisitDateReordersListing(t *testing.T) {
	svc, _, _ := newTestService()

	older, err := svc.Create(context.Background(), createRequest("Older", "2026-01-05"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), createRequest("Newer", "2026-03-14"))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), older.ID, domain.UpdateCoffeeDateRequest{
		VisitDate: "2026-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, older.ID, updated.ID)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Older", all[0].CafeInfo.Name)
}

func TestUpdatePartialKeepsOtherFields(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), createRequest("Blue Bottle", "2026-03-14"))
	require.NoError(t, err)

	dessert := 5
	updated, err := svc.Update(context.Background(), created.ID, domain.UpdateCoffeeDateRequest{
		Ratings: &entities.Ratings{Coffee: 2, Dessert: &dessert},
	})
	require.NoError(t, err)

	assert.Equal(t, "Blue Bottle", updated.CafeInfo.Name)
	assert.Equal(t, 2, updated.Ratings.Coffee)
	require.NotNil(t, updated.Ratings.Dessert)
	assert.Equal(t, 5, *updated.Ratings.Dessert)
	assert.Equal(t, created.VisitDate, updated.VisitDate)
}

func TestUpdateMissingCoffeeDate(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), "does-not-exist", domain.UpdateCoffeeDateRequest{
		VisitDate: "2026-06-01",
	})
	assert.ErrorIs(t, err, domain.ErrCoffeeDateNotFound)
}

func TestAddPhotosPromotesFirstToPrimary(t *testing.T) {
	svc, photoService, _ := newTestService()

	created, err := svc.Create(context.Background(), createRequest("Blue Bottle", "2026-03-14"))
	require.NoError(t, err)

	first := uploadPhotos(t, photoService, created.ID, "one.jpg")
	require.NoError(t, svc.AddPhotos(context.Background(), created.ID, first))

	second := uploadPhotos(t, photoService, created.ID, "two.jpg")
	require.NoError(t, svc.AddPhotos(context.Background(), created.ID, second))

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	// primary sticks with the first photo ever added
	assert.Equal(t, first[0], got.PrimaryPhotoID)
	assert.Len(t, got.Photos, 2)
}

func TestAddPhotosEmptyIsNoOp(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), createRequest("Blue Bottle", "2026-03-14"))
	require.NoError(t, err)

	require.NoError(t, svc.AddPhotos(context.Background(), created.ID, nil))

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PrimaryPhotoID)
}

func TestAddPhotosMissingCoffeeDate(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.AddPhotos(context.Background(), "does-not-exist", []string{"p-1"})
	assert.ErrorIs(t, err, domain.ErrCoffeeDateNotFound)
}

func TestDeleteCascadesToPhotosAndBlobs(t *testing.T) {
	svc, photoService, blobs := newTestService()

	created, err := svc.Create(context.Background(), createRequest("Blue Bottle", "2026-03-14"))
	require.NoError(t, err)

	ids := uploadPhotos(t, photoService, created.ID, "one.jpg", "two.jpg")
	require.NoError(t, svc.AddPhotos(context.Background(), created.ID, ids))

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	remaining, err := photoService.ListByCoffeeDate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	blobs.mu.Lock()
	defer blobs.mu.Unlock()
	assert.Empty(t, blobs.blobs)
}

func TestDeleteMissingCoffeeDate(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Delete(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, domain.ErrCoffeeDateNotFound)
}
