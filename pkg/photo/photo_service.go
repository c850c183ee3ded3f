package photo

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"coffee-chronicles/domain"
	"coffee-chronicles/entities"
	"coffee-chronicles/internal/utils/storage"
	"coffee-chronicles/pkg/dynamo"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MaxFileSize caps a single upload at 10 MiB.
const MaxFileSize = 10 * 1024 * 1024

type (
	PhotoService interface {
		Upload(ctx context.Context, files []domain.FileUpload, coffeeDateID string) ([]domain.PhotoResponse, error)
		Delete(ctx context.Context, photoID string) error
		ListByCoffeeDate(ctx context.Context, coffeeDateID string) ([]domain.PhotoResponse, error)
		Associate(ctx context.Context, photoIDs []string, coffeeDateID string) error
		RegenerateThumbnail(ctx context.Context, s3Key string) (string, error)
	}

	photoService struct {
		store       dynamo.Store
		s3          storage.AwsS3
		thumbnailer Thumbnailer
		photosTable string
	}
)

func NewPhotoService(store dynamo.Store, s3 storage.AwsS3, thumbnailer Thumbnailer, photosTable string) PhotoService {
	return &photoService{
		store:       store,
		s3:          s3,
		thumbnailer: thumbnailer,
		photosTable: photosTable,
	}
}

// Upload validates the whole batch before any blob is written, then uploads
// files in parallel. A failure after validation leaves already-uploaded
// siblings in place; there is no rollback across the batch.
func (s *photoService) Upload(ctx context.Context, files []domain.FileUpload, coffeeDateID string) ([]domain.PhotoResponse, error) {
	if len(files) == 0 {
		return nil, domain.NewValidationError("files", "at least one file is required")
	}
	for i, f := range files {
		if err := validateFile(f, i); err != nil {
			return nil, err
		}
	}

	photos := make([]domain.PhotoResponse, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			p, err := s.uploadSingle(gctx, f, coffeeDateID)
			if err != nil {
				return err
			}
			photos[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return photos, nil
}

func (s *photoService) uploadSingle(ctx context.Context, f domain.FileUpload, coffeeDateID string) (domain.PhotoResponse, error) {
	photoID := uuid.New().String()
	now := time.Now().UTC()
	dateFolder := now.Format("2006/01/02")

	originalKey := fmt.Sprintf("originals/%s/%s-%s", dateFolder, photoID, f.Filename)
	thumbnailKey := fmt.Sprintf("thumbnails/%s/%s-thumb.jpg", dateFolder, photoID)

	thumbnail, err := s.thumbnailer.Resize(f.Data, thumbnailWidth, thumbnailHeight)
	if err != nil {
		return domain.PhotoResponse{}, domain.NewValidationError("file", "failed to process image %s: %v", f.Filename, err)
	}

	if err := s.s3.PutFile(ctx, originalKey, f.Data, f.ContentType); err != nil {
		return domain.PhotoResponse{}, err
	}
	if err := s.s3.PutFile(ctx, thumbnailKey, thumbnail, "image/jpeg"); err != nil {
		return domain.PhotoResponse{}, err
	}

	record := entities.PhotoRecord{
		PK:             entities.PhotoPK(photoID),
		SK:             entities.MetadataSK,
		GSI1PK:         entities.PhotoGSI1PK(coffeeDateID),
		GSI1SK:         entities.PhotoPK(photoID),
		ID:             photoID,
		CoffeeDateID:   coffeeDateID,
		S3Key:          originalKey,
		S3Bucket:       s.s3.Bucket(),
		Filename:       f.Filename,
		ContentType:    f.ContentType,
		Size:           f.Size,
		ThumbnailS3Key: thumbnailKey,
		UploadedAt:     now.Format(time.RFC3339),
	}

	if err := s.store.PutItem(ctx, s.photosTable, record); err != nil {
		return domain.PhotoResponse{}, err
	}

	return s.recordToPhoto(record), nil
}

// Delete removes both blobs before the metadata record, so a failed blob
// delete never leaves a record pointing at nothing.
func (s *photoService) Delete(ctx context.Context, photoID string) error {
	record, err := s.getRecord(ctx, photoID)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.s3.DeleteFile(gctx, record.S3Key)
	})
	if record.ThumbnailS3Key != "" {
		g.Go(func() error {
			return s.s3.DeleteFile(gctx, record.ThumbnailS3Key)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return s.store.DeleteItem(ctx, s.photosTable, entities.PhotoPK(photoID), entities.MetadataSK)
}

func (s *photoService) ListByCoffeeDate(ctx context.Context, coffeeDateID string) ([]domain.PhotoResponse, error) {
	if strings.TrimSpace(coffeeDateID) == "" {
		return nil, domain.NewValidationError("coffeeDateId", "coffee date ID is required")
	}

	items, err := s.store.QueryIndex(ctx, s.photosTable, dynamo.GSI1, entities.PhotoGSI1PK(coffeeDateID), "", true)
	if err != nil {
		return nil, err
	}

	photos := make([]domain.PhotoResponse, 0, len(items))
	for _, item := range items {
		var record entities.PhotoRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, &domain.DataAccessError{Op: "UnmarshalMap", Table: s.photosTable, Err: err}
		}
		photos = append(photos, s.recordToPhoto(record))
	}
	return photos, nil
}

// Associate reassigns the owning coffee date for each photo independently;
// there is no atomicity across the batch.
func (s *photoService) Associate(ctx context.Context, photoIDs []string, coffeeDateID string) error {
	if strings.TrimSpace(coffeeDateID) == "" {
		return domain.NewValidationError("coffeeDateId", "coffee date ID is required")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, photoID := range photoIDs {
		photoID := photoID
		g.Go(func() error {
			return s.store.UpdateItem(gctx, s.photosTable, entities.PhotoPK(photoID), entities.MetadataSK, map[string]any{
				"coffeeDateId": coffeeDateID,
				"GSI1PK":       entities.PhotoGSI1PK(coffeeDateID),
			})
		})
	}
	return g.Wait()
}

// RegenerateThumbnail rebuilds the thumbnail for a stored original. Backfill
// path; normal uploads produce their thumbnail inline.
func (s *photoService) RegenerateThumbnail(ctx context.Context, s3Key string) (string, error) {
	if strings.TrimSpace(s3Key) == "" {
		return "", domain.NewValidationError("s3Key", "S3 key is required")
	}

	original, err := s.s3.GetFile(ctx, s3Key)
	if err != nil {
		return "", err
	}

	thumbnail, err := s.thumbnailer.Resize(original, thumbnailWidth, thumbnailHeight)
	if err != nil {
		return "", err
	}

	dir := strings.TrimPrefix(path.Dir(s3Key), "originals/")
	thumbnailKey := fmt.Sprintf("thumbnails/%s/thumb-%s", dir, path.Base(s3Key))
	if err := s.s3.PutFile(ctx, thumbnailKey, thumbnail, "image/jpeg"); err != nil {
		return "", err
	}
	return thumbnailKey, nil
}

func (s *photoService) getRecord(ctx context.Context, photoID string) (entities.PhotoRecord, error) {
	var record entities.PhotoRecord
	if strings.TrimSpace(photoID) == "" {
		return record, domain.NewValidationError("photoId", "photo ID is required")
	}

	item, err := s.store.GetItem(ctx, s.photosTable, entities.PhotoPK(photoID), entities.MetadataSK)
	if err != nil {
		return record, err
	}
	if item == nil {
		return record, domain.ErrPhotoNotFound
	}
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return record, &domain.DataAccessError{Op: "UnmarshalMap", Table: s.photosTable, Err: err}
	}
	return record, nil
}

func (s *photoService) recordToPhoto(record entities.PhotoRecord) domain.PhotoResponse {
	thumbnailURL := s.s3.PublicURL(record.S3Key)
	if record.ThumbnailS3Key != "" {
		thumbnailURL = s.s3.PublicURL(record.ThumbnailS3Key)
	}

	uploadedAt, _ := time.Parse(time.RFC3339, record.UploadedAt)

	return domain.PhotoResponse{
		ID:           record.ID,
		CoffeeDateID: record.CoffeeDateID,
		S3Key:        record.S3Key,
		S3URL:        s.s3.PublicURL(record.S3Key),
		ThumbnailURL: thumbnailURL,
		Filename:     record.Filename,
		ContentType:  record.ContentType,
		Size:         record.Size,
		UploadedAt:   uploadedAt,
	}
}

func validateFile(f domain.FileUpload, index int) error {
	if f.Filename == "" {
		return domain.NewValidationError(fmt.Sprintf("files[%d]", index), "file is required")
	}
	if f.Size > MaxFileSize {
		return domain.NewValidationError(
			fmt.Sprintf("files[%d].size", index),
			"file size must be less than %dMB", MaxFileSize/(1024*1024),
		)
	}
	if !slices.Contains(storage.AllowImage, f.ContentType) {
		return domain.NewValidationError(
			fmt.Sprintf("files[%d].contentType", index),
			"file type must be one of: %s", strings.Join(storage.AllowImage, ", "),
		)
	}
	return nil
}
