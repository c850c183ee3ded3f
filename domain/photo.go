package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessUploadPhotos    = "photos uploaded successfully"
	MessageSuccessDeletePhoto     = "photo deleted successfully"
	MessageSuccessGetPhotos       = "photos retrieved successfully"
	MessageSuccessAssociatePhotos = "photos associated successfully"

	MessageFailedUploadPhotos    = "failed to upload photos"
	MessageFailedDeletePhoto     = "failed to delete photo"
	MessageFailedGetPhotos       = "failed to retrieve photos"
	MessageFailedAssociatePhotos = "failed to associate photos"

	ErrPhotoNotFound = errors.New("photo not found")
	ErrNoFiles       = errors.New("at least one file is required")
)

type (
	// FileUpload carries one uploaded file, fully read by the handler so the
	// service can validate the whole batch before touching storage.
	FileUpload struct {
		Filename    string
		ContentType string
		Size        int64
		Data        []byte
	}

	AssociatePhotosRequest struct {
		PhotoIDs     []string `json:"photoIds" validate:"required,min=1,dive,required"`
		CoffeeDateID string   `json:"coffeeDateId" validate:"required"`
	}

	PhotoResponse struct {
		ID           string    `json:"id"`
		CoffeeDateID string    `json:"coffeeDateId,omitempty"`
		S3Key        string    `json:"s3Key"`
		S3URL        string    `json:"s3Url"`
		ThumbnailURL string    `json:"thumbnailUrl"`
		Filename     string    `json:"filename"`
		ContentType  string    `json:"contentType"`
		Size         int64     `json:"size"`
		UploadedAt   time.Time `json:"uploadedAt"`
	}
)
