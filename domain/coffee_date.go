package domain

import (
	"errors"
	"time"

	"coffee-chronicles/entities"
)

var (
	MessageSuccessCreateCoffeeDate = "coffee date created successfully"
	MessageSuccessUpdateCoffeeDate = "coffee date updated successfully"
	MessageSuccessDeleteCoffeeDate = "coffee date deleted successfully"
	MessageSuccessGetCoffeeDates   = "coffee dates retrieved successfully"
	MessageSuccessAddPhotos        = "photos added successfully"

	MessageFailedCreateCoffeeDate = "failed to create coffee date"
	MessageFailedUpdateCoffeeDate = "failed to update coffee date"
	MessageFailedDeleteCoffeeDate = "failed to delete coffee date"
	MessageFailedGetCoffeeDates   = "failed to retrieve coffee dates"
	MessageFailedAddPhotos        = "failed to add photos to coffee date"

	ErrCoffeeDateNotFound = errors.New("coffee date not found")
)

type (
	CreateCoffeeDateRequest struct {
		CafeInfo  entities.CafeInfo `json:"cafeInfo" validate:"required"`
		Ratings   entities.Ratings  `json:"ratings" validate:"required"`
		VisitDate string            `json:"visitDate" validate:"required"`
	}

	UpdateCoffeeDateRequest struct {
		CafeInfo       *entities.CafeInfo `json:"cafeInfo,omitempty"`
		Ratings        *entities.Ratings  `json:"ratings,omitempty"`
		VisitDate      string             `json:"visitDate,omitempty"`
		PrimaryPhotoID string             `json:"primaryPhotoId,omitempty"`
	}

	AddPhotosRequest struct {
		PhotoIDs []string `json:"photoIds" validate:"required,min=1,dive,required"`
	}

	CoffeeDateResponse struct {
		ID             string            `json:"id"`
		CafeInfo       entities.CafeInfo `json:"cafeInfo"`
		Photos         []PhotoResponse   `json:"photos"`
		PrimaryPhotoID string            `json:"primaryPhotoId"`
		Ratings        entities.Ratings  `json:"ratings"`
		VisitDate      time.Time         `json:"visitDate"`
		CreatedAt      time.Time         `json:"createdAt"`
		UpdatedAt      time.Time         `json:"updatedAt"`
	}
)
