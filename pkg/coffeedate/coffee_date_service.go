package coffeedate

import (
	"context"
	"strings"
	"time"

	"coffee-chronicles/domain"
	"coffee-chronicles/entities"
	"coffee-chronicles/internal/utils"
	"coffee-chronicles/pkg/dynamo"
	"coffee-chronicles/pkg/photo"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"
)

type (
	CoffeeDateService interface {
		// GetAll returns every coffee date, newest visit first.
		GetAll(ctx context.Context) ([]domain.CoffeeDateResponse, error)
		// GetByID returns nil without error when the coffee date does not exist.
		GetByID(ctx context.Context, id string) (*domain.CoffeeDateResponse, error)
		Create(ctx context.Context, req domain.CreateCoffeeDateRequest) (domain.CoffeeDateResponse, error)
		Update(ctx context.Context, id string, req domain.UpdateCoffeeDateRequest) (domain.CoffeeDateResponse, error)
		Delete(ctx context.Context, id string) error
		AddPhotos(ctx context.Context, id string, photoIDs []string) error
	}

	coffeeDateService struct {
		store            dynamo.Store
		photoService     photo.PhotoService
		coffeeDatesTable string
	}
)

func NewCoffeeDateService(store dynamo.Store, photoService photo.PhotoService, coffeeDatesTable string) CoffeeDateService {
	return &coffeeDateService{
		store:            store,
		photoService:     photoService,
		coffeeDatesTable: coffeeDatesTable,
	}
}

func (s *coffeeDateService) GetAll(ctx context.Context) ([]domain.CoffeeDateResponse, error) {
	items, err := s.store.QueryIndex(ctx, s.coffeeDatesTable, dynamo.GSI1, entities.CoffeeDatesGSI1PK, "", false)
	if err != nil {
		return nil, err
	}

	// One photo lookup per record. Fine at scrapbook scale.
	coffeeDates := make([]domain.CoffeeDateResponse, 0, len(items))
	for _, item := range items {
		var record entities.CoffeeDateRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, &domain.DataAccessError{Op: "UnmarshalMap", Table: s.coffeeDatesTable, Err: err}
		}
		composed, err := s.compose(ctx, record)
		if err != nil {
			return nil, err
		}
		coffeeDates = append(coffeeDates, composed)
	}
	return coffeeDates, nil
}

func (s *coffeeDateService) GetByID(ctx context.Context, id string) (*domain.CoffeeDateResponse, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	composed, err := s.compose(ctx, *record)
	if err != nil {
		return nil, err
	}
	return &composed, nil
}

// Create persists the coffee date with no photos attached; callers attach
// photos afterwards via AddPhotos.
func (s *coffeeDateService) Create(ctx context.Context, req domain.CreateCoffeeDateRequest) (domain.CoffeeDateResponse, error) {
	if err := validateCafeInfo(req.CafeInfo); err != nil {
		return domain.CoffeeDateResponse{}, err
	}
	if err := validateRatings(req.Ratings); err != nil {
		return domain.CoffeeDateResponse{}, err
	}
	visitDate, err := utils.ParseDate(req.VisitDate, "visitDate")
	if err != nil {
		return domain.CoffeeDateResponse{}, err
	}
	// Normalize to UTC so the GSI1SK string sort stays chronological across
	// client timezone offsets.
	visitDate = visitDate.UTC()

	id := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339)

	record := entities.CoffeeDateRecord{
		PK:             entities.CoffeeDatePK(id),
		SK:             entities.MetadataSK,
		GSI1PK:         entities.CoffeeDatesGSI1PK,
		GSI1SK:         visitDate.Format(time.RFC3339),
		ID:             id,
		CafeInfo:       req.CafeInfo,
		PhotoIDs:       []string{},
		PrimaryPhotoID: "",
		Ratings:        req.Ratings,
		VisitDate:      visitDate.Format(time.RFC3339),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.PutItem(ctx, s.coffeeDatesTable, record); err != nil {
		return domain.CoffeeDateResponse{}, err
	}

	return s.compose(ctx, record)
}

// Update writes only the supplied fields. A visit-date change also rewrites
// the listing sort key; the two writes land in one UpdateItem call.
func (s *coffeeDateService) Update(ctx context.Context, id string, req domain.UpdateCoffeeDateRequest) (domain.CoffeeDateResponse, error) {
	if req.CafeInfo == nil && req.Ratings == nil && req.VisitDate == "" && req.PrimaryPhotoID == "" {
		return domain.CoffeeDateResponse{}, domain.NewValidationError("", "at least one field must be provided for update")
	}

	record, err := s.getRecord(ctx, id)
	if err != nil {
		return domain.CoffeeDateResponse{}, err
	}
	if record == nil {
		return domain.CoffeeDateResponse{}, domain.ErrCoffeeDateNotFound
	}

	changes := map[string]any{
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
	}

	if req.CafeInfo != nil {
		if err := validateCafeInfo(*req.CafeInfo); err != nil {
			return domain.CoffeeDateResponse{}, err
		}
		changes["cafeInfo"] = *req.CafeInfo
	}
	if req.Ratings != nil {
		if err := validateRatings(*req.Ratings); err != nil {
			return domain.CoffeeDateResponse{}, err
		}
		changes["ratings"] = *req.Ratings
	}
	if req.VisitDate != "" {
		visitDate, err := utils.ParseDate(req.VisitDate, "visitDate")
		if err != nil {
			return domain.CoffeeDateResponse{}, err
		}
		normalized := visitDate.UTC().Format(time.RFC3339)
		changes["visitDate"] = normalized
		changes["GSI1SK"] = normalized
	}
	if req.PrimaryPhotoID != "" {
		changes["primaryPhotoId"] = req.PrimaryPhotoID
	}

	if err := s.store.UpdateItem(ctx, s.coffeeDatesTable, entities.CoffeeDatePK(id), entities.MetadataSK, changes); err != nil {
		return domain.CoffeeDateResponse{}, err
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.CoffeeDateResponse{}, err
	}
	if updated == nil {
		return domain.CoffeeDateResponse{}, domain.ErrCoffeeDateNotFound
	}
	return *updated, nil
}

// Delete cascades to the owned photos first, blobs included, so a failure
// mid-cascade leaves an orphaned parent rather than photos referencing a
// deleted coffee date. A failed cascade is retried by calling Delete again.
func (s *coffeeDateService) Delete(ctx context.Context, id string) error {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrCoffeeDateNotFound
	}

	photos, err := s.photoService.ListByCoffeeDate(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range photos {
		if err := s.photoService.Delete(ctx, p.ID); err != nil {
			return err
		}
	}

	return s.store.DeleteItem(ctx, s.coffeeDatesTable, entities.CoffeeDatePK(id), entities.MetadataSK)
}

// AddPhotos appends to the stored photo-id list and promotes the first added
// photo to primary when none is set. Read-modify-write without a version
// check; concurrent callers can lose an update.
func (s *coffeeDateService) AddPhotos(ctx context.Context, id string, photoIDs []string) error {
	if len(photoIDs) == 0 {
		return nil
	}

	record, err := s.getRecord(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrCoffeeDateNotFound
	}

	updatedPhotoIDs := append(record.PhotoIDs, photoIDs...)
	primaryPhotoID := record.PrimaryPhotoID
	if primaryPhotoID == "" {
		primaryPhotoID = photoIDs[0]
	}

	return s.store.UpdateItem(ctx, s.coffeeDatesTable, entities.CoffeeDatePK(id), entities.MetadataSK, map[string]any{
		"photoIds":       updatedPhotoIDs,
		"primaryPhotoId": primaryPhotoID,
		"updatedAt":      time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *coffeeDateService) getRecord(ctx context.Context, id string) (*entities.CoffeeDateRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "coffee date ID is required")
	}

	item, err := s.store.GetItem(ctx, s.coffeeDatesTable, entities.CoffeeDatePK(id), entities.MetadataSK)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var record entities.CoffeeDateRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, &domain.DataAccessError{Op: "UnmarshalMap", Table: s.coffeeDatesTable, Err: err}
	}
	return &record, nil
}

func (s *coffeeDateService) compose(ctx context.Context, record entities.CoffeeDateRecord) (domain.CoffeeDateResponse, error) {
	photos, err := s.photoService.ListByCoffeeDate(ctx, record.ID)
	if err != nil {
		return domain.CoffeeDateResponse{}, err
	}

	visitDate, _ := time.Parse(time.RFC3339, record.VisitDate)
	createdAt, _ := time.Parse(time.RFC3339, record.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, record.UpdatedAt)

	return domain.CoffeeDateResponse{
		ID:             record.ID,
		CafeInfo:       record.CafeInfo,
		Photos:         photos,
		PrimaryPhotoID: record.PrimaryPhotoID,
		Ratings:        record.Ratings,
		VisitDate:      visitDate,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

func validateCafeInfo(cafeInfo entities.CafeInfo) error {
	if strings.TrimSpace(cafeInfo.Name) == "" {
		return domain.NewValidationError("cafeInfo.name", "cafe name is required")
	}
	return utils.CheckStringLength(cafeInfo.Name, "cafeInfo.name", 1, 200)
}

func validateRatings(ratings entities.Ratings) error {
	if err := utils.CheckRating(ratings.Coffee, "ratings.coffee"); err != nil {
		return err
	}
	if ratings.Dessert != nil {
		return utils.CheckRating(*ratings.Dessert, "ratings.dessert")
	}
	return nil
}
