package handlers

import (
	"io"
	"mime/multipart"

	"coffee-chronicles/domain"
	"coffee-chronicles/internal/api/presenters"
	"coffee-chronicles/pkg/photo"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PhotoHandler interface {
		UploadPhotos(c *fiber.Ctx) error
		DeletePhoto(c *fiber.Ctx) error
		GetPhotos(c *fiber.Ctx) error
		AssociatePhotos(c *fiber.Ctx) error
	}

	photoHandler struct {
		photoService photo.PhotoService
		validator    *validator.Validate
	}
)

func NewPhotoHandler(photoService photo.PhotoService, validator *validator.Validate) PhotoHandler {
	return &photoHandler{
		photoService: photoService,
		validator:    validator,
	}
}

func (h *photoHandler) UploadPhotos(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPhotos, domain.ErrNoFiles)
	}

	coffeeDateID := c.FormValue("coffeeDateId")

	files := make([]domain.FileUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		upload, err := readUpload(fh)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPhotos, err)
		}
		files = append(files, upload)
	}

	photos, err := h.photoService.Upload(c.Context(), files, coffeeDateID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUploadPhotos, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"photos": photos}, fiber.StatusCreated, domain.MessageSuccessUploadPhotos)
}

func (h *photoHandler) DeletePhoto(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.photoService.Delete(c.Context(), id); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeletePhoto, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeletePhoto)
}

func (h *photoHandler) GetPhotos(c *fiber.Ctx) error {
	coffeeDateID := c.Query("coffee_date_id")

	photos, err := h.photoService.ListByCoffeeDate(c.Context(), coffeeDateID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetPhotos, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"photos": photos}, fiber.StatusOK, domain.MessageSuccessGetPhotos)
}

func (h *photoHandler) AssociatePhotos(c *fiber.Ctx) error {
	req := new(domain.AssociatePhotosRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAssociatePhotos, err)
	}

	if err := h.photoService.Associate(c.Context(), req.PhotoIDs, req.CoffeeDateID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedAssociatePhotos, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAssociatePhotos)
}

// readUpload pulls the whole file into memory so the service can validate the
// batch before any storage write. Uploads are capped at 10 MiB apiece.
func readUpload(fh *multipart.FileHeader) (domain.FileUpload, error) {
	file, err := fh.Open()
	if err != nil {
		return domain.FileUpload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.FileUpload{}, err
	}

	return domain.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        data,
	}, nil
}
