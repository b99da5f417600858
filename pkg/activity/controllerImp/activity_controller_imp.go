package controllerImp

import (
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"farmwise/entities"
	"farmwise/pkg/activity/repository"
	cropRepo "farmwise/pkg/crop/repository"
)

var validate = validator.New()

type ActivityCtrl struct {
	repo  repository.ActivityRepository
	crops cropRepo.CropRepository
}

func New(repo repository.ActivityRepository, crops cropRepo.CropRepository) *ActivityCtrl {
	return &ActivityCtrl{repo: repo, crops: crops}
}

type createReq struct {
	CropID      string  `json:"crop_id" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=watering fertilizer pesticide harvesting planting observation"`
	Description string  `json:"description" validate:"required"`
	Date        *string `json:"date"`
	Quantity    *string `json:"quantity"`
	Notes       *string `json:"notes"`
	ImageURL    *string `json:"image_url"`
}

func (h *ActivityCtrl) Create(c echo.Context) error {
	if h.repo == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid json"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "crop_id, type and description are required; type must be one of watering|fertilizer|pesticide|harvesting|planting|observation"})
	}
	a := &entities.Activity{
		CropID:      req.CropID,
		Type:        req.Type,
		Description: req.Description,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
		ImageURL:    req.ImageURL,
	}
	if req.Date != nil && *req.Date != "" {
		d, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			d, err = time.Parse("2006-01-02", *req.Date)
		}
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid date"})
		}
		a.Date = d
	}
	if err := h.repo.Create(a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
	}

	// Second, independent write. No foreign-key check: an unknown crop id
	// matches zero rows and the stamp is simply lost.
	if err := h.crops.TouchLastActivity(req.CropID, time.Now().UTC()); err != nil {
		log.Printf("[activity] touch last_activity crop=%s: %v", req.CropID, err)
	}

	return c.JSON(http.StatusOK, a)
}

func (h *ActivityCtrl) ListByCrop(c echo.Context) error {
	if h.repo == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	out, err := h.repo.ListByCrop(c.Param("crop_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
