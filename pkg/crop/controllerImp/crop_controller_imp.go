package controllerImp

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"farmwise/entities"
	cropRepo "farmwise/pkg/crop/repository"
	"farmwise/pkg/patch"
)

var validate = validator.New()

var cropMutable = []string{"name", "image_url", "planting_date", "current_stage", "health_status"}

type CropCtrl struct{ repo cropRepo.CropRepository }

func New(repo cropRepo.CropRepository) *CropCtrl { return &CropCtrl{repo} }

type createReq struct {
	UserID       string  `json:"user_id" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	ImageURL     *string `json:"image_url"`
	PlantingDate *string `json:"planting_date"`
}

type patchReq struct {
	Name         *string `json:"name"`
	ImageURL     *string `json:"image_url"`
	PlantingDate *string `json:"planting_date"`
	CurrentStage *string `json:"current_stage"`
	HealthStatus *string `json:"health_status"`
}

// parseDate accepts RFC3339 or a bare YYYY-MM-DD day.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (h *CropCtrl) Create(c echo.Context) error {
	if h.repo == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid json"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "user_id is required"})
	}
	cr := &entities.Crop{UserID: req.UserID, Name: req.Name, ImageURL: req.ImageURL}
	if req.PlantingDate != nil && *req.PlantingDate != "" {
		pd, err := parseDate(*req.PlantingDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid planting_date"})
		}
		cr.PlantingDate = &pd
	}
	if err := h.repo.Create(cr); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, cr)
}

func (h *CropCtrl) ListByUser(c echo.Context) error {
	if h.repo == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	out, err := h.repo.ListByUser(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CropCtrl) Get(c echo.Context) error {
	if h.repo == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	cr, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Crop not found"})
	}
	return c.JSON(http.StatusOK, cr)
}

func (h *CropCtrl) Update(c echo.Context) error {
	if h.repo == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	var req patchReq
	if err := patch.Decode(body, cropMutable, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
	}
	p := cropRepo.CropPatch{
		Name:         req.Name,
		ImageURL:     req.ImageURL,
		CurrentStage: req.CurrentStage,
		HealthStatus: req.HealthStatus,
	}
	if req.PlantingDate != nil && *req.PlantingDate != "" {
		pd, err := parseDate(*req.PlantingDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid planting_date"})
		}
		p.PlantingDate = &pd
	}
	cr, err := h.repo.Update(c.Param("id"), p)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Crop not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, cr)
}

func (h *CropCtrl) Delete(c echo.Context) error {
	if h.repo == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	if err := h.repo.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Crop not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Crop deleted successfully"})
}
