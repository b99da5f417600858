package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"farmwise/pkg/calendar"
	cropRepo "farmwise/pkg/crop/repository"
)

type CalendarCtrl struct {
	rules calendar.Rules
	crops cropRepo.CropRepository
}

func New(rules calendar.Rules, crops cropRepo.CropRepository) *CalendarCtrl {
	return &CalendarCtrl{rules: rules, crops: crops}
}

// Get answers the expected stage timeline for a crop from its planting date.
func (h *CalendarCtrl) Get(c echo.Context) error {
	if h.crops == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	cr, err := h.crops.FindByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Crop not found"})
	}
	if cr.PlantingDate == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "crop has no planting date"})
	}
	stage, note := h.rules.StageFor(*cr.PlantingDate, time.Now().UTC())
	return c.JSON(http.StatusOK, echo.Map{
		"crop_id":        cr.ID,
		"planting_date":  cr.PlantingDate,
		"expected_stage": stage,
		"stage_note":     note,
		"recorded_stage": cr.CurrentStage,
		"timeline":       h.rules.Timeline(*cr.PlantingDate),
	})
}
