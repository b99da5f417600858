package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"farmwise/pkg/ai"
)

var appStart = time.Now()

type HealthCtrl struct {
	db *gorm.DB // nil in degraded mode
	ai ai.Client
}

func NewHealthCtrl(db *gorm.DB, client ai.Client) *HealthCtrl {
	return &HealthCtrl{db: db, ai: client}
}

func (h *HealthCtrl) dbState() string {
	if h.db == nil {
		return "not configured"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 800*time.Millisecond)
	defer cancel()
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return "not configured"
	}
	return "connected"
}

func (h *HealthCtrl) aiState() string {
	if h.ai != nil && h.ai.Enabled() {
		return "available"
	}
	return "not configured"
}

func (h *HealthCtrl) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "FarmWise API is running",
		"database": h.dbState(),
	})
}

// Health always answers 200: a missing database is the designed degraded
// mode, not an outage.
func (h *HealthCtrl) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"database":   h.dbState(),
		"ai":         h.aiState(),
	})
}

// Demo serves sample payloads for clients exploring the API without a
// database behind it.
func (h *HealthCtrl) Demo(c echo.Context) error {
	if h.db != nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "Database is available - use regular endpoints"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"demo_mode": true,
		"message":   "Database not available - running in demo mode",
		"sample_user": echo.Map{
			"id":       "demo-user-123",
			"name":     "Demo Farmer",
			"location": echo.Map{"district": "Kerala", "taluk": "Demo Taluk"},
			"crops":    []string{"Rice", "Coconut", "Banana"},
		},
		"sample_crop": echo.Map{
			"id":            "demo-crop-456",
			"name":          "Rice",
			"current_stage": "vegetative",
			"health_status": "good",
		},
		"available_endpoints": []string{
			"/api/weather/{lat}/{lon}",
			"/api/ai/identify-crop (with image)",
			"/api/ai/chat",
			"/api/ai/advice/{crop_name} (with generic advice)",
		},
	})
}
