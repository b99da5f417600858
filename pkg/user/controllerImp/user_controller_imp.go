package controllerImp

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"farmwise/entities"
	"farmwise/pkg/patch"
	"farmwise/pkg/user/repository"
)

var validate = validator.New()

// userMutable mirrors repository.UserPatch; keep the two in sync.
var userMutable = []string{"name", "phone", "location", "crops", "farm_size", "irrigation_type"}

type UserCtrl struct{ repo repository.UserRepository }

func New(repo repository.UserRepository) *UserCtrl { return &UserCtrl{repo} }

type createReq struct {
	Name     string         `json:"name" validate:"required"`
	Phone    *string        `json:"phone"`
	Location map[string]any `json:"location"`
}

func (h *UserCtrl) Create(c echo.Context) error {
	if h.repo == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid json"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "name is required"})
	}
	u := &entities.User{Name: req.Name, Phone: req.Phone, Location: req.Location}
	if err := h.repo.Create(u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserCtrl) Get(c echo.Context) error {
	if h.repo == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	u, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "User not found"})
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserCtrl) Update(c echo.Context) error {
	if h.repo == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	var p repository.UserPatch
	if err := patch.Decode(body, userMutable, &p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
	}
	u, err := h.repo.Update(c.Param("id"), p)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}
