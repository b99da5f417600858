package controllerImp

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"farmwise/pkg/weather"
)

type WeatherCtrl struct{ client *weather.Client }

func New(client *weather.Client) *WeatherCtrl { return &WeatherCtrl{client} }

func (h *WeatherCtrl) Current(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.Param("lat"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid lat"})
	}
	lon, err := strconv.ParseFloat(c.Param("lon"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid lon"})
	}
	snap, err := h.client.Current(lat, lon)
	if err != nil {
		log.Printf("[weather] %v", err)
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Weather data not available"})
	}
	return c.JSON(http.StatusOK, snap)
}
