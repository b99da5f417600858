package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	userCtrl interface {
		Create(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
	},
	cropCtrl interface {
		Create(echo.Context) error
		ListByUser(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
	},
	activityCtrl interface {
		Create(echo.Context) error
		ListByCrop(echo.Context) error
	},
	aiCtrl interface {
		Advice(echo.Context) error
		AdviceHistory(echo.Context) error
		Identify(echo.Context) error
		Chat(echo.Context) error
		Transcribe(echo.Context) error
	},
	weatherCtrl interface{ Current(echo.Context) error },
	uploadCtrl interface {
		UploadImage(echo.Context) error
		UploadAndIdentify(echo.Context) error
	},
	kbCtrl interface {
		IngestText(echo.Context) error
		IngestURL(echo.Context) error
		Search(echo.Context) error
	},
	calendarCtrl interface{ Get(echo.Context) error },
	healthCtrl interface {
		Root(echo.Context) error
		Health(echo.Context) error
		Demo(echo.Context) error
	},
) *echo.Echo {
	api := e.Group("/api")

	api.GET("/", healthCtrl.Root)
	api.GET("/health", healthCtrl.Health)
	api.GET("/demo", healthCtrl.Demo)

	api.POST("/users", userCtrl.Create)
	api.GET("/users/:id", userCtrl.Get)
	api.PUT("/users/:id", userCtrl.Update)

	api.POST("/crops", cropCtrl.Create)
	api.GET("/crops/:user_id", cropCtrl.ListByUser)
	api.GET("/crop/:id", cropCtrl.Get)
	api.PUT("/crop/:id", cropCtrl.Update)
	api.DELETE("/crop/:id", cropCtrl.Delete)
	api.GET("/crop/:id/calendar", calendarCtrl.Get)

	api.POST("/activities", activityCtrl.Create)
	api.GET("/activities/:crop_id", activityCtrl.ListByCrop)

	api.POST("/ai/advice/:crop", aiCtrl.Advice)
	api.GET("/ai/advice-history/:crop_id", aiCtrl.AdviceHistory)
	api.POST("/ai/identify-crop", aiCtrl.Identify)
	api.POST("/ai/chat", aiCtrl.Chat)
	api.POST("/ai/transcribe", aiCtrl.Transcribe)

	api.GET("/weather/:lat/:lon", weatherCtrl.Current)

	api.POST("/upload-image", uploadCtrl.UploadImage)
	api.POST("/upload-and-identify-crop", uploadCtrl.UploadAndIdentify)

	// KB endpoints
	api.POST("/kb/ingest", kbCtrl.IngestText)
	api.POST("/kb/ingest/url", kbCtrl.IngestURL)
	api.GET("/kb/search", kbCtrl.Search)

	return e
}
