package main

import (
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"farmwise/config"
	"farmwise/database"
	"farmwise/router"

	// User
	userCtrlImp "farmwise/pkg/user/controllerImp"
	userRepo "farmwise/pkg/user/repository"
	userRepoImp "farmwise/pkg/user/repositoryImp"

	// Crop
	cropCtrlImp "farmwise/pkg/crop/controllerImp"
	cropRepo "farmwise/pkg/crop/repository"
	cropRepoImp "farmwise/pkg/crop/repositoryImp"

	// Activity
	actCtrlImp "farmwise/pkg/activity/controllerImp"
	actRepo "farmwise/pkg/activity/repository"
	actRepoImp "farmwise/pkg/activity/repositoryImp"

	// Advice history
	advRepo "farmwise/pkg/advice/repository"
	advRepoImp "farmwise/pkg/advice/repositoryImp"

	// Adapters
	"farmwise/pkg/ai"
	aiCtrlImp "farmwise/pkg/ai/controllerImp"
	"farmwise/pkg/weather"
	weatherCtrlImp "farmwise/pkg/weather/controllerImp"

	// Uploads
	uploadCtrlImp "farmwise/pkg/upload/controllerImp"

	// Calendar
	"farmwise/pkg/calendar"
	calCtrlImp "farmwise/pkg/calendar/controllerImp"

	// KB
	kbCtrlImp "farmwise/pkg/kb/controllerImp"
	kbEmbedder "farmwise/pkg/kb/embedder"
	kbRepoImp "farmwise/pkg/kb/repositoryImp"
	kbService "farmwise/pkg/kb/service"
	kbServiceImp "farmwise/pkg/kb/serviceImp"

	// Health
	healthCtrlImp "farmwise/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	// 2) DB (sqlite) + automigrate. A failure is not fatal: the server keeps
	// running with persistence endpoints answering 503.
	var db *gorm.DB
	if d, err := database.Open(cfg.DBPath); err != nil {
		log.Printf("[db] WARN: %v - persistence disabled, running degraded", err)
	} else {
		db = d
	}

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowCredentials: true,
	}))

	// Uploaded images are served back as static files.
	e.Static("/uploads", cfg.UploadDir)

	// 4) Growth-stage calendar rules
	rules, err := calendar.LoadFromFiles(cfg.StageConfigCSV, cfg.StageConfigXLSX)
	if err != nil {
		log.Printf("[calendar] rules warn: %v - using defaults", err)
		rules = calendar.Default()
	}

	// 5) LLM (mock fallback when no key configured)
	var llm ai.Client
	if cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey,
			ai.WithModels(cfg.LLMModel, cfg.LLMVisionModel, cfg.TranscribeModel, cfg.TranscribeFallback))
	} else {
		log.Printf("[ai] WARN: no API key configured - AI features disabled")
		llm = ai.NewMock()
	}

	// 6) Weather adapter
	wc := weather.New(cfg.WeatherBaseURL, cfg.WeatherAPIKey)

	// 7) Repos (nil when persistence is down) + KB wiring
	var (
		users userRepo.UserRepository
		crops cropRepo.CropRepository
		acts  actRepo.ActivityRepository
		advs  advRepo.AdviceRepository
		kbSvc kbService.KBService
	)
	if db != nil {
		users = userRepoImp.New(db)
		crops = cropRepoImp.New(db)
		acts = actRepoImp.New(db)
		advs = advRepoImp.New(db)

		emb := kbEmbedder.New(cfg.EmbEndpoint, cfg.EmbAPIKey, cfg.EmbModel)
		kbSvc = kbServiceImp.New(kbRepoImp.New(db), emb)
	}

	// 8) Controllers
	uCtrl := userCtrlImp.New(users)
	cCtrl := cropCtrlImp.New(crops)
	aCtrl := actCtrlImp.New(acts, crops)
	aiCtrl := aiCtrlImp.New(llm, wc, crops, users, advs, rules, kbSvc)
	wCtrl := weatherCtrlImp.New(wc)
	upCtrl := uploadCtrlImp.New(cfg.UploadDir, llm)
	kbCtrl := kbCtrlImp.New(kbSvc, cfg.KBAllowedDomains, cfg.KBMaxBytes)
	calCtrl := calCtrlImp.New(rules, crops)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, llm)

	// 9) Router + start
	r := router.New(e, uCtrl, cCtrl, aCtrl, aiCtrl, wCtrl, upCtrl, kbCtrl, calCtrl, hCtrl)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
