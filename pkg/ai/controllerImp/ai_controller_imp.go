package controllerImp

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"farmwise/entities"
	adviceRepo "farmwise/pkg/advice/repository"
	"farmwise/pkg/ai"
	"farmwise/pkg/calendar"
	cropRepo "farmwise/pkg/crop/repository"
	kbService "farmwise/pkg/kb/service"
	userRepo "farmwise/pkg/user/repository"
	"farmwise/pkg/weather"
)

// Default coordinates used for advice weather context (Thiruvananthapuram).
const (
	defaultLat = 8.5241
	defaultLon = 76.9366
)

const maxAudioBytes = 20 * 1024 * 1024

type AICtrl struct {
	client  ai.Client
	weather *weather.Client
	crops   cropRepo.CropRepository     // nil in degraded mode
	users   userRepo.UserRepository     // nil in degraded mode
	advice  adviceRepo.AdviceRepository // nil in degraded mode
	rules   calendar.Rules
	kb      kbService.KBService // nil in degraded mode
}

func New(client ai.Client, w *weather.Client, crops cropRepo.CropRepository, users userRepo.UserRepository, advice adviceRepo.AdviceRepository, rules calendar.Rules, kb kbService.KBService) *AICtrl {
	return &AICtrl{client: client, weather: w, crops: crops, users: users, advice: advice, rules: rules, kb: kb}
}

// Advice handles POST /ai/advice/:crop. The parameter is a crop name, or a
// crop id when persistence is available and the id resolves; resolution
// failures fall back to treating it as a bare name, so the endpoint never
// depends on the database.
func (h *AICtrl) Advice(c echo.Context) error {
	param := c.Param("crop")

	cropName := param
	location := map[string]any{"district": "Kerala"}
	stageHint := ""
	var resolved *entities.Crop

	if h.crops != nil {
		if cr, err := h.crops.FindByID(param); err == nil {
			resolved = cr
			cropName = cr.Name
			if cr.CurrentStage != "" {
				stageHint = cr.CurrentStage
			}
			if cr.PlantingDate != nil && h.rules != nil {
				expected, _ := h.rules.StageFor(*cr.PlantingDate, time.Now().UTC())
				stageHint = expected
			}
			if h.users != nil {
				if u, err := h.users.FindByID(cr.UserID); err == nil && len(u.Location) > 0 {
					location = u.Location
				}
			}
		}
	}

	// Weather is soft context; a failed lookup never fails the request.
	var snap *weather.Snapshot
	if h.weather != nil {
		if s, err := h.weather.Current(defaultLat, defaultLon); err == nil {
			snap = s
		} else {
			log.Printf("[ai] weather context: %v", err)
		}
	}

	kbCtx := ""
	if h.kb != nil {
		if chunks, err := h.kb.Search(cropName, 3); err == nil {
			var parts []string
			for _, ch := range chunks {
				parts = append(parts, ch.Text)
			}
			kbCtx = strings.Join(parts, "\n---\n")
		}
	}

	advice := h.client.Advise(cropName, location, snap, stageHint, kbCtx)

	if resolved != nil && h.advice != nil {
		rec := &entities.AdviceRecord{CropID: resolved.ID, AdviceText: advice, WeatherData: snap.AsMap()}
		if err := h.advice.Create(rec); err != nil {
			log.Printf("[ai] store advice record crop=%s: %v", resolved.ID, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"advice":  advice,
		"weather": snap,
		"note":    fmt.Sprintf("AI advice for %s", cropName),
	})
}

func (h *AICtrl) AdviceHistory(c echo.Context) error {
	if h.advice == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": "Database not available"})
	}
	out, err := h.advice.ListByCrop(c.Param("crop_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AICtrl) Identify(c echo.Context) error {
	if !h.client.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": ai.MsgUnavailable})
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "image file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Error identifying crop"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Error identifying crop"})
	}

	identification := h.client.Identify(base64.StdEncoding.EncodeToString(data))
	return c.JSON(http.StatusOK, echo.Map{"identification": identification})
}

type chatReq struct {
	Message     string `json:"message"`
	CropID      string `json:"crop_id"`
	ImageBase64 string `json:"image_base64"`
	WordLimit   int    `json:"word_limit"`
}

func (h *AICtrl) Chat(c echo.Context) error {
	if !h.client.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": ai.MsgUnavailable})
	}
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid json"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "message is required"})
	}

	// Crop context is best-effort and needs the database.
	cropCtx := ""
	if req.CropID != "" && h.crops != nil {
		if cr, err := h.crops.FindByID(req.CropID); err == nil {
			planted := "unknown date"
			if cr.PlantingDate != nil {
				planted = cr.PlantingDate.Format("2006-01-02")
			}
			cropCtx = fmt.Sprintf("The farmer is asking about their %s crop, planted on %s, current stage: %s.", cr.Name, planted, cr.CurrentStage)
		}
	}

	resp, err := h.client.Chat(req.Message, cropCtx, req.ImageBase64, req.WordLimit)
	if err != nil {
		log.Printf("[ai] chat: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Error processing chat message"})
	}
	return c.JSON(http.StatusOK, echo.Map{"response": resp})
}

func (h *AICtrl) Transcribe(c echo.Context) error {
	if !h.client.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": ai.MsgUnavailable})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "audio file is required"})
	}

	// Browsers sometimes omit the content type on Blob uploads; be permissive.
	ct := fh.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "audio/") && !strings.HasPrefix(ct, "video/") && ct != "application/octet-stream" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": fmt.Sprintf("Unsupported file type: %s", ct)})
	}
	if fh.Size > maxAudioBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"detail": "Audio file too large (max 20MB)"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Error transcribing audio"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Error transcribing audio"})
	}
	if len(data) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Received empty audio file"})
	}

	text, err := h.client.Transcribe(fh.Filename, data)
	if err != nil {
		log.Printf("[ai] transcribe: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "Error transcribing audio"})
	}
	return c.JSON(http.StatusOK, echo.Map{"text": text})
}
