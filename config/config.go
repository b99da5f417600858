package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port      string
	DBPath    string
	UploadDir string

	WeatherAPIKey  string
	WeatherBaseURL string

	LLMEndpoint        string
	LLMAPIKey          string
	LLMModel           string
	LLMVisionModel     string
	TranscribeModel    string
	TranscribeFallback string

	EmbEndpoint string
	EmbAPIKey   string
	EmbModel    string

	StageConfigCSV  string
	StageConfigXLSX string

	KBAllowedDomains []string
	KBMaxBytes       int

	CORSOrigins []string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:      get("PORT", "8080"),
		DBPath:    get("DB_PATH", "farmwise.db"),
		UploadDir: get("UPLOAD_DIR", "uploads"),

		WeatherAPIKey:  get("WEATHERAPI_KEY", ""),
		WeatherBaseURL: get("WEATHERAPI_BASE_URL", "https://api.weatherapi.com"),

		LLMEndpoint:        get("LLM_ENDPOINT", "https://api.openai.com"),
		LLMAPIKey:          get("OPENAI_API_KEY", get("LLM_API_KEY", "")),
		LLMModel:           get("LLM_MODEL", "gpt-4o"),
		LLMVisionModel:     get("LLM_VISION_MODEL", "gpt-4o"),
		TranscribeModel:    get("TRANSCRIBE_MODEL", "whisper-1"),
		TranscribeFallback: get("TRANSCRIBE_FALLBACK_MODEL", "gpt-4o-mini-transcribe"),

		EmbEndpoint: get("EMB_ENDPOINT", ""),
		EmbAPIKey:   get("EMB_API_KEY", ""),
		EmbModel:    get("EMB_MODEL", "text-embedding-3-small"),

		StageConfigCSV:  get("STAGE_CONFIG_CSV", ""),
		StageConfigXLSX: get("STAGE_CONFIG_XLSX", ""),

		KBAllowedDomains: splitList(get("KB_ALLOWED_DOMAINS", "")),
		KBMaxBytes:       atoiOr(get("KB_MAX_BYTES_PER_PAGE", ""), 1500000),

		CORSOrigins: splitList(get("CORS_ORIGINS", "*")),
	}
	log.Printf("[cfg] port=%s db=%s uploads=%s weather_key=%v llm_key=%v",
		cfg.Port, cfg.DBPath, cfg.UploadDir, cfg.WeatherAPIKey != "", cfg.LLMAPIKey != "")
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
