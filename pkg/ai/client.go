// pkg/ai/client.go

package ai

import "farmwise/pkg/weather"

// Client is the advisory adapter: chat, vision and speech against a hosted
// model. Advise and Identify swallow failures and return canned text; Chat and
// Transcribe surface errors so handlers can answer 500.
type Client interface {
	Enabled() bool
	Advise(cropName string, location map[string]any, w *weather.Snapshot, stageHint, kbCtx string) string
	Identify(imageB64 string) string
	Chat(message, cropCtx, imageB64 string, wordLimit int) (string, error)
	Transcribe(filename string, data []byte) (string, error)
}

const (
	// Returned by every operation when no credential is configured. This is
	// the designed degraded mode, not an error path.
	MsgUnavailable = "AI features are currently unavailable. Please configure the OpenAI API key."

	adviseFallback   = "Unable to generate AI advice at this time. Please consult with local agricultural experts."
	identifyFallback = "Unable to identify crop from image."
)
