// pkg/ai/openai_client.go

package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"farmwise/pkg/weather"
)

type openAI struct {
	endpoint        string
	key             string
	model           string
	visionModel     string
	transcribeModel string
	transcribeFallb string
	httpc           *http.Client
}

type Option func(*openAI)

func WithModels(chat, vision, transcribe, transcribeFallback string) Option {
	return func(c *openAI) {
		if chat != "" {
			c.model = chat
		}
		if vision != "" {
			c.visionModel = vision
		}
		if transcribe != "" {
			c.transcribeModel = transcribe
		}
		if transcribeFallback != "" {
			c.transcribeFallb = transcribeFallback
		}
	}
}

func NewOpenAI(endpoint, key string, opts ...Option) Client {
	c := &openAI{
		endpoint:        strings.TrimRight(endpoint, "/"),
		key:             key,
		model:           "gpt-4o",
		visionModel:     "gpt-4o",
		transcribeModel: "whisper-1",
		transcribeFallb: "gpt-4o-mini-transcribe",
		// default transport timeout; long generations are the norm here
		httpc: &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *openAI) Enabled() bool { return true }

func (c *openAI) chatCompletion(model string, messages []map[string]any, maxTokens int) (string, error) {
	reqBody := map[string]any{
		"model":       model,
		"messages":    messages,
		"max_tokens":  maxTokens,
		"temperature": 0.7,
	}
	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", c.endpoint+"/v1/chat/completions", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("chat completion status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion")
	}
	return content, nil
}

func (c *openAI) Advise(cropName string, location map[string]any, w *weather.Snapshot, stageHint, kbCtx string) string {
	messages := []map[string]any{
		{"role": "system", "content": "You are an expert agricultural advisor specializing in Kerala, India farming practices. Provide practical, actionable advice for farmers."},
		{"role": "user", "content": renderAdvicePrompt(cropName, location, w, stageHint, kbCtx)},
	}
	out, err := c.chatCompletion(c.model, messages, 1000)
	if err != nil {
		log.Printf("[ai] advice: %v", err)
		return adviseFallback
	}
	return out
}

func (c *openAI) Identify(imageB64 string) string {
	messages := []map[string]any{
		{"role": "system", "content": "You are an expert in crop identification, especially for Kerala, India agriculture. Identify crops accurately from images."},
		{"role": "user", "content": []map[string]any{
			{"type": "text", "text": "Please identify this crop. If it's a crop commonly grown in Kerala, India, provide the name and brief growing information. If uncertain, provide your best guess with confidence level."},
			{"type": "image_url", "image_url": map[string]string{"url": "data:image/jpeg;base64," + imageB64}},
		}},
	}
	out, err := c.chatCompletion(c.visionModel, messages, 500)
	if err != nil {
		log.Printf("[ai] identify: %v", err)
		return identifyFallback
	}
	return out
}

func (c *openAI) Chat(message, cropCtx, imageB64 string, wordLimit int) (string, error) {
	if wordLimit <= 0 {
		wordLimit = 50
	}
	system := fmt.Sprintf("You are FarmWise AI, an expert agricultural assistant for Kerala farmers. Always respond in %d words or less. Speak directly to farmers using 'you'. Provide concise, practical advice without asterisks, bullet points, or special formatting.", wordLimit)
	text := fmt.Sprintf("%s\n\nFarmer's question: %s\n\nIMPORTANT: Respond in exactly %d words or less. Speak directly to the farmer using 'you'. NO asterisks, bullet points, or special formatting.", cropCtx, message, wordLimit)

	messages := []map[string]any{{"role": "system", "content": system}}
	if imageB64 != "" {
		messages = append(messages, map[string]any{"role": "user", "content": []map[string]any{
			{"type": "text", "text": text},
			{"type": "image_url", "image_url": map[string]string{"url": "data:image/jpeg;base64," + imageB64}},
		}})
	} else {
		messages = append(messages, map[string]any{"role": "user", "content": text})
	}

	out, err := c.chatCompletion(c.visionModel, messages, 100)
	if err != nil {
		return "", err
	}
	return StripFormatting(out), nil
}

// StripFormatting removes the literal markdown markers the chat contract
// forbids in replies.
func StripFormatting(s string) string {
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "#", "")
	return strings.TrimSpace(s)
}

func (c *openAI) Transcribe(filename string, data []byte) (string, error) {
	if filename == "" {
		filename = "audio.webm"
	}
	text, err := c.transcribeOnce(c.transcribeModel, filename, data)
	if err != nil {
		log.Printf("[ai] transcribe with %s failed, falling back to %s: %v", c.transcribeModel, c.transcribeFallb, err)
		text, err = c.transcribeOnce(c.transcribeFallb, filename, data)
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *openAI) transcribeOnce(model, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("model", model); err != nil {
		return "", err
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, _ := http.NewRequest("POST", c.endpoint+"/v1/audio/transcriptions", &buf)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("transcription status %d: %s", resp.StatusCode, string(b))
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Text, nil
}

func renderAdvicePrompt(cropName string, location map[string]any, w *weather.Snapshot, stageHint, kbCtx string) string {
	str := func(k, def string) string {
		if location != nil {
			if v, ok := location[k].(string); ok && v != "" {
				return v
			}
		}
		return def
	}
	locationCtx := fmt.Sprintf("Location: %s, %s", str("district", "Kerala"), str("taluk", ""))

	weatherCtx := ""
	if w != nil {
		weatherCtx = fmt.Sprintf("Current weather: %s, Temperature: %g, Humidity: %d, Wind: %g, Datetime: %s, Name: %s",
			w.Weather, w.Temperature, w.Humidity, w.Wind, w.Datetime, w.Name)
	}
	stageCtx := ""
	if stageHint != "" {
		stageCtx = "Expected growth stage: " + stageHint
	}
	kbNotes := ""
	if kbCtx != "" {
		kbNotes = "Reference notes:\n" + kbCtx
	}

	return fmt.Sprintf(`As an agricultural expert for Kerala, India, provide specific advice for %s cultivation.

%s
%s
%s
%s

Please provide:
1. Current care recommendations for %s
2. Seasonal considerations for Kerala climate
3. Common issues to watch for
4. Best practices for this region

Keep advice practical and focused on Kerala farming conditions.
Dont use #### in the response instead use some basic icons.`,
		cropName, locationCtx, weatherCtx, stageCtx, kbNotes, cropName)
}
