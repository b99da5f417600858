// pkg/weather/client.go

package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Snapshot is the fixed shape returned to callers regardless of provider quirks.
type Snapshot struct {
	Weather     string  `json:"weather"`
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	Wind        float64 `json:"wind"`
	Datetime    string  `json:"datetime"`
	Name        string  `json:"name"`
}

// AsMap shapes the snapshot for storage in a free-form weather_data column.
func (s *Snapshot) AsMap() map[string]any {
	if s == nil {
		return map[string]any{}
	}
	return map[string]any{
		"weather":     s.Weather,
		"temperature": s.Temperature,
		"humidity":    s.Humidity,
		"wind":        s.Wind,
		"datetime":    s.Datetime,
		"name":        s.Name,
	}
}

type Client struct {
	baseURL string
	key     string
	httpc   *http.Client
}

func New(baseURL, key string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Current fetches current conditions for a coordinate pair. Any failure
// (missing key, network, non-2xx, malformed payload) comes back as an error;
// callers treat it as soft-missing weather, never a hard failure.
func (c *Client) Current(lat, lon float64) (*Snapshot, error) {
	if c.key == "" {
		return nil, errors.New("WEATHERAPI_KEY not configured")
	}

	q := url.Values{}
	q.Set("key", c.key)
	q.Set("q", fmt.Sprintf("%g,%g", lat, lon))
	q.Set("aqi", "no")

	resp, err := c.httpc.Get(c.baseURL + "/v1/current.json?" + q.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("weather api status %d", resp.StatusCode)
	}

	var out struct {
		Location struct {
			Name      string `json:"name"`
			Localtime string `json:"localtime"`
		} `json:"location"`
		Current struct {
			TempC     float64 `json:"temp_c"`
			Humidity  int     `json:"humidity"`
			WindKph   float64 `json:"wind_kph"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	s := &Snapshot{
		Weather:     out.Current.Condition.Text,
		Temperature: out.Current.TempC,
		Humidity:    out.Current.Humidity,
		Wind:        out.Current.WindKph,
		Datetime:    out.Location.Localtime,
		Name:        out.Location.Name,
	}
	if s.Datetime == "" {
		s.Datetime = time.Now().UTC().Format(time.RFC3339)
	}
	return s, nil
}
