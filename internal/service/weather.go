package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"
)

const (
	defaultWeatherTimeout = 5 * time.Second
	// DefaultWeatherRefreshInterval is used by Run when given a non positive interval.
	DefaultWeatherRefreshInterval = 15 * time.Minute
)

type Weather struct {
	Temperature string
	Description string
	Humidity    string
	City        string
	FetchedAt   time.Time
}

// wttrResponse is the subset of the wttr.in j1 format we read.
type wttrResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		Humidity    string `json:"humidity"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
}

// WeatherService serves the current weather of the company city. The last good reading is
// cached and kept fresh by Run.
type WeatherService struct {
	client  *http.Client
	baseURL string
	city    string

	mu     sync.RWMutex
	cached *Weather
}

func NewWeatherService(baseURL, city string, timeout time.Duration) *WeatherService {
	if timeout <= 0 {
		timeout = defaultWeatherTimeout
	}
	return &WeatherService{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		city:    city,
	}
}

// Current returns the cached reading, fetching one when the cache is empty.
func (w *WeatherService) Current(ctx context.Context) (*Weather, error) {
	w.mu.RLock()
	cached := w.cached
	w.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	weather, err := w.Refresh(ctx)
	if err != nil {
		return nil, NewErrWeatherUnavailable(err)
	}
	return weather, nil
}

// Refresh fetches a new reading and caches it. The cache is left untouched on failure.
func (w *WeatherService) Refresh(ctx context.Context) (*Weather, error) {
	weather, err := w.fetch(ctx)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.cached = weather
	w.mu.Unlock()
	return weather, nil
}

func (w *WeatherService) fetch(ctx context.Context) (*Weather, error) {
	endpoint := fmt.Sprintf("%s/%s?format=j1", w.baseURL, url.PathEscape(w.city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider answered %s", resp.Status)
	}

	var body wttrResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode weather: %w", err)
	}
	if len(body.CurrentCondition) == 0 {
		return nil, errors.New("weather provider returned no current condition")
	}

	cond := body.CurrentCondition[0]
	weather := &Weather{
		Temperature: cond.TempC,
		Humidity:    cond.Humidity,
		City:        w.city,
		FetchedAt:   time.Now(),
	}
	if len(cond.WeatherDesc) > 0 {
		weather.Description = cond.WeatherDesc[0].Value
	}
	return weather, nil
}

// Run refreshes the cache around every interval until ctx is done.
func (w *WeatherService) Run(ctx context.Context, interval time.Duration) {
	logger := zap.S().Named("weather")

	if interval <= 0 {
		logger.Warnw("invalid weather refresh interval, using default", "interval", interval, "default", DefaultWeatherRefreshInterval)
		interval = DefaultWeatherRefreshInterval
	}

	if _, err := w.Refresh(ctx); err != nil {
		logger.Warnw("failed to fetch weather", "error", err)
	}

	ticker := jitterbug.New(interval, &jitterbug.Norm{Stdev: interval / 10})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.Refresh(ctx); err != nil {
				logger.Warnw("failed to refresh weather", "error", err)
			}
		}
	}
}
