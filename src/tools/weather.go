package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zephyrnotes/agent/src/sources"
)

// Reading is a single structured weather observation.
type Reading struct {
	Location  string  `json:"location"`
	Temp      float64 `json:"temp"`
	Condition string  `json:"condition,omitempty"`
}

// WeatherProvider is the abstract weather capability; implementations wrap
// whatever upstream service the host application uses.
type WeatherProvider interface {
	Current(ctx context.Context, location string) (Reading, error)
}

// Weather adapts a WeatherProvider into a Tool.
type Weather struct {
	Provider WeatherProvider
}

func NewWeather(p WeatherProvider) *Weather { return &Weather{Provider: p} }

func (w *Weather) Name() string { return "weather" }

func (w *Weather) Run(ctx context.Context, req Request) (Output, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = "current"
	}

	reading, err := w.Provider.Current(ctx, location)
	if err != nil {
		return Output{}, fmt.Errorf("weather lookup: %w", err)
	}

	snippet := strconv.FormatFloat(reading.Temp, 'f', -1, 64) + "°"
	if reading.Condition != "" {
		snippet += ", " + reading.Condition
	}

	return Output{Candidates: []sources.Candidate{{
		Type:    sources.TypeWeather,
		File:    "weather:" + slug(location),
		Title:   "Weather: " + reading.Location,
		Snippet: snippet,
		Meta: map[string]string{
			"temp":      strconv.FormatFloat(reading.Temp, 'f', -1, 64),
			"condition": reading.Condition,
		},
	}}}, nil
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

var _ Tool = (*Weather)(nil)
