// Package planner talks to the external AI itinerary API. The model is asked
// for strict JSON matching the day-by-day schema; anything else is rejected
// before it reaches a chat thread.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Model      string
}

// Request describes what the traveller wants planned.
type Request struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Preferences string `json:"preferences"`
}

// Itinerary is the validated structured result.
type Itinerary struct {
	Destination string         `json:"destination"`
	Days        []ItineraryDay `json:"days"`
}

type ItineraryDay struct {
	Day    int    `json:"day"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

const schemaHint = `Respond with JSON only, no prose: {"destination": string, "days": [{"day": number, "title": string, "detail": string}]}`

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate asks the model for a day-by-day plan and validates the shape of
// what comes back.
func (c Client) Generate(ctx context.Context, req Request) (Itinerary, error) {
	if c.APIKey == "" {
		return Itinerary{}, fmt.Errorf("planner api key is not configured")
	}
	if req.Days < 1 || req.Days > 30 {
		return Itinerary{}, fmt.Errorf("days must be between 1 and 30")
	}

	prompt := fmt.Sprintf("Plan a %d-day safari itinerary in %s. Preferences: %s. %s",
		req.Days, req.Destination, strings.TrimSpace(req.Preferences), schemaHint)

	body := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a safari itinerary planner. " + schemaHint},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &respFormat{Type: "json_object"},
	}

	var resp chatResponse
	if err := c.doJSON(ctx, "/chat/completions", body, &resp); err != nil {
		return Itinerary{}, err
	}
	if len(resp.Choices) == 0 {
		return Itinerary{}, fmt.Errorf("planner returned no choices")
	}

	var out Itinerary
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &out); err != nil {
		return Itinerary{}, fmt.Errorf("planner returned malformed itinerary: %w", err)
	}
	if err := out.validate(req.Days); err != nil {
		return Itinerary{}, err
	}
	if out.Destination == "" {
		out.Destination = req.Destination
	}
	return out, nil
}

func (it Itinerary) validate(wantDays int) error {
	if len(it.Days) == 0 {
		return fmt.Errorf("planner returned an empty itinerary")
	}
	if len(it.Days) > wantDays {
		return fmt.Errorf("planner returned %d days, asked for %d", len(it.Days), wantDays)
	}
	for i, d := range it.Days {
		if d.Day != i+1 {
			return fmt.Errorf("itinerary days are not sequential at position %d", i)
		}
		if strings.TrimSpace(d.Title) == "" {
			return fmt.Errorf("itinerary day %d has no title", d.Day)
		}
	}
	return nil
}

func (c Client) doJSON(ctx context.Context, path string, reqBody, respBody any) error {
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.BaseURL, "/")+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("planner api error: status=%d body=%s", resp.StatusCode, string(b))
	}
	if respBody != nil && len(b) > 0 {
		if err := json.Unmarshal(b, respBody); err != nil {
			return fmt.Errorf("decode planner response failed: %w", err)
		}
	}
	return nil
}
