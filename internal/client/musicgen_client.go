package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tunestory/api/internal/config"
)

// MusicGenerator renders a text prompt into audio
type MusicGenerator interface {
	Generate(ctx context.Context, req *MusicGenRequest) (*MusicGenResponse, error)
	IsConfigured() bool
}

// MusicGenClient talks to the self-hosted MusicGen server
type MusicGenClient struct {
	httpClient *http.Client
	baseURL    string
}

type MusicGenRequest struct {
	Prompt      string  `json:"prompt"`
	Duration    int     `json:"duration"`
	Temperature float64 `json:"temperature"`
	ModelSize   string  `json:"model_size"`
}

type MusicGenMetadata struct {
	Model                 string  `json:"model"`
	ModelSize             string  `json:"model_size"`
	Duration              float64 `json:"duration"`
	SampleRate            int     `json:"sample_rate"`
	SizeBytes             int     `json:"size_bytes"`
	GenerationTimeSeconds float64 `json:"generation_time_seconds"`
	Framework             string  `json:"framework"`
	Device                string  `json:"device"`
}

type MusicGenResponse struct {
	Success     bool             `json:"success"`
	AudioBase64 string           `json:"audio_base64"`
	Prompt      string           `json:"prompt"`
	Error       string           `json:"error"`
	Metadata    MusicGenMetadata `json:"metadata"`
}

type MusicGenHealth struct {
	Status      string `json:"status"`
	Device      string `json:"device"`
	ModelLoaded bool   `json:"model_loaded"`
}

func NewMusicGenClient(cfg *config.MusicGenConfig) *MusicGenClient {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &MusicGenClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.ServiceURL, "/"),
	}
}

// Generate blocks until the server has rendered the clip
func (c *MusicGenClient) Generate(ctx context.Context, req *MusicGenRequest) (*MusicGenResponse, error) {
	var resp MusicGenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/generate", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "generation failed"
		}
		return nil, fmt.Errorf("musicgen: %s", msg)
	}
	if resp.AudioBase64 == "" {
		return nil, fmt.Errorf("musicgen: no audio data received")
	}
	return &resp, nil
}

func (c *MusicGenClient) Health(ctx context.Context) (*MusicGenHealth, error) {
	var health MusicGenHealth
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *MusicGenClient) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	log.Ctx(ctx).Debug().
		Str("component", "musicgen").
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("musicgen request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("musicgen API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// IsConfigured returns true if a server URL was given
func (c *MusicGenClient) IsConfigured() bool {
	return c.baseURL != ""
}
