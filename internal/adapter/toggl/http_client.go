package toggl

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"stopwatch/internal/domain"
)

const createdWith = "stopwatch"

// Client implements ports.Sink by creating Toggl Track time entries (API v9),
// one per interval of the session.
type Client struct {
	baseURL   string
	apiToken  string
	http      *http.Client
	workspace int64
	log       *slog.Logger
}

func NewClient(baseURL, apiToken string, workspaceID int64, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.track.toggl.com"
	}
	return &Client{
		baseURL:   baseURL,
		apiToken:  apiToken,
		workspace: workspaceID,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// ArchiveSession posts each interval of s as a stopped time entry.
// Toggl: POST /api/v9/workspaces/{workspace_id}/time_entries
// Intervals under one second, including negative ones from a skewed clock,
// have no Toggl representation and are skipped.
func (c *Client) ArchiveSession(ctx context.Context, s domain.Session) error {
	if c.apiToken == "" {
		return errors.New("missing api token")
	}
	if c.workspace == 0 {
		return errors.New("missing workspace id")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	u.Path = fmt.Sprintf("/api/v9/workspaces/%d/time_entries", c.workspace)

	posted := 0
	for i, e := range s.Intervals {
		if e.ElapsedMs == nil || *e.ElapsedMs < 1000 {
			c.log.Debug("toggl sink skipping short interval", slog.String("session", s.ID), slog.Int("position", i))
			continue
		}
		// Toggl durations are whole seconds; stop must agree with duration.
		secs := *e.ElapsedMs / 1000
		start := time.UnixMilli(e.StartedAt).UTC()
		stop := start.Add(time.Duration(secs) * time.Second)
		body := rawTimeEntry{
			CreatedWith: createdWith,
			Description: "stopwatch session " + s.ID,
			WorkspaceID: c.workspace,
			Tags:        []string{createdWith},
			Start:       start,
			Stop:        stop,
			Duration:    secs,
		}
		if err := c.post(ctx, u.String(), body); err != nil {
			return fmt.Errorf("interval %d: %w", i, err)
		}
		posted++
	}
	c.log.Info("toggl sink archived session", slog.String("session", s.ID), slog.Int("entries", posted))
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, entry rawTimeEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	// Basic auth: token:api_token
	auth := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", c.apiToken, "api_token")))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("toggl: unexpected status %d: %s", resp.StatusCode, string(body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// rawTimeEntry mirrors the JSON body Toggl v9 accepts for a new entry.
type rawTimeEntry struct {
	CreatedWith string    `json:"created_with"`
	Description string    `json:"description"`
	WorkspaceID int64     `json:"workspace_id"`
	Tags        []string  `json:"tags"`
	Start       time.Time `json:"start"`
	Stop        time.Time `json:"stop"`
	Duration    int64     `json:"duration"`
}
