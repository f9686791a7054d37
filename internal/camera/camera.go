package camera

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"doorbelld/internal/models"
	"doorbelld/internal/providers"
	"doorbelld/internal/structures"
)

var ErrNotConfigured = errors.New("camera endpoint not configured")

// Camera is the capture capability of the doorbell bridge.
type Camera interface {
	TakeSnapshot(ctx context.Context) ([]byte, error)
	RecordVideo(ctx context.Context, duration time.Duration) ([]byte, error)
	LatestMotion(ctx context.Context, kind string) (*models.RawEvent, error)
}

// eventsResponse mirrors the bridge's event history listing.
type eventsResponse struct {
	Events []struct {
		DingId string `json:"ding_id_str"`
		Kind   string `json:"kind"`
	} `json:"events"`
}

type HTTPCamera struct {
	conf   structures.CameraConfig
	state  string
	client *http.Client
	logger providers.Logger
}

func NewCamera(conf *structures.Config, logger providers.Logger) Camera {
	return &HTTPCamera{
		conf:  conf.Camera,
		state: conf.Motion.State,
		// per-call deadlines come from the caller's context
		client: &http.Client{Timeout: 0},
		logger: logger,
	}
}

func (c *HTTPCamera) TakeSnapshot(ctx context.Context) ([]byte, error) {
	if c.conf.SnapshotUrl == "" {
		return nil, ErrNotConfigured
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.get(ctx, c.conf.SnapshotUrl)
}

func (c *HTTPCamera) RecordVideo(ctx context.Context, duration time.Duration) ([]byte, error) {
	if c.conf.VideoUrl == "" {
		return nil, ErrNotConfigured
	}
	u, err := url.Parse(c.conf.VideoUrl)
	if err != nil {
		return nil, fmt.Errorf("video url: %w", err)
	}
	q := u.Query()
	q.Set("duration", strconv.Itoa(int(duration.Seconds())))
	u.RawQuery = q.Encode()

	return c.get(ctx, u.String())
}

// LatestMotion asks the bridge for its most recent event of the given kind,
// narrowed to motion.state when one is configured. It returns nil when the
// history is empty.
func (c *HTTPCamera) LatestMotion(ctx context.Context, kind string) (*models.RawEvent, error) {
	if c.conf.EventsUrl == "" {
		return nil, ErrNotConfigured
	}
	u, err := url.Parse(c.conf.EventsUrl)
	if err != nil {
		return nil, fmt.Errorf("events url: %w", err)
	}
	q := u.Query()
	q.Set("limit", "1")
	if kind != "" {
		q.Set("kind", kind)
	}
	if c.state != "" {
		q.Set("state", c.state)
	}
	u.RawQuery = q.Encode()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}
	var resp eventsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	if len(resp.Events) == 0 {
		return nil, nil
	}
	ev := resp.Events[0]
	return &models.RawEvent{Id: ev.DingId, Kind: ev.Kind}, nil
}

func (c *HTTPCamera) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.conf.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.conf.Timeout)
}

func (c *HTTPCamera) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if c.conf.Username != "" {
		req.SetBasicAuth(c.conf.Username, c.conf.Password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("camera %s: status %d: %s", req.URL.Path, resp.StatusCode, string(b))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	c.logger.Debugf(providers.TypeCapture, "camera %s returned %d bytes", req.URL.Path, len(body))
	return body, nil
}
