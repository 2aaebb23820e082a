// Package analytics adalah client ke layanan analytics eksternal.
// Semua pemanggil memperlakukan error sebagai non-fatal; tidak ada retry.
package analytics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	requestTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20
)

// UserStatistics dikirim ke PUT /api/analytics/user-stats/{id}.
type UserStatistics struct {
	TotalQuests       int64 `json:"totalQuests"`
	CompletedQuests   int64 `json:"completedQuests"`
	ActiveQuests      int64 `json:"activeQuests"`
	ExpiredQuests     int64 `json:"expiredQuests"`
	ExperiencePoints  int64 `json:"experiencePoints"`
	Level             int   `json:"level"`
	AchievementsCount int64 `json:"achievementsCount"`
}

// Data dari GET /api/analytics/user/{id}. Field yang tidak dikirim tetap nol.
type Data struct {
	TotalExperienceEarned int64   `json:"totalExperienceEarned"`
	TotalQuestsCompleted  int64   `json:"totalQuestsCompleted"`
	CurrentLevel          int     `json:"currentLevel"`
	LastUpdated           *string `json:"lastUpdated"`
}

// EmptyData: nilai fallback kalau layanan analytics tidak bisa dihubungi.
func EmptyData() *Data {
	return &Data{CurrentLevel: 1}
}

type Recorder interface {
	RecordQuestCompletion(ctx context.Context, userID, questID uuid.UUID, experience int64) error
	UpdateUserStatistics(ctx context.Context, userID uuid.UUID, stats UserStatistics) error
	DeleteAnalyticsData(ctx context.Context, userID uuid.UUID) error
	GetAnalyticsData(ctx context.Context, userID uuid.UUID) (*Data, error)
}

// New: base URL kosong => Noop.
func New(baseURL string, rps float64) Recorder {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		log.Println("[ANALYTICS] base URL kosong, analytics dinonaktifkan")
		return Noop{}
	}
	return NewClient(baseURL, rps, nil)
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(baseURL string, rps float64, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(limit, 1),
	}
}

func (c *Client) RecordQuestCompletion(ctx context.Context, userID, questID uuid.UUID, experience int64) error {
	q := url.Values{}
	q.Set("userId", userID.String())
	q.Set("questId", questID.String())
	q.Set("experiencePoints", strconv.FormatInt(experience, 10))
	endpoint := c.baseURL + "/api/analytics/quest-completion?" + q.Encode()

	if err := c.do(ctx, http.MethodPost, endpoint, nil, nil); err != nil {
		return fmt.Errorf("record quest completion: %w", err)
	}
	return nil
}

func (c *Client) UpdateUserStatistics(ctx context.Context, userID uuid.UUID, stats UserStatistics) error {
	endpoint := c.baseURL + "/api/analytics/user-stats/" + userID.String()
	if err := c.do(ctx, http.MethodPut, endpoint, stats, nil); err != nil {
		return fmt.Errorf("update user statistics: %w", err)
	}
	return nil
}

func (c *Client) DeleteAnalyticsData(ctx context.Context, userID uuid.UUID) error {
	endpoint := c.baseURL + "/api/analytics/user/" + userID.String()
	if err := c.do(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete analytics data: %w", err)
	}
	return nil
}

func (c *Client) GetAnalyticsData(ctx context.Context, userID uuid.UUID) (*Data, error) {
	endpoint := c.baseURL + "/api/analytics/user/" + userID.String()
	var out Data
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, fmt.Errorf("get analytics data: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, result any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s %s", resp.StatusCode, method, req.URL.Path)
	}
	if result == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Noop dipakai kalau ANALYTICS_BASE_URL tidak di-set.
type Noop struct{}

func (Noop) RecordQuestCompletion(context.Context, uuid.UUID, uuid.UUID, int64) error { return nil }
func (Noop) UpdateUserStatistics(context.Context, uuid.UUID, UserStatistics) error    { return nil }
func (Noop) DeleteAnalyticsData(context.Context, uuid.UUID) error                     { return nil }
func (Noop) GetAnalyticsData(context.Context, uuid.UUID) (*Data, error)               { return EmptyData(), nil }
