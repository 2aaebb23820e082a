package analytics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordQuestCompletion(t *testing.T) {
	userID, questID := uuid.New(), uuid.New()

	var gotMethod, gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotQuery = map[string]string{
			"userId":           r.URL.Query().Get("userId"),
			"questId":          r.URL.Query().Get("questId"),
			"experiencePoints": r.URL.Query().Get("experiencePoints"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", 0, srv.Client())
	require.NoError(t, c.RecordQuestCompletion(context.Background(), userID, questID, 100))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/analytics/quest-completion", gotPath)
	assert.Equal(t, userID.String(), gotQuery["userId"])
	assert.Equal(t, questID.String(), gotQuery["questId"])
	assert.Equal(t, "100", gotQuery["experiencePoints"])
}

func TestUpdateUserStatisticsSendsJSON(t *testing.T) {
	userID := uuid.New()
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/analytics/user-stats/"+userID.String(), r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, srv.Client())
	err := c.UpdateUserStatistics(context.Background(), userID, UserStatistics{CompletedQuests: 2, Level: 3})
	require.NoError(t, err)
	assert.Contains(t, body, `"completedQuests":2`)
	assert.Contains(t, body, `"level":3`)
}

func TestGetAnalyticsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalExperienceEarned":700,"totalQuestsCompleted":3,"currentLevel":3,"lastUpdated":"2024-03-04T10:00:00"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, srv.Client())
	d, err := c.GetAnalyticsData(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(700), d.TotalExperienceEarned)
	assert.Equal(t, int64(3), d.TotalQuestsCompleted)
	assert.Equal(t, 3, d.CurrentLevel)
	require.NotNil(t, d.LastUpdated)
}

func TestNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, srv.Client())
	err := c.DeleteAnalyticsData(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestCanceledContext(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, c.RecordQuestCompletion(ctx, uuid.New(), uuid.New(), 1))
}

func TestNewWithoutBaseURLIsNoop(t *testing.T) {
	r := New("  ", 5)
	_, ok := r.(Noop)
	require.True(t, ok)

	d, err := r.GetAnalyticsData(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, *EmptyData(), *d)
	assert.NoError(t, r.RecordQuestCompletion(context.Background(), uuid.New(), uuid.New(), 10))
}
