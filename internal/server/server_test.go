package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ai-mock-interview/internal/config"
	"ai-mock-interview/internal/metrics"
	"ai-mock-interview/internal/storage"
)

type fakeGateway struct {
	connected bool
	calls     int
}

func (f *fakeGateway) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return fmt.Sprintf("면접관 응답 %d", f.calls), nil
}

func (f *fakeGateway) CheckConnection() bool { return f.connected }

func (f *fakeGateway) ListModels() ([]string, error) {
	if !f.connected {
		return nil, fmt.Errorf("unreachable")
	}
	return []string{"qwen2.5:7b"}, nil
}

func newTestServer(t *testing.T, gateway *fakeGateway) (*Server, *storage.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.Interview.MaxTurns = 2
	store := storage.NewStore(t.TempDir())
	return New(cfg, gateway, store, metrics.NewMetrics(), zap.NewNop()), store
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func createSession(t *testing.T, s *Server, portfolioText string) string {
	t.Helper()
	var body any
	if portfolioText != "" {
		body = map[string]string{"portfolio_text": portfolioText}
	}
	resp, payload := doJSON(t, s, http.MethodPost, "/api/sessions", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created createSessionResponse
	require.NoError(t, json.Unmarshal(payload, &created))
	return created.SessionID
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t, &fakeGateway{connected: true})

	resp, payload := doJSON(t, s, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health healthResponse
	require.NoError(t, json.Unmarshal(payload, &health))
	assert.Equal(t, "ok", health.Status)
	assert.True(t, health.OllamaConnected)
	assert.Equal(t, []string{"qwen2.5:7b"}, health.Models)
}

func TestHealthDegradedWhenDisconnected(t *testing.T) {
	s, _ := newTestServer(t, &fakeGateway{connected: false})

	_, payload := doJSON(t, s, http.MethodGet, "/healthz", nil)

	var health healthResponse
	require.NoError(t, json.Unmarshal(payload, &health))
	assert.Equal(t, "degraded", health.Status)
	assert.False(t, health.OllamaConnected)
}

func TestFullInterviewFlow(t *testing.T) {
	gateway := &fakeGateway{connected: true}
	s, store := newTestServer(t, gateway)

	id := createSession(t, s, "")

	// Unknown type is rejected before any model call.
	resp, _ := doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/start",
		map[string]string{"interview_type": "marketing"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, gateway.calls)

	resp, payload := doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/start",
		map[string]string{"interview_type": "tech"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var round interviewResponse
	require.NoError(t, json.Unmarshal(payload, &round))
	assert.Equal(t, 1, round.TurnIndex)
	assert.Equal(t, 2, round.MaxTurns)
	assert.NotEmpty(t, round.Reply)

	resp, payload = doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/answers",
		map[string]string{"answer": "첫 번째 답변입니다"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(payload, &round))
	assert.False(t, round.Finished)
	assert.Equal(t, 2, round.TurnIndex)

	resp, payload = doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/answers",
		map[string]string{"answer": "마지막 답변입니다"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(payload, &round))
	assert.True(t, round.Finished)

	// The finished interview was persisted.
	ids, err := store.List()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	// The presentation layer records finished: further answers are refused.
	resp, _ = doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/answers",
		map[string]string{"answer": "또 제출"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, payload = doJSON(t, s, http.MethodGet, "/api/sessions/"+id+"/transcript", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	transcript := string(payload)
	assert.Contains(t, transcript, "면접 유형: IT")
	assert.Contains(t, transcript, "면접관 응답 1", "opening question included")
	assert.Contains(t, transcript, "면접관 응답 3", "closing evaluation included")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
}

func TestCreateSessionWithPortfolio(t *testing.T) {
	s, _ := newTestServer(t, &fakeGateway{connected: true})

	resp, payload := doJSON(t, s, http.MethodPost, "/api/sessions",
		map[string]string{"portfolio_text": "학력: 한국대학교 컴퓨터공학과 졸업"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created createSessionResponse
	require.NoError(t, json.Unmarshal(payload, &created))
	assert.True(t, created.HasPersonalization)
}

func TestStartRefusedWhenGatewayDown(t *testing.T) {
	s, _ := newTestServer(t, &fakeGateway{connected: false})
	id := createSession(t, s, "")

	resp, _ := doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/start",
		map[string]string{"interview_type": "tech"})

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSubmitBeforeStartIsRejected(t *testing.T) {
	s, _ := newTestServer(t, &fakeGateway{connected: true})
	id := createSession(t, s, "")

	resp, _ := doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/answers",
		map[string]string{"answer": "성급한 답변"})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAnswerValidation(t *testing.T) {
	gateway := &fakeGateway{connected: true}
	s, _ := newTestServer(t, gateway)
	id := createSession(t, s, "")

	_, _ = doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/start",
		map[string]string{"interview_type": "civil-service"})

	resp, _ := doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/answers",
		map[string]string{"answer": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSkipEndpoint(t *testing.T) {
	gateway := &fakeGateway{connected: true}
	s, _ := newTestServer(t, gateway)
	id := createSession(t, s, "")

	_, _ = doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/start",
		map[string]string{"interview_type": "public-enterprise"})

	resp, payload := doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/skip", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var round interviewResponse
	require.NoError(t, json.Unmarshal(payload, &round))
	assert.Equal(t, 2, round.TurnIndex)
}

func TestUnknownSessionReturns404(t *testing.T) {
	s, _ := newTestServer(t, &fakeGateway{connected: true})

	resp, _ := doJSON(t, s, http.MethodGet, "/api/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, s, http.MethodPost, "/api/sessions/nope/answers",
		map[string]string{"answer": "답변"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProgressEndpoint(t *testing.T) {
	s, _ := newTestServer(t, &fakeGateway{connected: true})
	id := createSession(t, s, "경력: 백엔드 5년")

	_, _ = doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/start",
		map[string]string{"interview_type": "private-enterprise"})

	_, payload := doJSON(t, s, http.MethodGet, "/api/sessions/"+id, nil)

	var progress progressResponse
	require.NoError(t, json.Unmarshal(payload, &progress))
	assert.Equal(t, "private-enterprise", progress.InterviewType)
	assert.Equal(t, 1, progress.TurnIndex)
	assert.Equal(t, 2, progress.MaxTurns)
	assert.True(t, progress.Started)
	assert.False(t, progress.Finished)
	assert.True(t, progress.HasPersonalization)
}
