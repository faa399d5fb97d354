package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/painpoint-go/internal/application/query"
	"github.com/doeshing/painpoint-go/internal/domain"
	"github.com/doeshing/painpoint-go/internal/pkg/logger"
)

type MockController struct {
	mock.Mock
}

func (m *MockController) Submit(ctx context.Context, companyName, companyURL string) (domain.QueryState, error) {
	args := m.Called(ctx, companyName, companyURL)
	return args.Get(0).(domain.QueryState), args.Error(1)
}

func (m *MockController) State() domain.QueryState {
	args := m.Called()
	return args.Get(0).(domain.QueryState)
}

func newTestServer(t *testing.T, controller *MockController, metrics http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewServer(controller, metrics, logger.NewTest(t)).Router())
	t.Cleanup(server.Close)
	return server
}

func succeededState(content string) domain.QueryState {
	return domain.QueryState{
		Phase:        domain.PhaseSucceeded,
		SubmissionID: "sub-1",
		Target:       &domain.SearchTarget{Kind: domain.TargetCompanyName, Value: "Acme"},
		Result:       &domain.NormalizedResult{Content: content, Shape: domain.ShapeOutput},
	}
}

func decodeView(t *testing.T, resp *http.Response) domain.StateView {
	t.Helper()
	var view domain.StateView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, &MockController{}, nil)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "ok", payload["status"])
}

func TestSubmitQuery_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		state      domain.QueryState
		err        error
		wantStatus int
	}{
		{name: "success", state: succeededState("# Report"), wantStatus: http.StatusOK},
		{
			name:       "validation",
			state:      domain.QueryState{Phase: domain.PhaseFailed, Err: domain.NewValidationError(domain.MsgMissingTarget)},
			err:        domain.NewValidationError(domain.MsgMissingTarget),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "api",
			state:      domain.QueryState{Phase: domain.PhaseFailed, Err: domain.NewAPIError(401, "bad key")},
			err:        domain.NewAPIError(401, "bad key"),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "transport",
			state:      domain.QueryState{Phase: domain.PhaseFailed, Err: domain.NewTransportError(errors.New("refused"))},
			err:        domain.NewTransportError(errors.New("refused")),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "in flight",
			state:      domain.QueryState{Phase: domain.PhaseInFlight},
			err:        query.ErrInFlight,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := &MockController{}
			controller.On("Submit", mock.Anything, "Acme", "").Return(tt.state, tt.err).Once()
			server := newTestServer(t, controller, nil)

			resp, err := http.Post(server.URL+"/api/query", "application/json", strings.NewReader(`{"company_name":"Acme"}`))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.state.Phase, decodeView(t, resp).Phase)
			controller.AssertExpectations(t)
		})
	}
}

func TestSubmitQuery_FormEncoded(t *testing.T) {
	controller := &MockController{}
	controller.On("Submit", mock.Anything, "", "https://acme.io").Return(succeededState("ok"), nil).Once()
	server := newTestServer(t, controller, nil)

	resp, err := http.PostForm(server.URL+"/api/query", url.Values{"company_url": {"https://acme.io"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeView(t, resp).Content)
	controller.AssertExpectations(t)
}

func TestSubmitQuery_BadJSON(t *testing.T) {
	controller := &MockController{}
	server := newTestServer(t, controller, nil)

	resp, err := http.Post(server.URL+"/api/query", "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	controller.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitQuery_SurvivesClientCancellation(t *testing.T) {
	controller := &MockController{}
	controller.On("Submit", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Done() == nil
	}), "Acme", "").Return(succeededState("ok"), nil).Once()
	server := newTestServer(t, controller, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server.URL+"/api/query", strings.NewReader(`{"company_name":"Acme"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	controller.AssertExpectations(t)
}

func TestCurrentState(t *testing.T) {
	controller := &MockController{}
	controller.On("State").Return(domain.QueryState{Phase: domain.PhaseIdle})
	server := newTestServer(t, controller, nil)

	resp, err := http.Get(server.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.PhaseIdle, decodeView(t, resp).Phase)
}

func TestIndex_RendersEscapedContent(t *testing.T) {
	controller := &MockController{}
	state := succeededState("<script>alert(1)</script>")
	state.Result.HasReasoning = true
	state.Result.Reasoning = "checked reviews"
	controller.On("State").Return(state)
	server := newTestServer(t, controller, nil)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "&lt;script&gt;")
	assert.NotContains(t, string(body), "<script>alert")
	assert.Contains(t, string(body), "checked reviews")
}

func TestSubmitForm_RendersError(t *testing.T) {
	controller := &MockController{}
	qerr := domain.NewValidationError(domain.MsgMissingCredential)
	controller.On("Submit", mock.Anything, "Acme", "").
		Return(domain.QueryState{Phase: domain.PhaseFailed, Err: qerr}, qerr).Once()
	server := newTestServer(t, controller, nil)

	resp, err := http.PostForm(server.URL+"/", url.Values{"company_name": {"Acme"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "API Key not found in environment.")
	assert.Contains(t, string(body), `value="Acme"`)
}

func TestMetricsMountedWhenProvided(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "painpoint_in_flight 0\n")
	})
	withMetrics := newTestServer(t, &MockController{}, metrics)
	withoutMetrics := newTestServer(t, &MockController{}, nil)

	resp, err := http.Get(withMetrics.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(withoutMetrics.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	srv := NewServer(&MockController{}, nil, logger.NewTest(t))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
