package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/painpoint-go/internal/domain"
	"github.com/doeshing/painpoint-go/internal/ports"
)

// ErrInFlight is returned when Submit is called while a request is outstanding.
var ErrInFlight = errors.New("a query is already in flight")

// Config is resolved by the caller before the controller is built.
type Config struct {
	Credential string
	Model      string
	Endpoint   string
}

// Controller owns the submission lifecycle:
// idle -> validating -> in_flight -> succeeded|failed.
type Controller struct {
	cfg       Config
	transport ports.Transport
	logger    ports.Logger
	metrics   ports.Metrics
	now       func() time.Time

	mu    sync.Mutex
	state domain.QueryState
}

// NewController wires a controller. logger and metrics may be nil.
func NewController(cfg Config, transport ports.Transport, logger ports.Logger, metrics ports.Metrics) *Controller {
	if logger == nil {
		logger = nopLogger{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Controller{
		cfg:       cfg,
		transport: transport,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
		state:     domain.QueryState{Phase: domain.PhaseIdle},
	}
}

// State returns a copy of the current state.
func (c *Controller) State() domain.QueryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Submit runs one submission to completion and returns the terminal state.
// The error is the *domain.QueryError of a failed submission, or ErrInFlight
// when another submission is outstanding; in that case state is untouched and
// no request is sent.
func (c *Controller) Submit(ctx context.Context, companyName, companyURL string) (domain.QueryState, error) {
	c.mu.Lock()
	if c.state.Busy() {
		current := c.state.Clone()
		c.mu.Unlock()
		c.metrics.Rejected()
		c.logger.Warn("submission rejected while in flight", map[string]interface{}{
			"submission_id": current.SubmissionID,
		})
		return current, ErrInFlight
	}

	c.state = domain.QueryState{
		Phase:        domain.PhaseValidating,
		SubmissionID: uuid.NewString(),
		StartedAt:    c.now(),
	}
	target, verr := c.validate(companyName, companyURL)
	if verr != nil {
		final := c.finishLocked(nil, verr)
		c.mu.Unlock()
		c.logger.Info("submission failed validation", map[string]interface{}{
			"submission_id": final.SubmissionID,
			"reason":        verr.Message,
		})
		c.metrics.Outcome(final)
		return final, verr
	}
	c.state.Target = &target
	c.state.Phase = domain.PhaseInFlight
	submissionID := c.state.SubmissionID
	c.mu.Unlock()

	c.logger.Debug("dispatching search request", map[string]interface{}{
		"submission_id": submissionID,
		"target_kind":   string(target.Kind),
		"model":         c.cfg.Model,
	})

	result, qerr := c.dispatch(ctx, target)

	c.mu.Lock()
	final := c.finishLocked(result, qerr)
	c.mu.Unlock()

	c.metrics.Outcome(final)
	fields := map[string]interface{}{
		"submission_id": final.SubmissionID,
		"duration_ms":   final.FinishedAt.Sub(final.StartedAt).Milliseconds(),
	}
	if qerr != nil {
		fields["kind"] = string(qerr.Kind)
		fields["status_code"] = qerr.StatusCode
		c.logger.Error("search request failed", qerr, fields)
		return final, qerr
	}
	fields["shape"] = string(result.Shape)
	fields["has_reasoning"] = result.HasReasoning
	c.logger.Info("search request succeeded", fields)
	return final, nil
}

func (c *Controller) validate(companyName, companyURL string) (domain.SearchTarget, *domain.QueryError) {
	if strings.TrimSpace(c.cfg.Credential) == "" {
		return domain.SearchTarget{}, domain.NewValidationError(domain.MsgMissingCredential)
	}
	target, err := domain.NewSearchTarget(companyName, companyURL)
	if err != nil {
		var qerr *domain.QueryError
		if errors.As(err, &qerr) {
			return domain.SearchTarget{}, qerr
		}
		return domain.SearchTarget{}, domain.NewValidationError(err.Error())
	}
	return target, nil
}

// dispatch performs the single transport call for a submission. It does not
// touch controller state.
func (c *Controller) dispatch(ctx context.Context, target domain.SearchTarget) (*domain.NormalizedResult, *domain.QueryError) {
	request := BuildRequest(c.cfg.Model, target)

	c.metrics.DispatchStarted()
	started := c.now()
	resp, err := c.transport.Send(ctx, ports.TransportRequest{
		Endpoint:   c.cfg.Endpoint,
		Credential: c.cfg.Credential,
		Body:       request,
	})
	c.metrics.DispatchFinished(c.now().Sub(started))
	if err != nil {
		return nil, domain.NewTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewAPIError(resp.StatusCode, apiErrorMessage(resp))
	}

	var raw any
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("decode response body: %w", err))
	}
	result := Normalize(raw)
	return &result, nil
}

func (c *Controller) finishLocked(result *domain.NormalizedResult, qerr *domain.QueryError) domain.QueryState {
	c.state.FinishedAt = c.now()
	if qerr != nil {
		c.state.Phase = domain.PhaseFailed
		c.state.Err = qerr
		c.state.Result = nil
	} else {
		c.state.Phase = domain.PhaseSucceeded
		c.state.Result = result
		c.state.Err = nil
	}
	return c.state.Clone()
}

// apiErrorMessage prefers the body's error.message, then the status line.
func apiErrorMessage(resp ports.TransportResponse) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	if status := strings.TrimSpace(resp.Status); status != "" {
		return status
	}
	return fmt.Sprintf("Request failed with status %d", resp.StatusCode)
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

type nopMetrics struct{}

func (nopMetrics) DispatchStarted()               {}
func (nopMetrics) DispatchFinished(time.Duration) {}
func (nopMetrics) Outcome(domain.QueryState)      {}
func (nopMetrics) Rejected()                      {}

var _ ports.QueryController = (*Controller)(nil)
