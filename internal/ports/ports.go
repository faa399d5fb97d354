// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The query controller depends only on these
// abstractions, so the HTTP transport, configuration source, logger and metrics
// backend can all be swapped for stubs in tests.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/painpoint-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.painpoint/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CredentialProvider resolves the API credential for a model once at startup.
// An empty string is a valid answer and is rejected later by the controller.
type CredentialProvider interface {
	Resolve(domain.ModelDefinition) string
}

// TransportRequest is a single POST to the generation endpoint.
type TransportRequest struct {
	Endpoint   string
	Credential string
	Body       domain.OutboundRequest
}

// TransportResponse carries the raw status and body of a completed HTTP exchange.
type TransportResponse struct {
	StatusCode int
	Status     string
	Body       []byte
}

// Transport performs one blocking HTTP exchange. It returns an error only when no
// response was obtained (network failure, timeout, unreadable body); HTTP error
// statuses are reported through TransportResponse.
type Transport interface {
	Send(context.Context, TransportRequest) (TransportResponse, error)
}

// QueryController is the surface the presentation layer drives.
type QueryController interface {
	Submit(ctx context.Context, companyName, companyURL string) (domain.QueryState, error)
	State() domain.QueryState
}

// Metrics records submission outcomes.
type Metrics interface {
	DispatchStarted()
	DispatchFinished(elapsed time.Duration)
	Outcome(state domain.QueryState)
	Rejected()
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
