// Package ai provides the HTTP transport to the search-grounded generation API.
//
// The transport is deliberately thin: it encodes the outbound request, applies
// the model's authentication format and returns the raw status and body. Status
// interpretation and response normalization belong to the query controller.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/doeshing/painpoint-go/internal/domain"
	"github.com/doeshing/painpoint-go/internal/ports"
)

// HTTPTransport posts JSON requests using a shared http.Client.
type HTTPTransport struct {
	httpClient *http.Client
	format     domain.APIFormat
}

// NewHTTPTransport creates a transport for model. A zero timeout leaves the
// client without an explicit deadline.
func NewHTTPTransport(model domain.ModelDefinition, timeout time.Duration) *HTTPTransport {
	return NewHTTPTransportWithClient(model, &http.Client{Timeout: timeout})
}

// NewHTTPTransportWithClient creates a transport around an existing client.
func NewHTTPTransportWithClient(model domain.ModelDefinition, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		httpClient: client,
		format:     model.APIFormat,
	}
}

// Send performs one POST. HTTP error statuses are not errors here.
func (t *HTTPTransport) Send(ctx context.Context, req ports.TransportRequest) (ports.TransportResponse, error) {
	requestBody, err := json.Marshal(req.Body)
	if err != nil {
		return ports.TransportResponse{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return ports.TransportResponse{}, fmt.Errorf("create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	t.setAuthHeaders(httpReq, req.Credential)
	t.setExtraHeaders(httpReq)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return ports.TransportResponse{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.TransportResponse{}, fmt.Errorf("read response body: %w", err)
	}

	return ports.TransportResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}, nil
}

// setAuthHeaders applies the credential using the configured header name and prefix.
func (t *HTTPTransport) setAuthHeaders(req *http.Request, credential string) {
	if credential == "" {
		return
	}
	req.Header.Set(t.format.GetAuthHeaderName(), t.format.GetAuthHeaderPrefix()+credential)
}

// setExtraHeaders adds any additional headers defined in the APIFormat configuration.
func (t *HTTPTransport) setExtraHeaders(req *http.Request) {
	for key, value := range t.format.ExtraHeaders {
		req.Header.Set(key, value)
	}
}

var _ ports.Transport = (*HTTPTransport)(nil)
