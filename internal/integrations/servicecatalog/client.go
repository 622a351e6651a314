package servicecatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger is the logging surface this package needs
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the external service catalog
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a service catalog client
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService resolves a service id to its display data
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fallthrough to decoding
	case http.StatusNotFound:
		return nil, ErrServiceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var service Service
	if err := json.NewDecoder(resp.Body).Decode(&service); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &service, nil
}

// GetServiceForDisplay resolves a service id for view rendering with
// graceful degradation: a missing service or an unreachable catalog yields
// the deleted-service placeholder instead of failing the read. Admission
// never depends on this call.
func (c *Client) GetServiceForDisplay(ctx context.Context, serviceID int64) *Service {
	service, err := c.GetService(ctx, serviceID)
	if err != nil {
		if err == ErrServiceNotFound {
			c.log.Info("Service id=%d no longer in catalog, using placeholder", serviceID)
		} else {
			c.log.Error("Service catalog unavailable for id=%d, degrading to placeholder: %v", serviceID, err)
		}
		return &Service{ID: serviceID, Name: DeletedServicePlaceholder}
	}

	return service
}
