package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/peeringlatam/network-planner/api/v1alpha1"
	"github.com/peeringlatam/network-planner/pkg/requestid"
)

const defaultTimeout = 30 * time.Second

// ErrUnexpectedStatus is returned when the API answered with a status the operation does not expect.
type ErrUnexpectedStatus struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *ErrUnexpectedStatus) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// PlannerClient is an HTTP client for the network planner API
type PlannerClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*PlannerClient)

// WithToken sends token as a bearer token on every request.
func WithToken(token string) Option {
	return func(c *PlannerClient) {
		c.token = token
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *PlannerClient) {
		c.httpClient = httpClient
	}
}

func NewPlannerClient(baseURL string, timeout time.Duration, opts ...Option) *PlannerClient {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	c := &PlannerClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *PlannerClient) CreateSimulation(ctx context.Context, form v1alpha1.SimulationCreate) (*v1alpha1.Simulation, error) {
	var sim v1alpha1.Simulation
	if err := c.do(ctx, http.MethodPost, "/api/v1/simulations", form, http.StatusCreated, &sim); err != nil {
		return nil, errors.Wrap(err, "creating simulation")
	}
	return &sim, nil
}

func (c *PlannerClient) GetSimulation(ctx context.Context, id uuid.UUID) (*v1alpha1.Simulation, error) {
	var sim v1alpha1.Simulation
	if err := c.do(ctx, http.MethodGet, "/api/v1/simulations/"+id.String(), nil, http.StatusOK, &sim); err != nil {
		return nil, errors.Wrapf(err, "reading simulation/%s", id)
	}
	return &sim, nil
}

func (c *PlannerClient) ListSimulations(ctx context.Context) (v1alpha1.SimulationList, error) {
	var sims v1alpha1.SimulationList
	if err := c.do(ctx, http.MethodGet, "/api/v1/simulations", nil, http.StatusOK, &sims); err != nil {
		return nil, errors.Wrap(err, "listing simulations")
	}
	return sims, nil
}

func (c *PlannerClient) ListProducts(ctx context.Context) (*v1alpha1.ProductFeed, error) {
	var feed v1alpha1.ProductFeed
	if err := c.do(ctx, http.MethodGet, "/api/v1/products", nil, http.StatusOK, &feed); err != nil {
		return nil, errors.Wrap(err, "listing products")
	}
	return &feed, nil
}

func (c *PlannerClient) do(ctx context.Context, method, path string, in any, expected int, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.Header, requestid.Generate())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to call planner api")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode != expected {
		statusErr := &ErrUnexpectedStatus{StatusCode: resp.StatusCode}
		var apiErr v1alpha1.Error
		if json.Unmarshal(data, &apiErr) == nil {
			statusErr.Message = apiErr.Message
			if apiErr.RequestId != nil {
				statusErr.RequestID = *apiErr.RequestId
			}
		}
		return statusErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
