package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/qiskit-community/qiskit-pasqal-provider/device"
	"github.com/qiskit-community/qiskit-pasqal-provider/internal/ctxlog"
)

// defaultCoreEndpoint is the production core API.
const defaultCoreEndpoint = "https://apis.pasqal.cloud/core-fast"

// Client is the HTTP implementation of Session.
type Client struct {
	base    string
	cfg     RemoteConfig
	httpCli *http.Client
}

// NewClient creates a session client from remote credentials.
func NewClient(cfg RemoteConfig) *Client {
	base := cfg.Endpoints.Core
	if base == "" {
		base = defaultCoreEndpoint
	}
	return &Client{
		base:    base,
		cfg:     cfg,
		httpCli: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateBatch implements Session.
func (c *Client) CreateBatch(ctx context.Context, req CreateBatchRequest) (*Batch, error) {
	if req.ProjectID == "" {
		req.ProjectID = c.cfg.ProjectID
	}
	if req.Webhook == "" {
		req.Webhook = c.cfg.Webhook
	}
	var batch Batch
	if err := c.do(ctx, http.MethodPost, "/api/v1/batches", req, &batch); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Batch created.", slog.String("batch_id", batch.ID), slog.String("status", string(batch.Status)))
	return &batch, nil
}

// GetBatch implements Session.
func (c *Client) GetBatch(ctx context.Context, id string) (*Batch, error) {
	var batch Batch
	if err := c.do(ctx, http.MethodGet, "/api/v1/batches/"+id, nil, &batch); err != nil {
		return nil, fmt.Errorf("get batch %s: %w", id, err)
	}
	return &batch, nil
}

// CancelBatch implements Session.
func (c *Client) CancelBatch(ctx context.Context, id string) (*Batch, error) {
	var batch Batch
	if err := c.do(ctx, http.MethodPut, "/api/v1/batches/"+id+"/cancel", nil, &batch); err != nil {
		return nil, fmt.Errorf("cancel batch %s: %w", id, err)
	}
	return &batch, nil
}

// FetchAvailableDevices implements Session.
func (c *Client) FetchAvailableDevices(ctx context.Context) (map[string]device.Spec, error) {
	var specs map[string]device.Spec
	if err := c.do(ctx, http.MethodGet, "/api/v1/devices/specs", nil, &specs); err != nil {
		return nil, fmt.Errorf("fetch available devices: %w", err)
	}
	return specs, nil
}

// apiEnvelope is the service's standard response wrapper.
type apiEnvelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.authorize(req); err != nil {
		return err
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(payload))
	}
	if out == nil {
		return nil
	}

	// Responses arrive wrapped in a data envelope; tolerate bare payloads.
	var envelope apiEnvelope
	if err := json.Unmarshal(payload, &envelope); err == nil && len(envelope.Data) > 0 {
		payload = envelope.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// authorize attaches the configured credentials: a bearer token when a
// provider is set, basic auth otherwise.
func (c *Client) authorize(req *http.Request) error {
	if c.cfg.TokenProvider != nil {
		token, err := c.cfg.TokenProvider.Token()
		if err != nil {
			return fmt.Errorf("token provider: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}
	return nil
}
