// Package probe checks a deployed catalog from the outside: it speaks the
// MCP initialize handshake and the JSON call endpoint over plain HTTP.
package probe

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ProductCatalog/internal/catalog"
	"ProductCatalog/pkg/kit"
)

const (
	protocolVersion = "2025-03-26"
	maxBody         = 1 << 20
)

var (
	ErrUnavailable = errors.New("catalog unavailable")
	ErrBadStatus   = errors.New("catalog bad status")
	ErrBadResponse = errors.New("catalog bad response")
)

// Response is the raw outcome of one HTTP exchange.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type rpcMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  any             `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Initialize performs the MCP initialize handshake against the mounted
// transport and returns the server's result payload.
func (c *Client) Initialize(ctx context.Context) (json.RawMessage, Response, error) {
	msg := rpcMessage{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
		Params: map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]any{},
			"clientInfo":      map[string]any{"name": "product-catalog-probe", "version": "1.0"},
		},
	}

	resp, err := c.post(ctx, catalog.MountPath+"/mcp", msg, "application/json, text/event-stream")
	if err != nil {
		return nil, resp, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp, fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	var out rpcMessage
	if err := json.Unmarshal(eventPayload(resp.Body), &out); err != nil {
		return nil, resp, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if out.JSONRPC != "2.0" {
		return nil, resp, fmt.Errorf("%w: jsonrpc=%q", ErrBadResponse, out.JSONRPC)
	}
	if out.Error != nil {
		return nil, resp, fmt.Errorf("%w: %d %s", ErrBadResponse, out.Error.Code, out.Error.Message)
	}
	if len(out.Result) == 0 {
		return nil, resp, fmt.Errorf("%w: missing result", ErrBadResponse)
	}
	return out.Result, resp, nil
}

// Call invokes one operation through the JSON call endpoint.
func (c *Client) Call(ctx context.Context, operation string, args map[string]any) (catalog.Result, Response, error) {
	body := map[string]any{"operation": operation, "arguments": args}

	resp, err := c.post(ctx, catalog.MountPath+"/rpc", body, "application/json")
	if err != nil {
		return catalog.Result{}, resp, err
	}

	if resp.StatusCode != http.StatusOK {
		var e kit.ErrorResponse
		if json.Unmarshal(resp.Body, &e) == nil && e.Error != "" {
			return catalog.Result{}, resp, fmt.Errorf("%w: status=%d: %s", ErrBadStatus, resp.StatusCode, e.Error)
		}
		return catalog.Result{}, resp, fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	var res catalog.Result
	if err := json.Unmarshal(resp.Body, &res); err != nil {
		return catalog.Result{}, resp, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return res, resp, nil
}

func (c *Client) post(ctx context.Context, path string, body any, accept string) (Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)
	if c.APIKey != "" {
		req.Header.Set(kit.APIKeyHeader, c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return Response{StatusCode: resp.StatusCode, Status: resp.Status, Body: raw}, nil
}

// eventPayload returns the first "data:" payload when body is a
// server-sent event stream, otherwise body unchanged.
func eventPayload(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return trimmed
	}

	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if data, ok := strings.CutPrefix(line, "data:"); ok {
			return []byte(strings.TrimSpace(data))
		}
	}
	return trimmed
}
