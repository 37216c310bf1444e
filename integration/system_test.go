//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"ProductCatalog/internal/catalog"
	"ProductCatalog/internal/probe"
)

var (
	baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")
	apiKey  = os.Getenv("E2E_API_KEY")
)

func TestSystem_E2E_Scenario(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	c := probe.NewClient(baseURL, apiKey)

	if _, _, err := c.Initialize(ctx); err != nil {
		t.Fatalf("mcp initialize: %v", err)
	}

	res := mustCall(t, ctx, c, catalog.OpGetCategories, nil)
	var cats []string
	if err := json.Unmarshal([]byte(res.Text), &cats); err != nil {
		t.Fatalf("decode categories: %v (%s)", err, res.Text)
	}
	if len(cats) == 0 {
		t.Fatalf("expected categories")
	}

	res = mustCall(t, ctx, c, catalog.OpGetProduct, map[string]any{"product_id": "PROD-999"})
	if !res.Guidance || !strings.Contains(res.Text, "not found") {
		t.Fatalf("unexpected result: %+v", res)
	}

	res = mustCall(t, ctx, c, catalog.OpSearchProducts, map[string]any{"query": "zzz-no-such-product"})
	if !res.Guidance {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func mustCall(t *testing.T, ctx context.Context, c *probe.Client, op string, args map[string]any) catalog.Result {
	t.Helper()

	res, resp, err := c.Call(ctx, op, args)
	if err != nil {
		t.Fatalf("%s: %v (status=%d)", op, err, resp.StatusCode)
	}
	return res
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == http.StatusOK {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
