//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestTeas_E2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	// unique names so the run is repeatable against a persistent backend
	greenName := "Green Tea " + uuid.NewString()
	blackName := "Black Tea " + uuid.NewString()

	var green struct {
		ID    int64   `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	doJSON(t, http.MethodPost, baseURL+"/teas", map[string]any{
		"name":  greenName,
		"price": 100,
	}, &green, http.StatusCreated)
	if green.ID == 0 || green.Name != greenName || green.Price != 100 {
		t.Fatalf("unexpected created tea: %+v", green)
	}

	var black struct {
		ID int64 `json:"id"`
	}
	doJSON(t, http.MethodPost, baseURL+"/teas", map[string]any{
		"name":  blackName,
		"price": 80,
	}, &black, http.StatusCreated)
	if black.ID <= green.ID {
		t.Fatalf("ids not increasing: %d then %d", green.ID, black.ID)
	}

	var teas []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/teas", nil, &teas, http.StatusOK)
	if !containsName(teas, greenName) || !containsName(teas, blackName) {
		t.Fatalf("list missing created teas: %#v", teas)
	}

	var updated struct {
		ID    int64   `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	doJSON(t, http.MethodPut, fmt.Sprintf("%s/teas/%d", baseURL, green.ID), map[string]any{
		"name":  greenName + " Updated",
		"price": 120,
	}, &updated, http.StatusOK)
	if updated.ID != green.ID || updated.Price != 120 {
		t.Fatalf("unexpected updated tea: %+v", updated)
	}

	doJSON(t, http.MethodDelete, fmt.Sprintf("%s/teas/%d", baseURL, black.ID), nil, nil, http.StatusNoContent)
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/teas/%d", baseURL, black.ID), nil, nil, http.StatusNotFound)

	// cleanup
	doJSON(t, http.MethodDelete, fmt.Sprintf("%s/teas/%d", baseURL, green.ID), nil, nil, http.StatusNoContent)
}

func containsName(teas []map[string]any, name string) bool {
	for _, tt := range teas {
		if tt["name"] == name {
			return true
		}
	}
	return false
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}

		select {
		case <-ctx.Done():
			t.Fatalf("service never became ready: %v", ctx.Err())
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func doJSON(t *testing.T, method, url string, body, out any, wantStatus int) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status=%d want=%d body=%s", method, url, resp.StatusCode, wantStatus, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("unmarshal response: %v\n%s", err, raw)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
