// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	m.RecordGet(true)
	m.RecordGet(true)
	m.RecordGet(false)
	m.RecordAdd(false)
	m.RecordAdd(true)
	m.RecordEvictions(3)
	m.RecordEvictions(0)
	m.SetEntries(5)

	if v := testutil.ToFloat64(m.Hits); v != 2 {
		t.Errorf("Expected 2 hits, got %v", v)
	}
	if v := testutil.ToFloat64(m.Misses); v != 1 {
		t.Errorf("Expected 1 miss, got %v", v)
	}
	if v := testutil.ToFloat64(m.Insertions); v != 1 {
		t.Errorf("Expected 1 insertion, got %v", v)
	}
	if v := testutil.ToFloat64(m.Updates); v != 1 {
		t.Errorf("Expected 1 update, got %v", v)
	}
	if v := testutil.ToFloat64(m.Evictions); v != 3 {
		t.Errorf("Expected 3 evictions, got %v", v)
	}
	if v := testutil.ToFloat64(m.Entries); v != 5 {
		t.Errorf("Expected 5 entries, got %v", v)
	}
	if v := testutil.ToFloat64(m.Poisoned); v != 0 {
		t.Errorf("Expected poisoned gauge 0, got %v", v)
	}
	m.SetPoisoned()
	if v := testutil.ToFloat64(m.Poisoned); v != 1 {
		t.Errorf("Expected poisoned gauge 1, got %v", v)
	}

	n, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if n != 7 {
		t.Errorf("Expected 7 registered metrics, got %d", n)
	}
}

func TestMetricsUnregistered(t *testing.T) {
	m := NewMetrics("loose", nil)
	m.RecordGet(false)
	if v := testutil.ToFloat64(m.Misses); v != 1 {
		t.Errorf("Expected 1 miss, got %v", v)
	}
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("handler", reg)
	m.RecordGet(true)

	srv := httptest.NewServer(NewHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 from /health, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "handler_hits_total 1") {
		t.Errorf("metrics output missing hit counter:\n%s", body)
	}
}
