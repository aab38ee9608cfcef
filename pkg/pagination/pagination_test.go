package pagination_test

import (
	"net/url"
	"testing"

	"github.com/kestrelworks/redline/pkg/pagination"
)

var testConfig = pagination.Config{DefaultLimit: 20, MaxLimit: 100}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		req        pagination.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"zero limit uses default", pagination.PageRequest{}, 20, 0},
		{"negative limit uses default", pagination.PageRequest{Limit: -5}, 20, 0},
		{"limit clamped to max", pagination.PageRequest{Limit: 500}, 100, 0},
		{"valid passes through", pagination.PageRequest{Limit: 50, Offset: 10}, 50, 10},
		{"negative offset reset", pagination.PageRequest{Limit: 10, Offset: -3}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Normalize(testConfig)

			if req.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", req.Limit, tt.wantLimit)
			}
			if req.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", req.Offset, tt.wantOffset)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{"limit": {"30"}, "offset": {"60"}}

	req := pagination.PageRequestFromQuery(values, testConfig)
	if req.Limit != 30 || req.Offset != 60 {
		t.Errorf("req = %+v, want limit 30 offset 60", req)
	}

	req = pagination.PageRequestFromQuery(url.Values{"limit": {"junk"}}, testConfig)
	if req.Limit != 20 {
		t.Errorf("Limit = %d, want default for unparsable input", req.Limit)
	}
}

func TestNewPageResult(t *testing.T) {
	result := pagination.NewPageResult([]string{"a", "b"}, 10, pagination.PageRequest{Limit: 2, Offset: 4})

	if result.Total != 10 || result.Limit != 2 || result.Offset != 4 {
		t.Errorf("result = %+v", result)
	}

	empty := pagination.NewPageResult[string](nil, 0, pagination.PageRequest{Limit: 20})
	if empty.Data == nil {
		t.Error("nil data should normalize to empty slice")
	}
}

func TestConfigFinalize(t *testing.T) {
	cfg := pagination.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.DefaultLimit != 20 || cfg.MaxLimit != 100 {
		t.Errorf("defaults = %+v", cfg)
	}

	bad := pagination.Config{DefaultLimit: 200, MaxLimit: 100}
	if err := bad.Finalize(); err == nil {
		t.Error("expected error when default exceeds max")
	}
}

func TestConfigMerge(t *testing.T) {
	base := pagination.Config{DefaultLimit: 20, MaxLimit: 100}
	base.Merge(&pagination.Config{MaxLimit: 250})

	if base.DefaultLimit != 20 {
		t.Errorf("DefaultLimit = %d, want unchanged", base.DefaultLimit)
	}
	if base.MaxLimit != 250 {
		t.Errorf("MaxLimit = %d, want 250", base.MaxLimit)
	}
}
