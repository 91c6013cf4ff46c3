package vectorstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

func TestGRPCAddress(t *testing.T) {
	tests := []struct {
		name     string
		urlStr   string
		wantErr  bool
		wantHost string
		wantPort int
	}{
		{
			name:     "default HTTP port",
			urlStr:   "http://localhost:6333",
			wantHost: "localhost",
			wantPort: 6334,
		},
		{
			name:     "custom port",
			urlStr:   "http://qdrant.internal:9000",
			wantHost: "qdrant.internal",
			wantPort: 9001,
		},
		{
			name:     "no port",
			urlStr:   "http://localhost",
			wantHost: "localhost",
			wantPort: 6334,
		},
		{
			name:     "no hostname",
			urlStr:   "http://:6333",
			wantHost: "localhost",
			wantPort: 6334,
		},
		{
			name:    "invalid URL",
			urlStr:  "://invalid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port, err := grpcAddress(tt.urlStr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("grpcAddress() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if host != tt.wantHost || port != tt.wantPort {
				t.Errorf("grpcAddress() = %s:%d, want %s:%d", host, port, tt.wantHost, tt.wantPort)
			}
		})
	}
}

func TestNewQdrantStore_InvalidURL(t *testing.T) {
	if _, err := NewQdrantStore("://invalid"); err == nil {
		t.Error("NewQdrantStore() with invalid URL should return error")
	}
}

func TestPointID(t *testing.T) {
	recordID := "0b6a8f5e-3c1d-4f8e-9a7b-2d4c6e8f0a1b"
	if got := PointID(recordID); got != recordID {
		t.Errorf("PointID(uuid) = %q, want unchanged", got)
	}

	legacy := "1700000000000"
	first := PointID(legacy)
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("PointID(%q) = %q is not a UUID", legacy, first)
	}
	if PointID(legacy) != first {
		t.Error("PointID() must be stable")
	}
	if PointID("1700000000001") == first {
		t.Error("PointID() must differ for different ids")
	}
}

func TestQdrantStore_EmptyInputs(t *testing.T) {
	// A zero store has no client; these calls must return before using it.
	store := &QdrantStore{}
	ctx := context.Background()

	if err := store.Upsert(ctx, "highlights", nil); err != nil {
		t.Errorf("Upsert() with no points error = %v", err)
	}
	if err := store.Delete(ctx, "highlights", []string{}); err != nil {
		t.Errorf("Delete() with no ids error = %v", err)
	}
	for _, k := range []int{0, -1} {
		if _, err := store.Search(ctx, "highlights", []float32{1, 2}, k, ""); err == nil {
			t.Errorf("Search() with k=%d should return error", k)
		}
	}
}

func TestURLFilter(t *testing.T) {
	if f := urlFilter(""); f != nil {
		t.Errorf("urlFilter(\"\") = %v, want nil", f)
	}

	f := urlFilter("https://a.example/")
	if f == nil || len(f.Must) != 1 {
		t.Fatalf("urlFilter() = %v", f)
	}
	field := f.Must[0].GetField()
	if field.GetKey() != KeyURL || field.GetMatch().GetKeyword() != "https://a.example/" {
		t.Errorf("condition = %v", field)
	}
}

func TestConvertPayloadToMap(t *testing.T) {
	if got := convertPayloadToMap(nil); got == nil || len(got) != 0 {
		t.Errorf("convertPayloadToMap(nil) = %v, want empty map", got)
	}

	payload := qdrant.NewValueMap(map[string]any{
		KeyRecordID:  "abc",
		KeyURL:       "https://a.example/",
		KeyTimestamp: int64(1700000000000),
		"tags":       []any{"x", true},
	})
	got := convertPayloadToMap(payload)

	if got[KeyRecordID] != "abc" || got[KeyURL] != "https://a.example/" {
		t.Errorf("strings = %v", got)
	}
	if got[KeyTimestamp] != int64(1700000000000) {
		t.Errorf("timestamp = %#v", got[KeyTimestamp])
	}
	tags, ok := got["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "x" || tags[1] != true {
		t.Errorf("tags = %#v", got["tags"])
	}
}
