package indexer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"pagemark/internal/highlight"
	"pagemark/internal/indexer/mocks"
	"pagemark/internal/vectorstore"
	vectorstore_mocks "pagemark/internal/vectorstore/mocks"

	"go.uber.org/mock/gomock"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testRecord(id, text string) highlight.Record {
	return highlight.Record{
		ID:        id,
		Text:      text,
		URL:       "https://a.example/",
		Title:     "Alpha",
		Timestamp: 1700000000000,
	}
}

func vectors(n int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{float32(i), 1}
	}
	return out
}

func TestNewPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := NewPipeline(mocks.NewMockEmbedder(ctrl), vectorstore_mocks.NewMockVectorStore(ctrl), "highlights")
	if p.collection != "highlights" {
		t.Errorf("collection = %q, want highlights", p.collection)
	}
	if p.batchSize != DefaultBatchSize {
		t.Errorf("batchSize = %d, want %d", p.batchSize, DefaultBatchSize)
	}
}

func TestPipeline_Index(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := mocks.NewMockEmbedder(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	record := testRecord("r1", "brown fox")
	embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"brown fox"}).Return(vectors(1), nil)
	store.EXPECT().
		Upsert(gomock.Any(), "highlights", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, points []vectorstore.Point) error {
			if len(points) != 1 {
				t.Fatalf("Upsert() got %d points, want 1", len(points))
			}
			pt := points[0]
			if pt.ID != "r1" {
				t.Errorf("point ID = %q, want r1", pt.ID)
			}
			if pt.Meta[vectorstore.KeyURL] != record.URL || pt.Meta[vectorstore.KeyText] != record.Text {
				t.Errorf("point meta = %v", pt.Meta)
			}
			if pt.Meta[vectorstore.KeyTimestamp] != record.Timestamp {
				t.Errorf("timestamp meta = %#v", pt.Meta[vectorstore.KeyTimestamp])
			}
			return nil
		})

	p := NewPipeline(embedder, store, "highlights")
	if err := p.Index(context.Background(), record); err != nil {
		t.Fatalf("Index() error = %v", err)
	}
}

func TestPipeline_IndexErrors(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(*mocks.MockEmbedder, *vectorstore_mocks.MockVectorStore)
	}{
		{
			name: "embedding failure",
			mockSetup: func(e *mocks.MockEmbedder, _ *vectorstore_mocks.MockVectorStore) {
				e.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return(nil, errors.New("rate limited"))
			},
		},
		{
			name: "embedding count mismatch",
			mockSetup: func(e *mocks.MockEmbedder, _ *vectorstore_mocks.MockVectorStore) {
				e.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return(vectors(2), nil)
			},
		},
		{
			name: "upsert failure",
			mockSetup: func(e *mocks.MockEmbedder, s *vectorstore_mocks.MockVectorStore) {
				e.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return(vectors(1), nil)
				s.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("unavailable"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			embedder := mocks.NewMockEmbedder(ctrl)
			store := vectorstore_mocks.NewMockVectorStore(ctrl)
			tt.mockSetup(embedder, store)

			p := NewPipeline(embedder, store, "highlights")
			if err := p.Index(context.Background(), testRecord("r1", "fox")); err == nil {
				t.Error("Index() expected error")
			}
		})
	}
}

func TestPipeline_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore_mocks.NewMockVectorStore(ctrl)
	store.EXPECT().Delete(gomock.Any(), "highlights", []string{"a", "b"}).Return(nil)

	p := NewPipeline(mocks.NewMockEmbedder(ctrl), store, "highlights")
	if err := p.Remove(context.Background(), []string{"a", "b"}); err != nil {
		t.Errorf("Remove() error = %v", err)
	}
}

func TestPipeline_IndexAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := mocks.NewMockEmbedder(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	records := []highlight.Record{
		testRecord("1", "one"), testRecord("2", "two"), testRecord("3", "three"),
		testRecord("4", "four"), testRecord("5", "five"),
	}

	gomock.InOrder(
		embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"one", "two"}).Return(vectors(2), nil),
		store.EXPECT().Upsert(gomock.Any(), "highlights", gomock.Len(2)).Return(nil),
		embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"three", "four"}).Return(nil, errors.New("timeout")),
		embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"five"}).Return(vectors(1), nil),
		store.EXPECT().Upsert(gomock.Any(), "highlights", gomock.Len(1)).Return(nil),
	)

	p := NewPipeline(embedder, store, "highlights")
	p.batchSize = 2

	n, err := p.IndexAll(context.Background(), records)
	if err == nil {
		t.Error("IndexAll() expected error for the failed batch")
	}
	if n != 3 {
		t.Errorf("IndexAll() indexed %d, want 3", n)
	}
}

func TestPipeline_IndexAllCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(mocks.NewMockEmbedder(ctrl), vectorstore_mocks.NewMockVectorStore(ctrl), "highlights")
	n, err := p.IndexAll(ctx, []highlight.Record{testRecord("1", "one")})
	if !errors.Is(err, context.Canceled) || n != 0 {
		t.Errorf("IndexAll() = %d, %v", n, err)
	}
}

func TestPipeline_Similar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := mocks.NewMockEmbedder(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	query := []float32{0.5, 0.5}
	embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"fox"}).Return([][]float32{query}, nil)
	store.EXPECT().Search(gomock.Any(), "highlights", query, 3, "").Return([]vectorstore.SearchResult{
		{
			PointID: "p1",
			Score:   0.92,
			Meta: map[string]any{
				vectorstore.KeyRecordID:  "r1",
				vectorstore.KeyURL:       "https://a.example/",
				vectorstore.KeyTitle:     "Alpha",
				vectorstore.KeyText:      "brown fox",
				vectorstore.KeyTimestamp: int64(1700000000000),
			},
		},
		{PointID: "p2", Score: 0.5, Meta: map[string]any{vectorstore.KeyText: "orphan"}},
	}, nil)

	p := NewPipeline(embedder, store, "highlights")
	matches, err := p.Similar(context.Background(), " fox ", 3)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Similar() returned %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.ID != "r1" || m.Text != "brown fox" || m.Timestamp != 1700000000000 || m.Score != 0.92 {
		t.Errorf("match = %+v", m)
	}
}

func TestPipeline_SimilarEmptyQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := NewPipeline(mocks.NewMockEmbedder(ctrl), vectorstore_mocks.NewMockVectorStore(ctrl), "highlights")
	if _, err := p.Similar(context.Background(), "  ", 5); err == nil {
		t.Error("Similar() with empty query should fail")
	}
}

func TestRecordFromMeta(t *testing.T) {
	r, ok := recordFromMeta(map[string]any{
		vectorstore.KeyRecordID:  "r1",
		vectorstore.KeyTimestamp: float64(42),
	})
	if !ok || r.ID != "r1" || r.Timestamp != 42 {
		t.Errorf("recordFromMeta() = %+v, %v", r, ok)
	}

	if _, ok := recordFromMeta(map[string]any{}); ok {
		t.Error("recordFromMeta() without id should fail")
	}
}
