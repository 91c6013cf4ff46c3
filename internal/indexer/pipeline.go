// Package indexer keeps the semantic index of highlight text in step with the
// highlight store.
package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks pagemark/internal/indexer Embedder

import (
	"context"
	"fmt"
	"strings"

	"pagemark/internal/contextutil"
	"pagemark/internal/highlight"
	"pagemark/internal/vectorstore"
)

// DefaultBatchSize is the number of records embedded per request by IndexAll.
const DefaultBatchSize = 32

// Embedder turns texts into vectors, one per text.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline embeds highlight text and writes it to the vector store.
type Pipeline struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	batchSize   int
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(embedder Embedder, vectorStore vectorstore.VectorStore, collection string) *Pipeline {
	return &Pipeline{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		batchSize:   DefaultBatchSize,
	}
}

// Index embeds one record and upserts its point.
func (p *Pipeline) Index(ctx context.Context, record highlight.Record) error {
	return p.indexBatch(ctx, []highlight.Record{record})
}

// Remove deletes the points of the given record ids.
func (p *Pipeline) Remove(ctx context.Context, ids []string) error {
	if err := p.vectorStore.Delete(ctx, p.collection, ids); err != nil {
		return fmt.Errorf("failed to delete vectors: %w", err)
	}
	return nil
}

// IndexAll embeds and upserts every record, batchSize records per request.
// A failed batch is logged and skipped; IndexAll returns the number of
// records indexed and an error if any batch failed.
func (p *Pipeline) IndexAll(ctx context.Context, records []highlight.Record) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "starting indexing", "total_records", len(records))

	var indexed, failed int
	for start := 0; start < len(records); start += p.batchSize {
		select {
		case <-ctx.Done():
			return indexed, ctx.Err()
		default:
		}

		end := min(start+p.batchSize, len(records))
		batch := records[start:end]
		if err := p.indexBatch(ctx, batch); err != nil {
			failed += len(batch)
			logger.ErrorContext(ctx, "failed to index batch", "start", start, "size", len(batch), "error", err)
			continue
		}
		indexed += len(batch)
	}

	logger.InfoContext(ctx, "indexing completed", "total_records", len(records), "success", indexed, "errors", failed)

	if failed > 0 {
		return indexed, fmt.Errorf("indexing completed with %d errors", failed)
	}
	return indexed, nil
}

func (p *Pipeline) indexBatch(ctx context.Context, records []highlight.Record) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(embeddings))
	}

	points := make([]vectorstore.Point, len(records))
	for i, r := range records {
		points[i] = vectorstore.Point{
			ID:  r.ID,
			Vec: embeddings[i],
			Meta: map[string]any{
				vectorstore.KeyURL:       r.URL,
				vectorstore.KeyTitle:     r.Title,
				vectorstore.KeyText:      r.Text,
				vectorstore.KeyTimestamp: r.Timestamp,
			},
		}
	}

	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}
	return nil
}

// Similar returns up to k highlights whose text is closest to query.
func (p *Pipeline) Similar(ctx context.Context, query string, k int) ([]highlight.Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("embedding count mismatch: expected 1, got %d", len(embeddings))
	}

	results, err := p.vectorStore.Search(ctx, p.collection, embeddings[0], k, "")
	if err != nil {
		return nil, fmt.Errorf("failed to search vectors: %w", err)
	}

	matches := make([]highlight.Match, 0, len(results))
	for _, res := range results {
		record, ok := recordFromMeta(res.Meta)
		if !ok {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "search result without record id", "point_id", res.PointID)
			continue
		}
		matches = append(matches, highlight.Match{Record: record, Score: res.Score})
	}
	return matches, nil
}

// recordFromMeta rebuilds a record from a point payload.
func recordFromMeta(meta map[string]any) (highlight.Record, bool) {
	id, _ := meta[vectorstore.KeyRecordID].(string)
	if id == "" {
		return highlight.Record{}, false
	}

	r := highlight.Record{ID: id}
	r.URL, _ = meta[vectorstore.KeyURL].(string)
	r.Title, _ = meta[vectorstore.KeyTitle].(string)
	r.Text, _ = meta[vectorstore.KeyText].(string)
	switch ts := meta[vectorstore.KeyTimestamp].(type) {
	case int64:
		r.Timestamp = ts
	case float64:
		r.Timestamp = int64(ts)
	}
	return r, true
}
