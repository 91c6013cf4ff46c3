package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks pagemark/internal/vectorstore VectorStore

import "context"

// Payload keys stored with every highlight point.
const (
	KeyRecordID  = "record_id"
	KeyURL       = "url"
	KeyTitle     = "title"
	KeyText      = "text"
	KeyTimestamp = "timestamp"
)

// Point is one embedded highlight.
type Point struct {
	ID   string // record id; mapped to a Qdrant UUID by PointID
	Vec  []float32
	Meta map[string]any
}

// SearchResult is one scored hit of a similarity search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore is the vector index the semantic search runs against.
type VectorStore interface {
	// Upsert inserts or replaces points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns the k points closest to query. A non-empty url limits
	// the search to highlights of that page.
	Search(ctx context.Context, collection string, query []float32, k int, url string) ([]SearchResult, error)

	// Delete removes the points of the given record ids.
	Delete(ctx context.Context, collection string, ids []string) error
}
