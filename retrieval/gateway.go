// Package retrieval supplies ranked knowledge-base snippets used to ground
// model answers. The turn orchestrator consumes the Gateway contract only;
// retrieval faults degrade a turn to an ungrounded answer, they never fail it.
package retrieval

import "context"

// Result is one ranked knowledge-base snippet. Results are folded into the
// session's system message and never persisted on their own.
type Result struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Gateway searches the knowledge base.
type Gateway interface {
	// Search returns up to topK snippets ranked by relevance to the query.
	// An empty result set is permissible.
	Search(ctx context.Context, query string, topK int) ([]Result, error)
	// ChunkCount reports the number of indexed chunks. Used only to
	// short-circuit Search when the index is empty.
	ChunkCount() int
}
