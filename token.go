package pagedigest

import "context"

// TokenCounter measures the size of a digest's markdown rendition in model
// tokens. Ingest sums the counts of saved digests to show how much context
// an export would take.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
