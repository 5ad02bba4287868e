// Package gemini estimates the token footprint of stored digests with the
// local Gemini tokenizer. No model is called.
package gemini

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/pagedigest"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultModel selects the tokenizer vocabulary.
const DefaultModel = "gemini-2.0-flash"

var _ pagedigest.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts the tokens of digest markdown with the Gemini
// tokenizer vocabulary. TokenCounter is safe for concurrent use.
type TokenCounter struct {
	mu  sync.Mutex
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
// An empty model selects DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "unsupported tokenizer model %q: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens returns the token count of markdown. Whitespace-only input
// counts as zero without touching the tokenizer.
func (tc *TokenCounter) CountTokens(ctx context.Context, markdown string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(markdown) == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(markdown, genai.RoleUser),
	}

	tc.mu.Lock()
	result, err := tc.tok.CountTokens(contents, nil)
	tc.mu.Unlock()
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
