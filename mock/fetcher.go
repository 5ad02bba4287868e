package mock

import (
	"context"

	"github.com/fwojciec/pagedigest"
)

var _ pagedigest.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagedigest.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

// Close calls CloseFn when set. Most tests never close a fetcher.
func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
