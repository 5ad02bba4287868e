package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/pagedigest/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Membership(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(bloom.DefaultExpectedItems, bloom.DefaultFalsePositiveRate)
	seen := []string{"https://example.com/recipes/soup", "https://example.com/recipes/bread"}
	for _, k := range seen {
		f.Add(k)
	}

	for _, k := range seen {
		assert.True(t, f.Test(k), "added key %s must test present", k)
	}
	assert.False(t, f.Test("https://example.com/recipes/pie"))
}

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(bloom.DefaultExpectedItems, bloom.DefaultFalsePositiveRate)

	assert.False(t, f.TestAndAdd("3f2a9c0d11b4e7a5"), "first sighting reports absent")
	assert.True(t, f.TestAndAdd("3f2a9c0d11b4e7a5"), "second sighting reports present")
	assert.True(t, f.Test("3f2a9c0d11b4e7a5"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.Equal(t, uint(0), f.EstimatedCount())

	for range 4 {
		f.Add("https://example.com/a")
		f.Add("https://example.com/b")
		f.Add("https://example.com/c")
	}

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "repeated adds should count once, got %d", count)
}

func TestFilter_FalsePositiveRateStaysNearTarget(t *testing.T) {
	t.Parallel()

	const n = 10000
	f := bloom.NewFilter(n, 0.01)
	for i := range n {
		f.Add(fmt.Sprintf("https://example.com/in/%d", i))
	}

	hits := 0
	for i := range n {
		if f.Test(fmt.Sprintf("https://example.com/out/%d", i)) {
			hits++
		}
	}

	rate := float64(hits) / n
	assert.Less(t, rate, 0.02, "false positive rate %f", rate)
}

func TestFilter_ConcurrentAdds(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.TestAndAdd(fmt.Sprintf("https://example.com/%d", i))
		}()
	}
	wg.Wait()

	for i := range 50 {
		assert.True(t, f.Test(fmt.Sprintf("https://example.com/%d", i)))
	}
}
