//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Acquire(t *testing.T) {
	t.Parallel()

	t.Run("replaces Chrome after the recycle threshold", func(t *testing.T) {
		t.Parallel()

		session, err := rod.NewSession(2)
		require.NoError(t, err)
		defer session.Close()

		for range 3 {
			_, release, err := session.Acquire()
			require.NoError(t, err)
			release()
		}

		assert.Equal(t, 2, session.Generation())
	})

	t.Run("keeps a retired process alive for open tabs", func(t *testing.T) {
		t.Parallel()

		session, err := rod.NewSession(1)
		require.NoError(t, err)
		defer session.Close()

		first, releaseFirst, err := session.Acquire()
		require.NoError(t, err)

		_, releaseSecond, err := session.Acquire()
		require.NoError(t, err)
		defer releaseSecond()
		require.Equal(t, 2, session.Generation())

		require.NoError(t, first.Navigate("about:blank"))
		releaseFirst()
		releaseFirst()
	})

	t.Run("fails after close", func(t *testing.T) {
		t.Parallel()

		session, err := rod.NewSession(0)
		require.NoError(t, err)
		require.NoError(t, session.Close())
		require.NoError(t, session.Close())

		_, _, err = session.Acquire()

		require.Error(t, err)
		assert.Equal(t, pagedigest.EINVALID, pagedigest.ErrorCode(err))
	})
}
