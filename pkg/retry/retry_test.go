package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"groupme/pkg/retry"
)

var errTest = errors.New("test error")

func TestWrapWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.WrapWithRetry(t.Context(), func() error {
			calls++
			if calls < 3 {
				return errTest
			}
			return nil
		}, retry.Attempts(5), time.Millisecond)()

		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.WrapWithRetry(t.Context(), func() error {
			calls++
			return errTest
		}, retry.Attempts(2), time.Millisecond)()

		require.ErrorIs(t, err, errTest)
		require.Equal(t, 2, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := retry.WrapWithRetry(ctx, func() error {
			return errTest
		}, retry.Attempts(10), time.Hour)()

		require.ErrorIs(t, err, context.Canceled)
	})
}
