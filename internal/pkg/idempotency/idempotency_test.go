package idempotency_test

import (
	"context"
	"errors"
	"testing"

	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/idempotency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("existing row is returned without creating", func(t *testing.T) {
		createCalled := false

		row, created, err := idempotency.CreateOrFetch(ctx,
			func(context.Context) (string, error) { return "existing", nil },
			func(context.Context) (string, error) {
				createCalled = true
				return "new", nil
			})

		require.NoError(t, err)
		assert.Equal(t, "existing", row)
		assert.False(t, created)
		assert.False(t, createCalled)
	})

	t.Run("missing row is created", func(t *testing.T) {
		row, created, err := idempotency.CreateOrFetch(ctx,
			func(context.Context) (string, error) {
				return "", errs.NewObjectNotFoundError("row", "key")
			},
			func(context.Context) (string, error) { return "new", nil })

		require.NoError(t, err)
		assert.Equal(t, "new", row)
		assert.True(t, created)
	})

	t.Run("losing the insert race falls back to the winner's row", func(t *testing.T) {
		finds := 0

		row, created, err := idempotency.CreateOrFetch(ctx,
			func(context.Context) (string, error) {
				finds++
				if finds == 1 {
					return "", errs.NewObjectNotFoundError("row", "key")
				}
				return "winner", nil
			},
			func(context.Context) (string, error) {
				return "", errs.NewObjectAlreadyExistsError("row", "key")
			})

		require.NoError(t, err)
		assert.Equal(t, "winner", row)
		assert.False(t, created)
		assert.Equal(t, 2, finds)
	})

	t.Run("find errors other than not-found surface", func(t *testing.T) {
		boom := errors.New("connection reset")

		_, created, err := idempotency.CreateOrFetch(ctx,
			func(context.Context) (string, error) { return "", boom },
			func(context.Context) (string, error) { return "new", nil })

		require.ErrorIs(t, err, boom)
		assert.False(t, created)
	})

	t.Run("create errors other than already-exists surface", func(t *testing.T) {
		boom := errors.New("constraint violation")

		_, created, err := idempotency.CreateOrFetch(ctx,
			func(context.Context) (string, error) {
				return "", errs.NewObjectNotFoundError("row", "key")
			},
			func(context.Context) (string, error) { return "", boom })

		require.ErrorIs(t, err, boom)
		assert.False(t, created)
	})

	t.Run("second find failing after a lost race surfaces the error", func(t *testing.T) {
		finds := 0
		boom := errors.New("connection reset")

		_, created, err := idempotency.CreateOrFetch(ctx,
			func(context.Context) (string, error) {
				finds++
				if finds == 1 {
					return "", errs.NewObjectNotFoundError("row", "key")
				}
				return "", boom
			},
			func(context.Context) (string, error) {
				return "", errs.NewObjectAlreadyExistsError("row", "key")
			})

		require.ErrorIs(t, err, boom)
		assert.False(t, created)
	})
}
