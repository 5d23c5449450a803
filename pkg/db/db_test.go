package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireDB(t *testing.T) {
	t.Helper()

	if err := Available(); err != nil {
		t.Skipf("database is not available: %v", err)
	}
}

func TestInstance_shared(t *testing.T) {
	requireDB(t)

	assert.Same(t, Instance(), Instance())
	assert.NoError(t, Instance().PingContext(context.Background()))
}

func TestCollect_queryError(t *testing.T) {
	failed := errors.New("syntax error")
	got, err := Collect[int](nil, failed, func(Scanner) (int, error) {
		t.Fatal("scan must not be called")
		return 0, nil
	})

	assert.ErrorIs(t, err, failed)
	assert.Nil(t, got)
}

func TestCollect(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	rows, err := Instance().QueryContext(ctx, `SELECT generate_series(1, 3)`)
	got, err := Collect(rows, err, func(row Scanner) (int, error) {
		var n int
		err := row.Scan(&n)
		return n, err
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}
