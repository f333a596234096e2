package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTx struct{ DBExecutor }

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM bookings"))
	assert.Equal(t, "insert", operation("  INSERT\nINTO bookings"))
	assert.Equal(t, "unknown", operation("   "))
}

func TestGetExecutor(t *testing.T) {
	fallback := Wrap(&sql.DB{}, nil)
	ctx := context.Background()

	assert.Same(t, fallback, GetExecutor(ctx, fallback))
	assert.False(t, IsInTransaction(ctx))

	tx := stubTx{}
	txCtx := WithTx(ctx, tx)
	assert.Equal(t, tx, GetExecutor(txCtx, fallback))
	assert.True(t, IsInTransaction(txCtx))
}
