package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationName(t *testing.T) {
	assert.Equal(t, "select", operationName("SELECT id FROM appointments WHERE id = $1"))
	assert.Equal(t, "update", operationName("  UPDATE appointments SET status = $1"))
	assert.Equal(t, "unknown", operationName("   "))
}

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	db := &DB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))
}

func TestGetExecutor_WithTransaction(t *testing.T) {
	db := &DB{}
	tx := &Tx{parent: db}
	ctx := WithTx(context.Background(), tx)

	assert.True(t, IsInTransaction(ctx))
	assert.Same(t, tx, GetExecutor(ctx, db))
}
