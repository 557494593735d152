package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestServeRequiresAccessSecret(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "")

	err := serve(context.Background(), zap.NewNop(), STORAGE_MEMORY, false)
	assert.EqualError(t, err, "ACCESS_SECRET must be set")
}
