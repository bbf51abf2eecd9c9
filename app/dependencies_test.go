package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AppName:     "linkyboard-api",
		Environment: "test",
		AI: config.AIConfig{
			SummaryModel:     "gpt-4o-mini",
			MaxSummaryLength: 500,
			MaxKeywords:      5,
		},
		Observability: config.ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

func TestNewDependenciesWithStubLayer(t *testing.T) {
	deps, err := NewDependencies(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Nil(t, deps.DB)
	assert.NotNil(t, deps.Contents)
	assert.NotNil(t, deps.SummaryCache)
	assert.NotNil(t, deps.Users)
	assert.NotNil(t, deps.ClipperService)
	assert.NotNil(t, deps.SummarizeService)
	assert.NotNil(t, deps.UserService)
	assert.NotNil(t, deps.HealthHandler)
	assert.NotNil(t, deps.ClipperHandler)
	assert.NotNil(t, deps.UserHandler)
	assert.NotNil(t, deps.Metrics)
	assert.NotNil(t, deps.Tracker)
}

func TestDependenciesClose(t *testing.T) {
	deps, err := NewDependencies(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, deps.Close(ctx))
}

func TestStubLayerServesRequests(t *testing.T) {
	deps, err := NewDependencies(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)

	user, err := deps.UserService.Sync(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
}
