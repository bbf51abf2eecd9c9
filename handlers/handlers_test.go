package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/internal/observability"
	"github.com/linkyboard/linkyboard-api/models"
	"github.com/linkyboard/linkyboard-api/repositories"
	"github.com/linkyboard/linkyboard-api/services/clipper"
	"github.com/linkyboard/linkyboard-api/services/summarize"
	"github.com/linkyboard/linkyboard-api/services/users"
	"github.com/linkyboard/linkyboard-api/utils"
)

const testHTML = `<html><head><title>Test Page</title></head>
<body><p>Some page content about software and code, long enough to summarize.</p></body></html>`

type fakeContents struct {
	saved   []*models.Content
	saveErr error
}

func (f *fakeContents) Save(ctx context.Context, content *models.Content) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, content)
	return nil
}

func (f *fakeContents) GetByURL(ctx context.Context, sourceURL string) (*models.Content, error) {
	return nil, repositories.ErrNotFound
}

func (f *fakeContents) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return nil
}

func (f *fakeContents) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeCache struct{}

func (fakeCache) GetByKey(ctx context.Context, key string) (*models.SummaryCache, error) {
	return nil, repositories.ErrNotFound
}
func (fakeCache) Upsert(ctx context.Context, entry *models.SummaryCache) error { return nil }
func (fakeCache) RecordHit(ctx context.Context, key string) error              { return nil }

type fakeUsers struct {
	err error
}

func (f *fakeUsers) GetOrCreate(ctx context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return models.NewUser(id), nil
}

func (f *fakeUsers) SetActive(ctx context.Context, id int64, active bool) error { return f.err }

// errNotReady is returned by failing health checkers in tests.
var errNotReady = errors.New("dial tcp: connection refused")

type fakeChecker struct {
	err error
}

func (f *fakeChecker) HealthCheck(ctx context.Context) error { return f.err }

func newClipperHandler(t *testing.T, contents *fakeContents) *ClipperHandler {
	t.Helper()
	registry := observability.NewRegistry()
	tracker := observability.NewTracker(registry, zap.NewNop())
	svc := clipper.NewService(
		contents,
		summarize.NewService(fakeCache{}, summarize.NewExtractiveSummarizer(200, 5),
			tracker, registry, zap.NewNop(), "gpt-4o-mini"),
		tracker, zap.NewNop())
	return NewClipperHandler(svc, zap.NewNop())
}

func newUserHandler(t *testing.T, repo *fakeUsers) *UserHandler {
	t.Helper()
	registry := observability.NewRegistry()
	tracker := observability.NewTracker(registry, zap.NewNop())
	return NewUserHandler(users.NewService(repo, tracker, zap.NewNop()), zap.NewNop())
}

// decodeEnvelope parses a recorded response into the envelope shape.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}
