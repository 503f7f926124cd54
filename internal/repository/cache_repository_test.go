package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "radio:", zap.NewNop())
	ctx := context.Background()

	var dest map[string]string
	assert.ErrorIs(t, repo.Get(ctx, "schedule:all", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "schedule:all", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "schedule:*"))
	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}

func TestCacheRepositoryNamespacesKeys(t *testing.T) {
	repo := NewCacheRepository(nil, "radio:", zap.NewNop())
	assert.Equal(t, "radio:schedule:all", repo.key("schedule:all"))
	assert.Equal(t, "djs:*", NewCacheRepository(nil, "", nil).key("djs:*"))
}
