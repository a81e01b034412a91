package socialgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSchema(t *testing.T) {
	service, runner := newTestService(t)

	require.NoError(t, service.InitSchema(context.Background()))
	require.Len(t, runner.calls, len(schemaQueries))
	for _, call := range runner.calls {
		assert.Contains(t, call.Query, "IF NOT EXISTS")
	}
}

func TestReset(t *testing.T) {
	service, runner := newTestService(t)

	require.NoError(t, service.Reset(context.Background()))
	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0].Query, "DETACH DELETE")
}

func TestStats(t *testing.T) {
	service, runner := newTestService(t)
	runner.respond(countResult(15), nil) // users
	runner.respond(countResult(45), nil) // posts
	runner.respond(countResult(5), nil)  // tags
	runner.respond(namesResult("food", "music", "sports", "tech", "travel"), nil)
	runner.respond(&Result{Records: []Record{
		{"name": "Ada", "friends": int64(4)},
		{"name": "Boris", "friends": int64(3)},
	}}, nil)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(15), stats.Users)
	assert.Equal(t, int64(45), stats.Posts)
	assert.Equal(t, int64(5), stats.Tags)
	assert.Equal(t, []string{"food", "music", "sports", "tech", "travel"}, stats.TagNames)
	require.Len(t, stats.MostFriended, 2)
	assert.Equal(t, FriendDegree{Name: "Ada", Friends: 4}, stats.MostFriended[0])
}
