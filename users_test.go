package socialgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *fakeRunner) {
	t.Helper()
	runner := &fakeRunner{}
	service, err := NewService(runner)
	require.NoError(t, err)
	return service, runner
}

func TestUpsertUser(t *testing.T) {
	service, runner := newTestService(t)

	u := User{ID: "U001", Name: "Ada", Email: "ada@example.com", RegisteredAt: "2025-01-01"}
	require.NoError(t, service.UpsertUser(context.Background(), u))

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0].Query, "MERGE")
	assert.Contains(t, paramValues(runner.calls[0].Params), "ada@example.com")
}

func TestUpsertUser_Idempotent(t *testing.T) {
	// Same input twice: both calls issue the same merge; the backend
	// converges on a single node with the second call's values.
	service, runner := newTestService(t)
	ctx := context.Background()

	u := User{ID: "U001", Name: "Ada", Email: "ada@example.com", RegisteredAt: "2025-01-01"}
	require.NoError(t, service.UpsertUser(ctx, u))
	require.NoError(t, service.UpsertUser(ctx, u))

	require.Len(t, runner.calls, 2)
	assert.Equal(t, runner.calls[0].Query, runner.calls[1].Query)
	assert.Equal(t, runner.calls[0].Params, runner.calls[1].Params)
}

func TestUpsertUser_EmptyEmail(t *testing.T) {
	service, runner := newTestService(t)

	err := service.UpsertUser(context.Background(), User{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrQuery)
	assert.Empty(t, runner.calls)
}

func TestInsertUser(t *testing.T) {
	service, runner := newTestService(t)

	u := User{ID: "U002", Name: "Boris", Email: "boris@example.com", RegisteredAt: "2025-01-02"}
	require.NoError(t, service.InsertUser(context.Background(), u))

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0].Query, "CREATE")
	assert.NotContains(t, runner.calls[0].Query, "MERGE")
	assert.Equal(t, "boris@example.com", runner.calls[0].Params["email"])
}

func TestFindUser_NotFound(t *testing.T) {
	service, runner := newTestService(t)
	runner.respond(&Result{}, nil)

	_, err := service.FindUser(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "ghost@example.com")
}

func TestFindUser(t *testing.T) {
	service, runner := newTestService(t)
	runner.respond(&Result{Records: []Record{{
		"n": Node{Props: map[string]any{
			"id": "U001", "name": "Ada", "email": "ada@example.com", "registeredAt": "2025-01-01",
		}},
	}}}, nil)

	u, err := service.FindUser(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestAllUsers(t *testing.T) {
	service, runner := newTestService(t)
	runner.respond(&Result{Records: []Record{
		{"id": "U001", "name": "Ada", "email": "ada@example.com", "registeredAt": "2025-01-01"},
		{"id": nil, "name": nil, "email": "bare@example.com", "registeredAt": nil},
	}}, nil)

	users, err := service.AllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, User{ID: "U001", Name: "Ada", Email: "ada@example.com", RegisteredAt: "2025-01-01"}, users[0])
	// Nodes created outside the upsert path may lack optional fields.
	assert.Equal(t, User{Email: "bare@example.com"}, users[1])
}

func TestAllUsers_MissingEmailRejected(t *testing.T) {
	service, runner := newTestService(t)
	runner.respond(&Result{Records: []Record{{"id": "U009"}}}, nil)

	_, err := service.AllUsers(context.Background())
	assert.ErrorIs(t, err, ErrQuery)
}

func TestUpsertTag(t *testing.T) {
	service, runner := newTestService(t)

	require.NoError(t, service.UpsertTag(context.Background(), "music"))
	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0].Query, "MERGE (t:Tag")
	assert.Equal(t, "music", runner.calls[0].Params["name"])

	assert.ErrorIs(t, service.UpsertTag(context.Background(), ""), ErrQuery)
}
