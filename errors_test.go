package socialgraph

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil stays nil",
			err:  nil,
			want: nil,
		},
		{
			name: "constraint violation code",
			err: &neo4j.Neo4jError{
				Code: "Neo.ClientError.Schema.ConstraintValidationFailed",
				Msg:  "email already exists",
			},
			want: ErrConstraintViolation,
		},
		{
			name: "statement syntax error",
			err: &neo4j.Neo4jError{
				Code: "Neo.ClientError.Statement.SyntaxError",
				Msg:  "Invalid input",
			},
			want: ErrQuery,
		},
		{
			name: "service unavailable",
			err: &neo4j.Neo4jError{
				Code: "Neo.TransientError.General.ServiceUnavailable",
				Msg:  "no server available",
			},
			want: ErrConnection,
		},
		{
			name: "context deadline",
			err:  context.DeadlineExceeded,
			want: ErrConnection,
		},
		{
			name: "context canceled",
			err:  context.Canceled,
			want: ErrConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassifyError_SentinelPassthrough(t *testing.T) {
	// A NotFound raised inside a transaction function must come back out of
	// the driver machinery unchanged, not re-wrapped.
	wrapped := fmt.Errorf("create post: author %q: %w", "ghost@example.com", ErrNotFound)
	got := classifyError(wrapped)
	assert.Same(t, wrapped, got)
	assert.ErrorIs(t, got, ErrNotFound)
}

func TestClassifyError_UnknownErrorUntouched(t *testing.T) {
	plain := errors.New("something else entirely")
	assert.Same(t, plain, classifyError(plain))

	unknownNeo := &neo4j.Neo4jError{Code: "Neo.ClientError.Security.Unauthorized", Msg: "bad credentials"}
	got := classifyError(unknownNeo)
	assert.ErrorIs(t, got, unknownNeo)
	for _, sentinel := range []error{ErrNotFound, ErrConnection, ErrConstraintViolation, ErrQuery} {
		assert.NotErrorIs(t, got, sentinel)
	}
}
