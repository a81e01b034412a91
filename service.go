package socialgraph

// Service is the function-call surface of the social graph core. It
// orchestrates entity upserts, relationship writes, the post-creation
// transaction, and the traversal queries, all through a single Runner.
//
// A Service holds no per-request state and is safe for concurrent use; each
// operation acquires its own session or transaction scope from the runner.
// The Service performs no logging: every failure is surfaced to the caller.
type Service struct {
	runner Runner
	users  *Repository[User]
}

// NewService builds a Service on top of the given runner.
func NewService(runner Runner) (*Service, error) {
	users, err := NewRepository[User](runner)
	if err != nil {
		return nil, err
	}
	return &Service{runner: runner, users: users}, nil
}
