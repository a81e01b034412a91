package socialgraph

import (
	"context"
)

// runnerCall records one statement issued through the fake runner.
type runnerCall struct {
	Query  string
	Params map[string]any
	InTx   bool
}

// fakeRunner is an in-memory Runner for unit tests. Responses are consumed
// in FIFO order; once exhausted, calls receive an empty result. ExecuteWrite
// invokes the work function with a handle that feeds from the same queue and
// tracks commit/rollback outcomes.
type fakeRunner struct {
	calls     []runnerCall
	responses []fakeResponse

	txStarted  int
	committed  int
	rolledBack int
}

type fakeResponse struct {
	result *Result
	err    error
}

func (f *fakeRunner) respond(result *Result, err error) {
	f.responses = append(f.responses, fakeResponse{result: result, err: err})
}

func (f *fakeRunner) next() (*Result, error) {
	if len(f.responses) == 0 {
		return &Result{}, nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	if resp.result == nil && resp.err == nil {
		return &Result{}, nil
	}
	return resp.result, resp.err
}

func (f *fakeRunner) Run(ctx context.Context, query string, params map[string]any) (*Result, error) {
	f.calls = append(f.calls, runnerCall{Query: query, Params: params})
	return f.next()
}

func (f *fakeRunner) ExecuteWrite(ctx context.Context, work func(tx Tx) error) error {
	f.txStarted++
	err := work(fakeTx{runner: f})
	if err != nil {
		f.rolledBack++
		return err
	}
	f.committed++
	return nil
}

type fakeTx struct {
	runner *fakeRunner
}

func (t fakeTx) Run(ctx context.Context, query string, params map[string]any) (*Result, error) {
	t.runner.calls = append(t.runner.calls, runnerCall{Query: query, Params: params, InTx: true})
	return t.runner.next()
}

// countResult builds the single-record result of a count(...) query.
func countResult(n int64) *Result {
	return &Result{
		Records: []Record{{"c": n}},
		Keys:    []string{"c"},
	}
}

// namesResult builds a result with one "name" record per argument.
func namesResult(names ...string) *Result {
	r := &Result{Keys: []string{"name"}}
	for _, name := range names {
		r.Records = append(r.Records, Record{"name": name})
	}
	return r
}
