package opcall

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Executor is the host execution endpoint for built requests.
type Executor interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// Response is the raw host result for one invocation.
type Response struct {
	OK     bool            `json:"ok"`
	Status int             `json:"status,omitempty"`
	Error  string          `json:"error,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Result is an unwrapped invocation outcome. Body holds the decoded
// structured body when the host returned one; Raw always carries the
// response as received.
type Result struct {
	Body any
	Raw  *Response
}

// Client builds, validates, and executes operation calls through one
// Executor. Validation runs strictly before the executor is touched.
type Client struct {
	exec Executor
	log  zerolog.Logger
}

// NewClient wraps a host executor.
func NewClient(exec Executor) *Client {
	return &Client{
		exec: exec,
		log:  log.With().Str("component", "opcall").Logger(),
	}
}

// ExecuteAction invokes a side-effecting server operation. A non-nil bound
// entity makes the call a bound operation.
func (c *Client) ExecuteAction(ctx context.Context, name string, params []Parameter, bound *EntityRef) (*Result, error) {
	return c.execute(ctx, name, Action, params, bound)
}

// ExecuteFunction invokes a read-only server operation.
func (c *Client) ExecuteFunction(ctx context.Context, name string, params []Parameter, bound *EntityRef) (*Result, error) {
	return c.execute(ctx, name, Function, params, bound)
}

// execute runs the validate-build-invoke-unwrap path. Executor failures
// propagate as returned, without an operation-name prefix; validation
// failures carry their own parameter context already.
func (c *Client) execute(ctx context.Context, name string, kind OperationKind, params []Parameter, bound *EntityRef) (*Result, error) {
	req, err := BuildRequest(name, kind, params, bound)
	if err != nil {
		return nil, err
	}
	c.log.Debug().
		Str("operation", name).
		Str("kind", kind.String()).
		Int("params", len(req.Values)).
		Msg("executing operation")

	resp, err := c.exec.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return unwrap(resp), nil
}

// unwrap decodes the structured body of a successful response. A body
// that does not decode is returned raw rather than treated as an error.
func unwrap(resp *Response) *Result {
	res := &Result{Raw: resp}
	if len(resp.Data) == 0 {
		return res
	}
	var body any
	if err := json.Unmarshal(resp.Data, &body); err != nil {
		return res
	}
	res.Body = body
	return res
}
