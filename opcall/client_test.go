package opcall

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/danmuck/opwire/internal/testutil/testlog"
)

type fakeExecutor struct {
	lastReq *Request
	resp    *Response
	err     error
}

func (f *fakeExecutor) Execute(_ context.Context, req *Request) (*Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestClientExecuteActionUnwrapsBody(t *testing.T) {
	testlog.Start(t)

	exec := &fakeExecutor{
		resp: &Response{OK: true, Data: json.RawMessage(`{"ResponseId":"42"}`)},
	}
	client := NewClient(exec)

	result, err := client.ExecuteAction(context.Background(), "Foo", []Parameter{
		{Name: "x", Type: TypeString, Value: "bar"},
	}, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if exec.lastReq == nil {
		t.Fatalf("executor never called")
	}
	if exec.lastReq.Metadata.OperationType != 0 || exec.lastReq.Metadata.OperationName != "Foo" {
		t.Fatalf("unexpected metadata: %+v", exec.lastReq.Metadata)
	}

	body, ok := result.Body.(map[string]any)
	if !ok {
		t.Fatalf("unexpected body: %#v", result.Body)
	}
	if body["ResponseId"] != "42" {
		t.Fatalf("unexpected body contents: %#v", body)
	}
}

func TestClientExecuteFunctionAppendsBoundEntity(t *testing.T) {
	testlog.Start(t)

	exec := &fakeExecutor{resp: &Response{OK: true}}
	client := NewClient(exec)

	bound := &EntityRef{ID: "AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE", EntityType: "account"}
	if _, err := client.ExecuteFunction(context.Background(), "Bar", nil, bound); err != nil {
		t.Fatalf("execute: %v", err)
	}

	meta := exec.lastReq.Metadata
	if meta.OperationType != 1 {
		t.Fatalf("unexpected operation type: %d", meta.OperationType)
	}
	if meta.BoundParameter != "entity" {
		t.Fatalf("unexpected bound parameter: %q", meta.BoundParameter)
	}
	ref, ok := exec.lastReq.Values["entity"].(*EntityRef)
	if !ok || ref.ID != "AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE" {
		t.Fatalf("bound id not passed verbatim: %#v", exec.lastReq.Values["entity"])
	}
}

func TestClientValidationFailsBeforeExecutor(t *testing.T) {
	testlog.Start(t)

	exec := &fakeExecutor{resp: &Response{OK: true}}
	client := NewClient(exec)

	_, err := client.ExecuteAction(context.Background(), "Foo", []Parameter{
		{Name: "bad", Type: TypeInteger, Value: "7"},
	}, nil)
	if !errors.Is(err, ErrValueShape) {
		t.Fatalf("expected value shape error, got %v", err)
	}
	if exec.lastReq != nil {
		t.Fatalf("executor called despite validation failure")
	}
}

func TestClientPropagatesExecutorErrorUnmodified(t *testing.T) {
	testlog.Start(t)

	hostErr := errors.New("host unreachable")
	client := NewClient(&fakeExecutor{err: hostErr})

	_, err := client.ExecuteAction(context.Background(), "Foo", nil, nil)
	if !errors.Is(err, hostErr) {
		t.Fatalf("expected host error, got %v", err)
	}
	// No operation-name prefix is added on this path.
	if err.Error() != "host unreachable" {
		t.Fatalf("host error was wrapped: %q", err.Error())
	}
}

func TestClientSoftFallbackOnUndecodableBody(t *testing.T) {
	testlog.Start(t)

	resp := &Response{OK: true, Data: json.RawMessage(`not json`)}
	client := NewClient(&fakeExecutor{resp: resp})

	result, err := client.ExecuteAction(context.Background(), "Foo", nil, nil)
	if err != nil {
		t.Fatalf("undecodable body surfaced as error: %v", err)
	}
	if result.Body != nil {
		t.Fatalf("expected nil body, got %#v", result.Body)
	}
	if result.Raw != resp {
		t.Fatalf("raw response not preserved")
	}
}

func TestClientEmptyBody(t *testing.T) {
	testlog.Start(t)

	client := NewClient(&fakeExecutor{resp: &Response{OK: true}})
	result, err := client.ExecuteAction(context.Background(), "Foo", nil, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Body != nil {
		t.Fatalf("expected nil body for empty response, got %#v", result.Body)
	}
}
