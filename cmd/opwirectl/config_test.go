package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/opwire/opcall"
)

func TestLoadInvocationExampleConfig(t *testing.T) {
	inv, err := loadInvocation("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if inv.Endpoint != "http://localhost:9400" {
		t.Fatalf("unexpected endpoint: %q", inv.Endpoint)
	}
	if inv.Operation != "Echo" {
		t.Fatalf("unexpected operation: %q", inv.Operation)
	}
	if inv.Kind != opcall.Action {
		t.Fatalf("unexpected kind: %v", inv.Kind)
	}
	if inv.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", inv.Timeout)
	}
	if inv.Bound == nil {
		t.Fatalf("expected bound entity")
	}
	if inv.Bound.ID != "3f2504e0-4f89-11d3-9a0c-0305e82c3301" {
		t.Fatalf("bound id not canonicalized: %q", inv.Bound.ID)
	}
	if inv.Bound.EntityType != "account" {
		t.Fatalf("unexpected bound entity type: %q", inv.Bound.EntityType)
	}
	if len(inv.Params) != 2 {
		t.Fatalf("unexpected params: %+v", inv.Params)
	}
	if inv.Params[0].Name != "subject" || inv.Params[0].Type != opcall.TypeString || inv.Params[0].Value != "hello" {
		t.Fatalf("unexpected first param: %+v", inv.Params[0])
	}
	if inv.Params[1].Type != opcall.TypeInteger || inv.Params[1].Value != int64(3) {
		t.Fatalf("unexpected second param: %+v", inv.Params[1])
	}
	for _, p := range inv.Params {
		if err := opcall.CheckRequestParameterType(p); err != nil {
			t.Fatalf("example param fails validation: %v", err)
		}
	}
}

func TestLoadInvocationDefaultsAndErrors(t *testing.T) {
	write := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		return path
	}

	inv, err := loadInvocation(write(t, `operation = "WhoAmI"`+"\n"+`kind = "function"`))
	if err != nil {
		t.Fatalf("load minimal config: %v", err)
	}
	if inv.Endpoint != "http://localhost:9400" {
		t.Fatalf("default endpoint missing: %q", inv.Endpoint)
	}
	if inv.Kind != opcall.Function {
		t.Fatalf("unexpected kind: %v", inv.Kind)
	}
	if inv.Timeout != 10*time.Second {
		t.Fatalf("default timeout missing: %v", inv.Timeout)
	}

	if _, err := loadInvocation(write(t, `endpoint = "http://x"`)); err == nil {
		t.Fatalf("missing operation accepted")
	}
	if _, err := loadInvocation(write(t, `operation = "X"`+"\n"+`kind = "query"`)); err == nil {
		t.Fatalf("unknown kind accepted")
	}
	if _, err := loadInvocation(write(t, `operation = "X"`+"\n\n"+"[bound]\n"+`id = "1"`)); err == nil {
		t.Fatalf("bound without entity_type accepted")
	}
}

func TestLoadInvocationDateTimeParameter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `operation = "Schedule"

[[parameters]]
name = "when"
type = "DateTime"
value = 2024-01-01T09:30:00Z
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	inv, err := loadInvocation(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	when, ok := inv.Params[0].Value.(time.Time)
	if !ok {
		t.Fatalf("datetime not decoded as time value: %#v", inv.Params[0].Value)
	}
	if when.UTC().Hour() != 9 {
		t.Fatalf("unexpected time: %v", when)
	}
	if err := opcall.CheckRequestParameterType(inv.Params[0]); err != nil {
		t.Fatalf("datetime param fails validation: %v", err)
	}
}
