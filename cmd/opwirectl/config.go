package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/opwire/guid"
	"github.com/danmuck/opwire/opcall"
)

type fileConfig struct {
	Endpoint   string        `toml:"endpoint"`
	Operation  string        `toml:"operation"`
	Kind       string        `toml:"kind"`
	Timeout    string        `toml:"timeout"`
	Bound      boundConfig   `toml:"bound"`
	Parameters []paramConfig `toml:"parameters"`
}

type boundConfig struct {
	ID         string `toml:"id"`
	EntityType string `toml:"entity_type"`
	Name       string `toml:"name"`
}

type paramConfig struct {
	Name  string `toml:"name"`
	Type  string `toml:"type"`
	Value any    `toml:"value"`
}

type invocation struct {
	Endpoint  string
	Operation string
	Kind      opcall.OperationKind
	Timeout   time.Duration
	Params    []opcall.Parameter
	Bound     *opcall.EntityRef
}

func defaultInvocation() invocation {
	return invocation{
		Endpoint: "http://localhost:9400",
		Kind:     opcall.Action,
		Timeout:  10 * time.Second,
	}
}

func loadInvocation(path string) (invocation, error) {
	inv := defaultInvocation()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return invocation{}, fmt.Errorf("load invocation config: %w", err)
	}

	if meta.IsDefined("endpoint") {
		if v := strings.TrimSpace(raw.Endpoint); v != "" {
			inv.Endpoint = v
		}
	}

	inv.Operation = strings.TrimSpace(raw.Operation)
	if inv.Operation == "" {
		return invocation{}, fmt.Errorf("invocation config missing operation")
	}

	if meta.IsDefined("kind") {
		kind, err := parseKind(raw.Kind)
		if err != nil {
			return invocation{}, err
		}
		inv.Kind = kind
	}

	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return invocation{}, fmt.Errorf("parse timeout: %w", err)
		}
		inv.Timeout = d
	}

	if meta.IsDefined("bound") {
		id := strings.TrimSpace(raw.Bound.ID)
		entityType := strings.TrimSpace(raw.Bound.EntityType)
		if id == "" || entityType == "" {
			return invocation{}, fmt.Errorf("bound entity requires id and entity_type")
		}
		// Canonicalize here; the call layer transmits ids verbatim.
		normalized, err := guid.Normalize(id)
		if err != nil {
			return invocation{}, fmt.Errorf("normalize bound id: %w", err)
		}
		inv.Bound = &opcall.EntityRef{
			ID:         normalized,
			EntityType: entityType,
			Name:       strings.TrimSpace(raw.Bound.Name),
		}
	}

	for i, p := range raw.Parameters {
		name := strings.TrimSpace(p.Name)
		typeTag := strings.TrimSpace(p.Type)
		if name == "" || typeTag == "" {
			return invocation{}, fmt.Errorf("parameter[%d] requires name and type", i)
		}
		inv.Params = append(inv.Params, opcall.Parameter{
			Name:  name,
			Type:  opcall.ParamType(typeTag),
			Value: p.Value,
		})
	}

	return inv, nil
}

func parseKind(raw string) (opcall.OperationKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "action":
		return opcall.Action, nil
	case "function":
		return opcall.Function, nil
	}
	return opcall.Action, fmt.Errorf("unknown operation kind %q", raw)
}
