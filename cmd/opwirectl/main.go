package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/opwire/httpexec"
	"github.com/danmuck/opwire/internal/observability"
	"github.com/danmuck/opwire/opcall"
)

func main() {
	observability.InitLogger("opwirectl")

	configPath := "cmd/opwirectl/config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	inv, err := loadInvocation(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load invocation config")
	}
	log.Info().
		Str("path", configPath).
		Str("operation", inv.Operation).
		Str("kind", inv.Kind.String()).
		Msg("loaded invocation config")

	client := opcall.NewClient(httpexec.New(inv.Endpoint))
	ctx, cancel := context.WithTimeout(context.Background(), inv.Timeout)
	defer cancel()

	var result *opcall.Result
	switch inv.Kind {
	case opcall.Function:
		result, err = client.ExecuteFunction(ctx, inv.Operation, inv.Params, inv.Bound)
	default:
		result, err = client.ExecuteAction(ctx, inv.Operation, inv.Params, inv.Bound)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("operation failed")
	}

	out := result.Body
	if out == nil {
		out = result.Raw
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode result")
	}
	fmt.Println(string(encoded))
}
