package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/opwire/guid"
	"github.com/danmuck/opwire/internal/config"
	"github.com/danmuck/opwire/internal/hostsim"
	"github.com/danmuck/opwire/internal/observability"
	"github.com/danmuck/opwire/opcall"
)

func main() {
	observability.InitLogger("opwire-host")

	configPath := "cmd/opwire-host/config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.LoadHostConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load host config")
	}
	log.Info().Str("path", configPath).Msg("loaded host config")

	server := hostsim.New(cfg.Name, cfg.CorsOrigins)
	registerBuiltins(server)

	log.Info().Str("name", cfg.Name).Str("addr", cfg.Addr).Msg("host started")
	if err := server.Serve(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("host stopped")
	}
}

func registerBuiltins(server *hostsim.Server) {
	must(server.Register(hostsim.Operation{
		Name: "Echo",
		Kind: opcall.Action,
		Handler: func(_ context.Context, req *opcall.Request) (any, error) {
			return req.Values, nil
		},
	}))
	must(server.Register(hostsim.Operation{
		Name: "WhoAmI",
		Kind: opcall.Function,
		Handler: func(_ context.Context, _ *opcall.Request) (any, error) {
			return map[string]string{
				"UserId":         guid.New(),
				"BusinessUnitId": guid.New(),
				"OrganizationId": guid.New(),
			}, nil
		},
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("register builtin operation")
	}
}
