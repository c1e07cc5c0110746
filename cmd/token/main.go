// Command token issues a bearer token for a calling service, signed with the
// configured api.token_secret. The token is printed to stdout.
//
// Flags:
//
//	--caller  name of the calling service, recorded as the token subject (required)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/heartmarshall/pathgraph/internal/app"
	"github.com/heartmarshall/pathgraph/internal/auth"
	"github.com/heartmarshall/pathgraph/internal/config"
)

func main() {
	callerFlag := flag.String("caller", "", "name of the calling service")
	flag.Parse()

	if *callerFlag == "" {
		log.Fatal("--caller is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.API.TokenSecret == "" {
		log.Fatal("api.token_secret is not configured")
	}

	tokens, err := auth.NewTokenManager(cfg.API.TokenSecret, cfg.API.TokenIssuer, cfg.API.TokenTTL)
	if err != nil {
		log.Fatalf("token manager: %v", err)
	}

	token, err := tokens.Issue(*callerFlag)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	logger.Info("token issued",
		slog.String("caller", *callerFlag),
		slog.Duration("ttl", cfg.API.TokenTTL),
	)
	fmt.Println(token)
}
