// Command checkauth resolves Earth Engine credentials exactly the way the
// dashboard does — secrets file first, then GEE_JSON_KEY — and reports the
// outcome without starting the server. Useful for verifying a deployment's
// secret configuration.
//
// Usage:
//
//	go run ./cmd/checkauth
//	go run ./cmd/checkauth -token   # also exchange the key for an access token
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/couchcryptid/sea-level-dashboard/internal/auth"
	"github.com/couchcryptid/sea-level-dashboard/internal/config"
)

func main() {
	fetchToken := flag.Bool("token", false, "also fetch an access token to prove the key is accepted")
	flag.Parse()

	if err := run(*fetchToken); err != nil {
		log.Fatal(err)
	}
}

func run(fetchToken bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := auth.NewAuthenticator(cfg).Session(ctx)
	if err != nil {
		return fmt.Errorf("resolve credentials: %w", err)
	}

	fmt.Printf("project:         %s\n", session.ProjectID)
	fmt.Printf("service account: %s\n", session.ClientEmail)

	if fetchToken {
		token, err := session.TokenSource.Token()
		if err != nil {
			return fmt.Errorf("exchange key for token: %w", err)
		}
		fmt.Printf("token expires:   %s\n", token.Expiry.Format(time.RFC3339))
	}

	fmt.Println("credentials OK")
	return nil
}
