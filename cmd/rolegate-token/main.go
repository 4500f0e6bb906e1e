package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"rolegate/internal/core/principal"
	"rolegate/internal/platform/auth"
	"rolegate/internal/platform/config"
	"rolegate/internal/platform/config/raw"

	"github.com/google/uuid"
)

// mints a bearer for local testing against a running api
func main() {
	if err := raw.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		fRole = flag.String("role", "", "principal type: diaryUser | technician | orgAdmin")
		fID   = flag.String("id", "", "account id (uuid)")
		fTTL  = flag.Duration("ttl", 0, "token lifetime, 0 uses AUTH_JWT_TTL")
	)
	flag.Parse()

	role, ok := principal.ParseRole(*fRole)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown -role %q\n", *fRole)
		os.Exit(2)
	}
	id, err := uuid.Parse(*fID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -id: %v\n", err)
		os.Exit(2)
	}

	iss := auth.NewIssuer(auth.ConfigFrom(config.New().Prefix("AUTH_")))
	tok, claims, err := iss.Issue(role, id, *fTTL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(tok)
	fmt.Fprintf(os.Stderr, "jti=%s expires=%s\n", claims.ID, claims.ExpiresAt.Time.UTC().Format(time.RFC3339))
}
