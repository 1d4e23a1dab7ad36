// Command schema writes the JSON schema of the rssfetcher configuration.
// It is run by go generate in pkg/config, the result is embedded for config verification.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/umputun/rssfetcher/pkg/config"
)

func main() {
	out := "schema.json"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	data, err := json.MarshalIndent(config.GenerateSchema(), "", "  ")
	if err != nil {
		log.Fatalf("[ERROR] can't marshal rssfetcher config schema: %v", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(out, data, 0o600); err != nil { //nolint:gosec // schema is public, not a secret
		log.Fatalf("[ERROR] can't write config schema to %s: %v", out, err)
	}
	fmt.Printf("rssfetcher config schema written to %s\n", out)
}
