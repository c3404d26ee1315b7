// Command schema writes the JSON schema of plaidfeed config, or checks a committed schema is up to date
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"

	log "github.com/go-pkgz/lgr"
	"github.com/invopop/jsonschema"

	"github.com/umputun/plaidfeed/pkg/config"
)

func main() {
	check := flag.Bool("check", false, "fail if the schema file differs from the config types")
	flag.Parse()

	path := "schema.json"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	data, err := json.MarshalIndent(jsonschema.Reflect(&config.Config{}), "", "  ")
	if err != nil {
		log.Fatalf("[ERROR] can't marshal schema: %v", err)
	}

	if *check {
		current, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
		if err != nil {
			log.Fatalf("[ERROR] can't read %s: %v", path, err)
		}
		if !bytes.Equal(bytes.TrimSpace(current), bytes.TrimSpace(data)) {
			log.Fatalf("[ERROR] %s is stale, run go generate ./pkg/config", path)
		}
		log.Printf("[INFO] %s is up to date", path)
		return
	}

	if err := os.WriteFile(path, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("[ERROR] can't write %s: %v", path, err)
	}
	log.Printf("[INFO] schema written to %s", path)
}
