package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func handleConfigCommand(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: biblioteca config <command>")
		fmt.Println("Commands: show, init")
		os.Exit(1)
	}

	switch args[0] {
	case "show":
		showConfig()
	case "init":
		initConfig(".biblioteca.yaml")
	default:
		fmt.Printf("Unknown config command: %s\n", args[0])
		os.Exit(1)
	}
}

// redactedConfig returns a copy of the active configuration without secrets.
func redactedConfig() any {
	c := *cfg
	if c.API.Key != "" {
		c.API.Key = "********"
	}
	if c.IGDB.ClientSecret != "" {
		c.IGDB.ClientSecret = "********"
	}
	return c
}

func showConfig() {
	if outputCfg.JSON {
		PrintResult(redactedConfig())
		return
	}

	// Pretty print as YAML
	data, err := yaml.Marshal(redactedConfig())
	if err != nil {
		PrintError("Error: failed to marshal config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("# Active Configuration")
	fmt.Println(string(data))
	fmt.Println("# Database:", cfg.GetDBPath())
}

const exampleConfig = `# La Biblioteca Gamer configuration
api:
  base_url: https://api.rawg.io/api
  # key: put RAWG_API_KEY in .env instead
  page_size: 20
  requests_per_second: 4
  timeout: 10s

cache:
  ttl: 30m

storage:
  path: biblioteca.db
  driver: sqlite      # sqlite (pure Go) or sqlite3 (cgo)
  namespace: biblioteca

ui:
  search_debounce: 350ms
  carousel_interval: 6s
  carousel_size: 5
  genre_rows: [action, indie, role-playing-games-rpg, strategy]

logging:
  level: info   # debug, info, warn, error
  format: text  # text or json
  file: biblioteca.log

metrics:
  addr: ""      # e.g. 127.0.0.1:9090
`

func initConfig(configPath string) {
	// Check if file exists
	if _, err := os.Stat(configPath); err == nil {
		PrintError("Error: config file already exists at %s\n", configPath)
		os.Exit(1)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil { //nolint:gosec // Config is not secret
		PrintError("Error: failed to write config: %v\n", err)
		os.Exit(1)
	}

	if outputCfg.JSON {
		PrintResult(map[string]string{"path": configPath, "status": "created"})
	} else {
		PrintInfo("Created config file: %s\n", configPath)
	}
}
