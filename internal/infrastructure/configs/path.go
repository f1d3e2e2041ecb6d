package configs

import (
	"flag"
	"os"

	"github.com/hilthontt/scenario-tracker/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file from the --config flag, the
// TRACKER_CONFIG env var, then a set of conventional locations. An empty
// result means no file was found and defaults apply.
func DetermineConfigPath() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = env.GetString("TRACKER_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"/etc/scenario-tracker/config.yaml",
			"/app/config.yaml", // common in Docker
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}
