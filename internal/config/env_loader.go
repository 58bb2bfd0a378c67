package config

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnvFiles loads .env.local then .env, once, from the working
// directory or its nearest parent holding them. Variables already set in
// the environment win. Set PROMPTDECK_SKIP_ENV_FILE=1 to disable.
func LoadEnvFiles() {
	if os.Getenv("PROMPTDECK_SKIP_ENV_FILE") == "1" {
		return
	}

	envOnce.Do(func() {
		for _, name := range []string{".env.local", ".env"} {
			if path, ok := findEnvFile(name); ok {
				if err := godotenv.Load(path); err != nil {
					log.Printf("[config] failed to load environment file %s: %v", path, err)
					continue
				}
				log.Printf("[config] loaded environment file: %s", path)
			}
		}
	})
}

func findEnvFile(name string) (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
