package confkit

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads .env files into the environment the first time it is
// called. Lookup order:
//   - ENV_FILE when set, nothing else
//   - .env in the working directory
//   - .env in the project root above the working directory
//
// NO_DOTENV=1 disables loading. Existing variables win unless
// DOTENV_OVERLOAD=1.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}
	for _, path := range dotenvPaths() {
		if !fileExists(path) {
			continue
		}
		if os.Getenv("DOTENV_OVERLOAD") == "1" {
			_ = godotenv.Overload(path)
		} else {
			_ = godotenv.Load(path)
		}
	}
}

func dotenvPaths() []string {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return []string{envFile}
	}
	wd, err := os.Getwd()
	if err != nil {
		return []string{".env"}
	}
	paths := []string{filepath.Join(wd, ".env")}
	if root, ok := ProjectRoot(wd); ok && root != wd {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	return paths
}
