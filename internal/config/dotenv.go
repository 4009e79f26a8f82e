package config

import (
	"bufio"
	"os"
	"strings"
)

// loadEnvFiles applies KEY=VALUE pairs from the given files to the process
// environment. Missing files and malformed lines are skipped silently; this
// exists for local development, production configures through real env vars.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		applyEnvFile(path)
	}
}

func applyEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, val, ok := parseEnvLine(scanner.Text())
		if ok {
			os.Setenv(key, val)
		}
	}
}

func parseEnvLine(line string) (key, val string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	k, v, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(k)
	if key == "" {
		return "", "", false
	}
	val = strings.Trim(strings.TrimSpace(v), `"`)
	return key, val, true
}
