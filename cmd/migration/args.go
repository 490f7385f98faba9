package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

// parseSteps reads the optional step count of `down`; no argument means one step.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	switch {
	case err != nil:
		return 0, fmt.Errorf("parse steps %q: %w", args[0], err)
	case steps < 1:
		return 0, fmt.Errorf("steps must be at least 1, got %d", steps)
	}
	return steps, nil
}

// parseVersion accepts -1 (no version) or any non-negative schema version for `force`.
func parseVersion(raw string) (int, error) {
	version, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse version %q: %w", raw, err)
	}
	if version < -1 {
		return 0, fmt.Errorf("version must be -1 or greater, got %d", version)
	}
	return version, nil
}

func parseTarget(raw string) (uint, error) {
	target, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("parse target version %q: %w", raw, err)
	}
	return uint(target), nil
}

// resolveMigrationsDir picks the first existing directory among the flag value,
// MIGRATIONS_DIR, MIGRATIONS_PATH and the built-in locations.
func resolveMigrationsDir(flagValue string) (string, error) {
	candidates := append([]string{
		flagValue,
		os.Getenv("MIGRATIONS_DIR"),
		os.Getenv("MIGRATIONS_PATH"),
	}, defaultMigrationDirs...)

	var checked []string
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		checked = append(checked, candidate)
		if dir, ok := existingDir(candidate); ok {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no migrations directory found, checked %s", strings.Join(checked, ", "))
}

func existingDir(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return abs, true
}

// envBool reads a boolean env var the way the server config does, with a default when unset.
func envBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	switch strings.ToLower(raw) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}
