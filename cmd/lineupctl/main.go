package main

import (
	"os"

	"github.com/Pranay-Prat/football-lineup-maker/internal/platform/logging"
	"github.com/Pranay-Prat/football-lineup-maker/internal/share"
)

func main() {
	logging.SetDefault(logging.NewJSONWriter(os.Stderr, logging.ParseLevel(os.Getenv("APP_LOG_LEVEL"))))

	cmd := newRootCmd(share.SystemClipboard{})
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
