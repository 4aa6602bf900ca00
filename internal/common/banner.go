package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"

	"github.com/asesorlab/asesor-mcp/internal/config"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(cfg *config.Config, logger *Logger) {
	version := config.GetVersion()
	build := config.GetBuild()
	commit := config.GetGitCommit()
	serviceURL := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 70
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		`     d8888  .d8888b.  8888888888 .d8888b.   .d88888b.  8888888b.`,
		`    d88888 d88P  Y88b 888       d88P  Y88b d88P" "Y88b 888   Y88b`,
		`   d88P888 Y88b.      888       Y88b.      888     888 888    888`,
		`  d88P 888  "Y888b.   8888888    "Y888b.   888     888 888   d88P`,
		` d88P  888     "Y88b. 888           "Y88b. 888     888 8888888P"`,
		` d88P   888      "888 888             "888 888     888 888 T88b`,
		`d8888888888 Y88b  d88P 888      Y88b  d88P Y88b. .d88P 888  T88b`,
		`d88P     888 "Y8888P"  8888888888 "Y8888P"  "Y88888P"  888   T88b`,
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s  Client Analysis MCP Relay%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	kvPad := 16
	kvLines := [][2]string{
		{"Version", version},
		{"Build", build},
		{"Commit", commit},
		{"Environment", cfg.Environment},
		{"Service URL", serviceURL},
		{"Engine", cfg.Engine.URL},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	logger.Info().
		Str("version", version).
		Str("build", build).
		Str("commit", commit).
		Str("environment", cfg.Environment).
		Str("service_url", serviceURL).
		Str("engine_url", cfg.Engine.URL).
		Msg("Application started")
}

// PrintShutdownBanner displays the application shutdown banner to stderr.
func PrintShutdownBanner(logger *Logger) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 42
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "%s  ASESOR-MCP — SHUTTING DOWN%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	logger.Info().Msg("Application shutting down")
}
