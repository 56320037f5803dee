package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/lattice-grouper/internal/config"
	"github.com/ironsheep/lattice-grouper/internal/logging"
	"github.com/ironsheep/lattice-grouper/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("grouper-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("grouper-mcp - MCP server for OCR segment grouping")
			fmt.Println()
			fmt.Println("Usage: grouper-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Println("  GROUPER_LOG_LEVEL=debug      Log level: debug, info, warn, error")
			fmt.Println("  GROUPER_OCR_LANGUAGE=eng     Tesseract language for grouper_classify")
			fmt.Println("  GROUPER_MAXRANGE=4           Most labels merged into one candidate")
			fmt.Println("  GROUPER_MAXDIST=2            Largest gap in pixels inside a candidate")
			fmt.Println("  GROUPER_MAXASPECT=2.5        Largest width/height of a merged candidate")
			fmt.Println("  GROUPER_MAXWIDTH=2.5         Largest merged width, in mean component heights")
			fmt.Println("  GROUPER_FULLHEIGHT=false     Extract candidates over the full line height")
			fmt.Println("  GROUPER_CHECKORDER=true      Reject segmentations not sorted left to right")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	logger := logging.New("grouper-mcp", cfg.Level())
	logger.Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	server.Version = Version
	srv := server.New(cfg, logger)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
