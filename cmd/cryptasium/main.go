package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cryptasium"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("cryptasium %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := cryptasium.ConfigFromEnv()
	if err != nil {
		return err
	}

	app := cryptasium.New(cfg)

	// Stop the page-view cleanup scheduler and close the store on SIGINT/SIGTERM.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		_ = app.Close()
		os.Exit(0)
	}()

	return app.Start()
}

func printUsage() {
	fmt.Println(`cryptasium - crypto-education content site: blog, videos, podcast, shorts, community

Usage:
  cryptasium <command>

Commands:
  serve         Start the HTTP server (default)
  version       Print the cryptasium version
  help          Show this help message

Configuration comes from config.toml and environment variables; see README.md.`)
}
