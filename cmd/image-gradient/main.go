package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ironsheep/image-gradient/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-gradient %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-gradient - Sobel edge maps for PGM images")
			fmt.Println()
			cli.Usage(os.Stdout)
			return
		}
	}

	cli.Banner = fmt.Sprintf("image-gradient v%s (built %s, commit %s)", Version, BuildTime, GitCommit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
