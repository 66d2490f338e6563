package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/image-gradient/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-gradient-compare %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-gradient-compare - compare two PGM images within a tolerance")
			fmt.Println()
			cli.CompareUsage(os.Stdout)
			return
		}
	}

	os.Exit(cli.RunCompare(os.Args[1:], os.Stdout, os.Stderr))
}
