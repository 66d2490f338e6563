package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ironsheep/image-gradient/internal/gradient"
	"github.com/ironsheep/image-gradient/internal/imagefile"
)

const programName = "image-gradient"

// Banner is logged first when -debug is set. main fills it with build
// metadata.
var Banner = programName

// Usage prints the image-gradient synopsis to w.
func Usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: image-gradient [options] <input-path> <output-stem>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Writes <stem>-hedge<ext>, <stem>-vedge<ext> and <stem>-magedge<ext>,")
	fmt.Fprintln(w, "where <ext> is the extension of the input (.pgm or .pgm.zst).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -border string    Border policy: replicate|zero|reflect|wrap (default replicate)")
	fmt.Fprintln(w, "  -sequential       Compute rows on a single goroutine")
	fmt.Fprintln(w, "  -debug            Log progress to stderr")
	fmt.Fprintln(w, "  --version, -v     Print version information")
	fmt.Fprintln(w, "  --help, -h        Print this help message")
}

// Run executes image-gradient with args (excluding the program name) and
// returns the process exit code. Errors are written to stderr as
// "image-gradient: <err>".
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	inv, err := ParseInvocation(args)
	if errors.Is(err, errHelp) {
		Usage(stdout)
		return ExitSuccess
	}
	if err != nil {
		code := report(stderr, programName, err)
		Usage(stderr)
		return code
	}

	logger := newLogger(stderr, inv.Debug)
	if err := Execute(ctx, inv, logger); err != nil {
		return report(stderr, programName, err)
	}
	return ExitSuccess
}

// Execute loads the input, computes its gradients and writes the three
// results. Either all three files are written or none is.
func Execute(ctx context.Context, inv Invocation, logger *log.Logger) error {
	start := time.Now()
	logger.Print(Banner)

	f, err := imagefile.Load(inv.InputPath)
	if err != nil {
		return err
	}
	logger.Printf("Loaded %s: %dx%d max %d (%s, compressed=%t, %d bytes)",
		f.Path, f.Image.Width(), f.Image.Height(), f.Image.MaxValue(), f.Format, f.Compressed, f.SizeBytes)

	opts := gradient.Options{Border: inv.Border, Parallel: !inv.Sequential}
	computeStart := time.Now()
	result, err := gradient.ComputeWithOptions(f.Image, opts)
	if err != nil {
		return fmt.Errorf("failed to compute gradients: %w", err)
	}
	logger.Printf("Computed gradients with border=%s parallel=%t in %v",
		opts.Border, opts.Parallel, time.Since(computeStart))

	names := NameOutputs(inv.InputPath, inv.OutputStem)
	outputs := []imagefile.Output{
		{Path: names.Horizontal, Image: result.Horizontal, Format: f.Format},
		{Path: names.Vertical, Image: result.Vertical, Format: f.Format},
		{Path: names.Magnitude, Image: result.Magnitude, Format: f.Format},
	}
	if err := imagefile.WriteAll(ctx, outputs); err != nil {
		return err
	}

	for _, p := range names.Paths() {
		logger.Printf("Wrote %s", p)
	}
	logger.Printf("Done in %v", time.Since(start))
	return nil
}

// newLogger returns a logger on stderr when debug is set and a silent one
// otherwise.
func newLogger(stderr io.Writer, debug bool) *log.Logger {
	if !debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
}

// report prints err and maps it to an exit code.
func report(stderr io.Writer, program string, err error) int {
	fmt.Fprintf(stderr, "%s: %v\n", program, err)

	var invErr *InvocationError
	if errors.As(err, &invErr) {
		return invErr.ExitCode
	}
	return ExitFailure
}
