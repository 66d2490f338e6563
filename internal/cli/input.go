package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ironsheep/image-gradient/internal/gradient"
	"github.com/ironsheep/image-gradient/internal/imagefile"
)

const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitInvalidInvocation = 2
)

// Output name suffixes, inserted between the stem and the extension.
const (
	SuffixHorizontal = "-hedge"
	SuffixVertical   = "-vedge"
	SuffixMagnitude  = "-magedge"
)

// Invocation is a parsed image-gradient command line.
type Invocation struct {
	InputPath  string
	OutputStem string
	Border     gradient.Border
	Sequential bool
	Debug      bool
}

// InvocationError reports a command line that cannot be run.
type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// errHelp is returned by the parsers when -h or -help is given.
var errHelp = errors.New("help requested")

// ParseInvocation parses the arguments that follow the program name.
//
// Flags must precede the two positional arguments: the input path and the
// output stem.
func ParseInvocation(args []string) (Invocation, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	var border string
	var inv Invocation
	fs.StringVar(&border, "border", gradient.BorderReplicate.String(), "Border policy: replicate|zero|reflect|wrap")
	fs.BoolVar(&inv.Sequential, "sequential", false, "Compute rows on a single goroutine.")
	fs.BoolVar(&inv.Debug, "debug", false, "Log progress to stderr.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Invocation{}, errHelp
		}
		return Invocation{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() != 2 {
		return Invocation{}, invalidInvocationf("expected <input-path> <output-stem>, got %d arguments", fs.NArg())
	}

	parsed, err := gradient.ParseBorder(border)
	if err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}
	inv.Border = parsed

	inv.InputPath = fs.Arg(0)
	inv.OutputStem = fs.Arg(1)
	if strings.TrimSpace(inv.InputPath) == "" {
		return Invocation{}, invalidInvocationf("input path is empty")
	}
	if strings.TrimSpace(inv.OutputStem) == "" {
		return Invocation{}, invalidInvocationf("output stem is empty")
	}
	return inv, nil
}

// OutputPaths names the three result files for an input and stem.
type OutputPaths struct {
	Horizontal string
	Vertical   string
	Magnitude  string
}

// Paths returns the paths in write order.
func (p OutputPaths) Paths() []string {
	return []string{p.Horizontal, p.Vertical, p.Magnitude}
}

// NameOutputs builds the result paths from the output stem and the input's
// extension, so "boats.pgm" with stem "out/boats" gives "out/boats-hedge.pgm".
func NameOutputs(inputPath, stem string) OutputPaths {
	ext := imagefile.Ext(inputPath)
	return OutputPaths{
		Horizontal: stem + SuffixHorizontal + ext,
		Vertical:   stem + SuffixVertical + ext,
		Magnitude:  stem + SuffixMagnitude + ext,
	}
}
