package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/ironsheep/image-gradient/internal/compare"
	"github.com/ironsheep/image-gradient/internal/imagefile"
)

const compareProgramName = "image-gradient-compare"

// CompareInvocation is a parsed image-gradient-compare command line.
type CompareInvocation struct {
	GotPath   string
	WantPath  string
	Tolerance compare.Tolerance
	DiffPath  string
	DiffScale int
	JSON      bool
}

// ParseCompareInvocation parses the arguments that follow the program name.
func ParseCompareInvocation(args []string) (CompareInvocation, error) {
	fs := flag.NewFlagSet(compareProgramName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	def := compare.DefaultTolerance()
	var inv CompareInvocation
	fs.IntVar(&inv.Tolerance.Inner, "inner-tol", def.Inner, "Allowed difference for interior pixels.")
	fs.IntVar(&inv.Tolerance.Edge, "edge-tol", def.Edge, "Allowed difference for border pixels; negative ignores them.")
	fs.IntVar(&inv.Tolerance.BorderWidth, "border-width", def.BorderWidth, "Width of the border ring in pixels.")
	fs.StringVar(&inv.DiffPath, "diff", "", "Write a difference image to this path (optional).")
	fs.IntVar(&inv.DiffScale, "diff-scale", 1, "Enlarge the difference image by this factor.")
	fs.BoolVar(&inv.JSON, "json", false, "Print the report as JSON.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return CompareInvocation{}, errHelp
		}
		return CompareInvocation{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() != 2 {
		return CompareInvocation{}, invalidInvocationf("expected <got> <want>, got %d arguments", fs.NArg())
	}
	if inv.Tolerance.Inner < 0 {
		return CompareInvocation{}, invalidInvocationf("-inner-tol must not be negative (got %d)", inv.Tolerance.Inner)
	}
	if inv.Tolerance.BorderWidth < 0 {
		return CompareInvocation{}, invalidInvocationf("-border-width must not be negative (got %d)", inv.Tolerance.BorderWidth)
	}
	if inv.DiffScale < 1 {
		return CompareInvocation{}, invalidInvocationf("-diff-scale must be at least 1 (got %d)", inv.DiffScale)
	}

	inv.GotPath = fs.Arg(0)
	inv.WantPath = fs.Arg(1)
	return inv, nil
}

// CompareUsage prints the image-gradient-compare synopsis to w.
func CompareUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: image-gradient-compare [options] <got> <want>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exits 0 when every compared pixel is within tolerance and 1 otherwise.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -inner-tol int      Allowed difference for interior pixels (default 1)")
	fmt.Fprintln(w, "  -edge-tol int       Allowed difference for border pixels; negative ignores them (default -1)")
	fmt.Fprintln(w, "  -border-width int   Width of the border ring in pixels (default 3)")
	fmt.Fprintln(w, "  -diff path          Write a difference image (PNG, JPEG, GIF, TIFF or BMP)")
	fmt.Fprintln(w, "  -diff-scale int     Enlarge the difference image by this factor (default 1)")
	fmt.Fprintln(w, "  -json               Print the report as JSON")
	fmt.Fprintln(w, "  --version, -v       Print version information")
	fmt.Fprintln(w, "  --help, -h          Print this help message")
}

// RunCompare executes image-gradient-compare with args (excluding the
// program name) and returns the process exit code.
func RunCompare(args []string, stdout, stderr io.Writer) int {
	inv, err := ParseCompareInvocation(args)
	if errors.Is(err, errHelp) {
		CompareUsage(stdout)
		return ExitSuccess
	}
	if err != nil {
		code := report(stderr, compareProgramName, err)
		CompareUsage(stderr)
		return code
	}

	rep, err := ExecuteCompare(inv)
	if err != nil {
		return report(stderr, compareProgramName, err)
	}

	if inv.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return report(stderr, compareProgramName, err)
		}
	} else {
		fmt.Fprintf(stdout, "%dx%d: compared %d, ignored %d, mismatches %d, max delta %d\n",
			rep.Width, rep.Height, rep.Compared, rep.Ignored, rep.Mismatches, rep.MaxDelta)
		if rep.First != nil {
			fmt.Fprintf(stdout, "first mismatch %s\n", rep.First)
		}
	}

	if !rep.OK() {
		return ExitFailure
	}
	return ExitSuccess
}

// ExecuteCompare loads both images, compares them and writes the optional
// difference image.
func ExecuteCompare(inv CompareInvocation) (*compare.Report, error) {
	got, err := imagefile.Load(inv.GotPath)
	if err != nil {
		return nil, err
	}
	want, err := imagefile.Load(inv.WantPath)
	if err != nil {
		return nil, err
	}

	rep, err := compare.Compare(got.Image, want.Image, inv.Tolerance)
	if err != nil {
		return nil, err
	}

	if inv.DiffPath != "" {
		diff, err := compare.DiffImage(got.Image, want.Image)
		if err != nil {
			return nil, err
		}
		if err := compare.SaveDiff(compare.Scale(diff, inv.DiffScale), inv.DiffPath); err != nil {
			return nil, err
		}
	}
	return rep, nil
}
