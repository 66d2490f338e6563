// Package cli implements the image-gradient and image-gradient-compare
// command lines.
//
// Run and RunCompare take the arguments after the program name and return an
// exit code, so both tools can be exercised in-process:
//
//	0  success (for the compare tool: every pixel within tolerance)
//	1  processing failure, or a comparison mismatch
//	2  invalid invocation
//
// Configuration comes from flags only. Diagnostics go to stderr; -debug adds
// timestamped progress lines.
package cli
