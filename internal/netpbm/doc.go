// Package netpbm reads and writes PGM (portable graymap) images.
//
// Two PGM variants are supported:
//   - P5 (FormatBinary): raw samples, one byte each when the max value is
//     below 256, otherwise two bytes, most significant first
//   - P2 (FormatPlain): samples as whitespace-separated decimal numbers
//
// The header is the magic number followed by width, height and max value,
// separated by whitespace. A '#' starts a comment that runs to the end of the
// line and may appear anywhere between header fields. In P5 files exactly one
// whitespace byte separates the max value from the raster. Data after the
// last sample is ignored.
//
// Other Netpbm formats (PBM, PPM, PAM) are recognised and rejected with
// ErrUnsupported; this tool works on grayscale only.
package netpbm
