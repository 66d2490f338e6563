// Package raster defines the grayscale image value shared by the codec, the
// gradient engine and the comparison tooling.
//
// An Image is a width x height grid of unsigned samples stored in row-major
// order, together with the maximum sample value declared by its source file.
// Images are immutable once built: the only constructor is New, which
// validates the geometry and the sample range, and every accessor either
// returns a copy or a view that callers must treat as read-only.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner:
//   - X increases rightward, valid range 0 to Width()-1
//   - Y increases downward, valid range 0 to Height()-1
//
// # Interoperability
//
// Gray and FromGray convert 8-bit images to and from *image.Gray so that
// standard library and third-party image code can operate on the same pixels.
package raster
