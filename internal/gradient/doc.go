// Package gradient computes Sobel edge gradients over grayscale images.
//
// Compute takes one raster.Image and returns three images of the same shape:
// the horizontal gradient, the vertical gradient and the gradient magnitude.
//
// # Algorithm
//
// Every pixel is visited once. The 3x3 neighbourhood is correlated with the
// two fixed Sobel kernels to obtain the raw signed derivatives Gx and Gy:
//
//	Horizontal (Gx):   Vertical (Gy):
//	-1  0  1           -1 -2 -1
//	-2  0  2            0  0  0
//	-1  0  1            1  2  1
//
// The outputs are then derived from the same raw pair:
//
//	horizontal = min(|Gx|, max)
//	vertical   = min(|Gy|, max)
//	magnitude  = min(round(sqrt(Gx² + Gy²)), max)
//
// where max is the source image's maximum sample value. Magnitude is always
// computed from the unclamped derivatives, so saturation of the directional
// outputs never leaks into it.
//
// # Border Handling
//
// Pixels on the outermost ring have windows that extend past the image. The
// Border option decides what those missing samples are. BorderReplicate, the
// default, repeats the nearest in-image sample; BorderZero, BorderReflect and
// BorderWrap are available for comparison with other implementations. Only
// outputs whose window touches the edge depend on the policy.
//
// # Concurrency
//
// With Options.Parallel set, rows are split into contiguous ranges that are
// processed concurrently. The source is only read and every output row is
// written by exactly one goroutine, so results are identical to a sequential
// run.
package gradient
