// Package compare checks gradient outputs against reference images.
//
// Different Sobel implementations agree on interior pixels up to rounding but
// legitimately disagree near the frame, where each picks its own border
// policy. Compare therefore applies two tolerances: one for interior pixels
// and one for pixels within BorderWidth of any edge. A negative edge
// tolerance skips the border ring entirely.
//
// DiffImage renders the absolute per-pixel difference as a colour image,
// which makes clustered mismatches (a wrong border policy, an off-by-one
// kernel orientation) easy to spot.
package compare
