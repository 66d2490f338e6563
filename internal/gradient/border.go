package gradient

import (
	"fmt"
	"strings"
)

// Border selects how samples outside the image are obtained.
type Border int

const (
	// BorderReplicate clamps coordinates to the image, repeating edge samples.
	BorderReplicate Border = iota

	// BorderZero treats every sample outside the image as 0.
	BorderZero

	// BorderReflect mirrors around the edge sample without repeating it,
	// so index -1 reads index 1 and index n reads index n-2.
	BorderReflect

	// BorderWrap tiles the image periodically.
	BorderWrap
)

var borderNames = map[Border]string{
	BorderReplicate: "replicate",
	BorderZero:      "zero",
	BorderReflect:   "reflect",
	BorderWrap:      "wrap",
}

func (b Border) String() string {
	if name, ok := borderNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Border(%d)", int(b))
}

func (b Border) valid() bool {
	_, ok := borderNames[b]
	return ok
}

// ParseBorder parses a policy name as printed by Border.String.
// Matching is case-insensitive.
func ParseBorder(s string) (Border, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for b, n := range borderNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown border policy %q (expected replicate|zero|reflect|wrap)", s)
}

// resolve maps index into [0, size) according to the policy. The second
// result is false when the sample is outside the image and BorderZero
// applies. Only indices one step outside the image are ever requested.
func (b Border) resolve(index, size int) (int, bool) {
	if index >= 0 && index < size {
		return index, true
	}
	switch b {
	case BorderZero:
		return 0, false
	case BorderReflect:
		if index < 0 {
			return clamp(-index, 0, size-1), true
		}
		return clamp(2*size-index-2, 0, size-1), true
	case BorderWrap:
		index %= size
		if index < 0 {
			index += size
		}
		return index, true
	default:
		return clamp(index, 0, size-1), true
	}
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
