package lzwpack

import (
	"fmt"
	"strings"
)

// Variant selects one of the five compressor shapes. The numeric values double
// as compression "levels": 1 is plain text and 5 is color with the 2D
// difference transform.
type Variant int

const (
	VariantText Variant = iota + 1
	VariantGrayscale
	VariantGrayscaleDiff
	VariantColor
	VariantColor2DDiff
)

var variantNames = map[Variant]string{
	VariantText:          "text",
	VariantGrayscale:     "gray",
	VariantGrayscaleDiff: "gray-diff",
	VariantColor:         "color",
	VariantColor2DDiff:   "color-2d-diff",
}

// AllVariants lists every variant in level order.
var AllVariants = []Variant{
	VariantText,
	VariantGrayscale,
	VariantGrayscaleDiff,
	VariantColor,
	VariantColor2DDiff,
}

func (v Variant) String() string {
	name, ok := variantNames[v]
	if ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// IsValid returns true if `v` is one of the defined variants.
func (v Variant) IsValid() bool {
	_, ok := variantNames[v]
	return ok
}

// IsRaster returns true for the variants that operate on 2D grids rather than
// a flat byte stream.
func (v Variant) IsRaster() bool {
	return v.IsValid() && v != VariantText
}

// Channels gives the number of planes a raster variant stores: 1 for
// grayscale, 3 for color. The flat text variant has no planes and returns 0.
func (v Variant) Channels() int {
	switch v {
	case VariantGrayscale, VariantGrayscaleDiff:
		return 1
	case VariantColor, VariantColor2DDiff:
		return 3
	default:
		return 0
	}
}

// ParseVariant converts a variant name ("gray-diff") or level number ("3") into
// a [Variant].
func ParseVariant(s string) (Variant, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for variant, name := range variantNames {
		if normalized == name || normalized == fmt.Sprint(int(variant)) {
			return variant, nil
		}
	}
	return 0, ErrInvalidArgument.WithMessage(fmt.Sprintf("unknown variant %q", s))
}
