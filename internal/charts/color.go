package charts

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	apperrors "github.com/gatei-njuri/cocoa-analysis/internal/errors"
)

// ParseColor parses #rgb, #rgba, #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == len(s) {
		return color.NRGBA{}, apperrors.NewConfigError(fmt.Sprintf("color %q must start with #", s), nil)
	}

	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return color.NRGBA{}, apperrors.NewConfigError(fmt.Sprintf("color %q has an invalid length", s), nil)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, apperrors.NewConfigError(fmt.Sprintf("color %q is not hexadecimal", s), err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// withAlpha returns c with its opacity replaced by alpha in [0, 1]
func withAlpha(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(alpha*255 + 0.5)
	return n
}
