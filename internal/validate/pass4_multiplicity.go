package validate

import (
	"fmt"
	"strconv"

	"sysml2/internal/diag"
	"sysml2/internal/model"
)

// runPass4 parses each element's multiplicity bounds and reports E3007 on a
// parse failure or an inverted bound, per spec.md §4.D Pass 4.
func runPass4(ctx *Context, m *model.Model) {
	if !ctx.Options.CheckMultiplicity {
		return
	}
	for _, el := range m.Elements {
		if el.Multiplicity != nil {
			checkMultiplicity(ctx, el)
		}
	}
}

// parseBound accepts a non-negative decimal integer or "*" (meaning +∞).
func parseBound(s string) (value int64, infinite bool, ok bool) {
	if s == "*" {
		return 0, true, true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false, false
	}
	return n, false, true
}

func checkMultiplicity(ctx *Context, el *model.Element) {
	mult := el.Multiplicity

	var lowerVal int64
	var lowerInf bool
	if mult.HasLower {
		v, inf, ok := parseBound(mult.Lower)
		if !ok {
			reportMultiplicityError(ctx, el, fmt.Sprintf("invalid multiplicity lower bound %q", mult.Lower), "")
			return
		}
		lowerVal, lowerInf = v, inf
	}

	if !mult.HasUpper {
		if !mult.HasLower {
			return
		}
		// "If only lower is present, interpret as [lower..lower]" — no
		// inversion is possible against itself.
		return
	}

	upperVal, upperInf, ok := parseBound(mult.Upper)
	if !ok {
		reportMultiplicityError(ctx, el, fmt.Sprintf("invalid multiplicity upper bound %q", mult.Upper), "")
		return
	}

	if upperInf {
		return
	}
	if lowerInf || lowerVal > upperVal {
		lowerStr := mult.Lower
		if !mult.HasLower {
			lowerStr = "0"
		}
		hint := fmt.Sprintf("swap the bounds: %s..%s", mult.Upper, lowerStr)
		reportMultiplicityError(ctx, el,
			fmt.Sprintf("multiplicity lower bound (%s) exceeds upper bound (%s)", lowerStr, mult.Upper), hint)
	}
}

func reportMultiplicityError(ctx *Context, el *model.Element, msg, hint string) {
	builder := ctx.reportError(diag.ErrInvalidMultiplicity, el.Range, msg)
	if hint != "" {
		builder = builder.WithHelp(hint)
	}
	builder.Emit()
}
