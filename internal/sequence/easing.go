package sequence

// clamp01 clamps x in [0,1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// smootherstep: 6x^5 - 15x^4 + 10x^3
func smootherstep(x float64) float64 {
	return x * x * x * (x*(x*6-15) + 10)
}

// easeApply maps a normalized segment position through the named easing
// curve. Easings are referenced by tag so keyframes stay serializable;
// unknown tags fall back to linear.
func easeApply(kind string, x float64) float64 {
	switch kind {
	case "linear", "":
		return x
	case "smooth":
		// classic smoothstep 3x^2 - 2x^3
		return x * x * (3 - 2*x)
	case "cubic":
		return smootherstep(x)
	case "ease-in":
		return x * x
	case "ease-out":
		return 1 - (1-x)*(1-x)
	default:
		return x
	}
}
