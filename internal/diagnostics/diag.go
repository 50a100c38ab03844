package diagnostics

import "fmt"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Diagnostic is a structured operator-facing record pushed over the status
// socket alongside frame stats.
type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// PerfDegraded describes a drop into a lower quality tier.
func PerfDegraded(level float64, lod int, avgFPS float64) Diagnostic {
	return Diagnostic{
		Severity: Warn,
		Code:     "PERF.DEGRADED",
		Summary:  fmt.Sprintf("quality lowered to LOD %d", lod),
		Detail:   fmt.Sprintf("average FPS %.1f, performance level %.2f", avgFPS, level),
		LikelyCauses: []string{
			"too many high-cost effects active",
			"particle budgets above what the host can sustain",
		},
		SuggestedFixes: []string{
			"disable a high-cost effect",
			"lower global intensity",
		},
		Evidence: map[string]any{"level": level, "lod": lod, "avg_fps": avgFPS},
	}
}

// PerfRecovered describes a return to a higher quality tier.
func PerfRecovered(level float64, lod int, avgFPS float64) Diagnostic {
	return Diagnostic{
		Severity: Info,
		Code:     "PERF.RECOVERED",
		Summary:  fmt.Sprintf("quality restored to LOD %d", lod),
		Detail:   fmt.Sprintf("average FPS %.1f, performance level %.2f", avgFPS, level),
		Evidence: map[string]any{"level": level, "lod": lod, "avg_fps": avgFPS},
	}
}
