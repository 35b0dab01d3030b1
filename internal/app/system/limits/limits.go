// internal/app/system/limits/limits.go
package limits

// Request body size limits. The predictor forms carry a field name and one
// option value, so anything larger is not a real submission.
const (
	// MaxActionFormSize bounds POST /select, /predict, /theme and /reset bodies.
	MaxActionFormSize = 4 << 10 // 4 KB
)
