package battle

import "fmt"

// OpResult reports a business-rule decision. Expected violations (occupied
// tile, short on cost, bad skill index) are results, not errors: the caller
// logs the reason and the run continues.
type OpResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

func OK() OpResult {
	return OpResult{Success: true}
}

func Failf(format string, args ...any) OpResult {
	return OpResult{Success: false, Reason: fmt.Sprintf(format, args...)}
}
