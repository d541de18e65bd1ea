// Package llm wraps the external task-generation service. The service is
// an opaque HTTP endpoint: this package owns the wire contract, timeout
// and response validation. Retries and the local template fallback are
// the caller's concern.
package llm

import (
	"context"

	"github.com/goalwing/goalwing/types"
)

// PlanGenerator produces a raw task plan for a goal. Implementations tag
// their output shape so the normalizer never has to sniff it.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req types.PlanRequest) (types.RawPlan, error)
}
