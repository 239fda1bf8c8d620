package domain

import "fmt"

// TransitionPolicy decides which status changes the lifecycle engine accepts.
// Only statuses that pass ItemStatus.Settable ever reach a policy.
type TransitionPolicy interface {
	Name() string
	Allow(from, to ItemStatus) bool
	// Guarded reports whether an accepted change is only valid while the
	// item still has the status it was checked against.
	Guarded() bool
}

const (
	PolicyPermissive = "permissive"
	PolicyStrict     = "strict"
)

// PermissivePolicy accepts any settable status from any current status,
// including repeats and moves out of a terminal state.
type PermissivePolicy struct{}

func (PermissivePolicy) Name() string { return PolicyPermissive }

func (PermissivePolicy) Allow(_, _ ItemStatus) bool { return true }

func (PermissivePolicy) Guarded() bool { return false }

// forwardTransitions is the forward-only lifecycle:
// reported -> collected -> in-transit -> recycled | disposed.
var forwardTransitions = map[ItemStatus][]ItemStatus{
	StatusReported:  {StatusCollected},
	StatusCollected: {StatusInTransit},
	StatusInTransit: {StatusRecycled, StatusDisposed},
}

// StrictPolicy only accepts the next step of the forward lifecycle.
type StrictPolicy struct{}

func (StrictPolicy) Name() string { return PolicyStrict }

func (StrictPolicy) Guarded() bool { return true }

func (StrictPolicy) Allow(from, to ItemStatus) bool {
	for _, allowed := range forwardTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// PolicyByName resolves a configured policy name. Empty means permissive.
func PolicyByName(name string) (TransitionPolicy, error) {
	switch name {
	case "", PolicyPermissive:
		return PermissivePolicy{}, nil
	case PolicyStrict:
		return StrictPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown lifecycle policy %q", name)
	}
}
