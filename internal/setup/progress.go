package setup

// StepCount is the number of provisioning milestones shown to users.
const StepCount = 4

// stepNames are the display labels for the provisioning milestones, in
// order. The first three correspond to real provisioning phases; the last
// marks completion.
var stepNames = [StepCount]string{
	"Tenant account",
	"Database",
	"Settings",
	"Ready",
}

// StepName returns the display label for milestone i. It panics if i is
// outside [0, StepCount).
func StepName(i int) string {
	return stepNames[i]
}

// StepIndex projects an attempt count onto the current milestone index.
//
// The projection is cosmetic pacing, not real provisioning progress: the
// status endpoint reports no phase detail, so the indicator advances one
// milestone every four attempts and holds at the third until the session
// resolves. Only [OutcomeReady] reaches the final milestone.
func StepIndex(attempt int, outcome Outcome) int {
	if outcome == OutcomeReady {
		return StepCount - 1
	}
	i := attempt / 4
	if i > StepCount-2 {
		i = StepCount - 2
	}
	return i
}

// Milestone is one entry of the provisioning checklist rendered to users.
type Milestone struct {
	// Name is the display label.
	Name string

	// Completed marks milestones before the current one; on
	// [OutcomeReady] all milestones complete.
	Completed bool

	// Current marks the milestone in progress. Never set once the
	// session resolved.
	Current bool
}

// Milestones expands a milestone index into the full checklist. step is
// the value produced by [StepIndex] for the same attempt and outcome.
func Milestones(step int, outcome Outcome) []Milestone {
	completed := step
	if outcome == OutcomeReady {
		completed = StepCount
	}
	ms := make([]Milestone, StepCount)
	for i := range ms {
		ms[i] = Milestone{
			Name:      stepNames[i],
			Completed: i < completed,
			Current:   outcome == OutcomeNone && i == step,
		}
	}
	return ms
}
