package dataset

// Class names one of the two dataset labels. Its value doubles as the default
// output subdirectory name.
type Class string

const (
	ClassSpeech    Class = "speech"
	ClassNotSpeech Class = "not-speech"
)

// Action records what a pipeline did (or would do) for a single artifact.
type Action string

const (
	ActionCreated Action = "created"
	ActionSkipped Action = "skipped"
	ActionPlanned Action = "planned"
)

// Artifact is one sampled source file and its destination in the output tree.
type Artifact struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Action      Action `json:"action"`
	Bytes       int64  `json:"bytes,omitempty"`
}

// Report summarizes a single pipeline run.
type Report struct {
	RunID      string     `json:"run_id"`
	Class      Class      `json:"class"`
	Seed       uint64     `json:"seed"`
	Requested  int        `json:"requested"`
	Candidates int        `json:"candidates"`
	Excluded   int        `json:"excluded,omitempty"`
	DryRun     bool       `json:"dry_run,omitempty"`
	Artifacts  []Artifact `json:"artifacts"`
}

// Count returns the number of artifacts with the given action.
func (r Report) Count(action Action) int {
	n := 0
	for _, a := range r.Artifacts {
		if a.Action == action {
			n++
		}
	}
	return n
}

// BytesWritten sums the sizes of artifacts created during the run.
func (r Report) BytesWritten() int64 {
	var total int64
	for _, a := range r.Artifacts {
		if a.Action == ActionCreated {
			total += a.Bytes
		}
	}
	return total
}
