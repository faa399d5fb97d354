package domain

import "time"

// ResponseShape names the matcher that recognized a response body.
type ResponseShape string

const (
	ShapeOutput     ResponseShape = "output"
	ShapeChoices    ResponseShape = "choices"
	ShapeOutputText ResponseShape = "output_text"
	ShapeDiagnostic ResponseShape = "diagnostic"
)

// NormalizedResult is the renderable outcome of a successful call.
// Content is interpreted as Markdown by the presentation layer.
type NormalizedResult struct {
	Content      string
	Reasoning    string
	HasReasoning bool
	Shape        ResponseShape
}

// Phase is the lifecycle position of a submission.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseInFlight   Phase = "in_flight"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// QueryState is the single piece of mutable state owned by the query controller.
type QueryState struct {
	Phase        Phase
	SubmissionID string
	Target       *SearchTarget
	Result       *NormalizedResult
	Err          *QueryError
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Clone returns a copy that shares no pointers with s.
func (s QueryState) Clone() QueryState {
	out := s
	if s.Target != nil {
		target := *s.Target
		out.Target = &target
	}
	if s.Result != nil {
		result := *s.Result
		out.Result = &result
	}
	if s.Err != nil {
		qerr := *s.Err
		out.Err = &qerr
	}
	return out
}

// Busy reports whether a transport call is outstanding.
func (s QueryState) Busy() bool {
	return s.Phase == PhaseInFlight
}

// StateView is the JSON rendering of a QueryState for the web and CLI surfaces.
type StateView struct {
	Phase        Phase         `json:"phase"`
	SubmissionID string        `json:"submission_id,omitempty"`
	Target       *SearchTarget `json:"target,omitempty"`
	Content      string        `json:"content,omitempty"`
	Reasoning    *string       `json:"reasoning,omitempty"`
	Shape        ResponseShape `json:"shape,omitempty"`
	Error        *ErrorView    `json:"error,omitempty"`
	DurationMS   int64         `json:"duration_ms,omitempty"`
}

// ErrorView is the JSON rendering of a QueryError.
type ErrorView struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
}

// View renders s for serialization.
func (s QueryState) View() StateView {
	view := StateView{
		Phase:        s.Phase,
		SubmissionID: s.SubmissionID,
	}
	if s.Target != nil {
		target := *s.Target
		view.Target = &target
	}
	if s.Result != nil {
		view.Content = s.Result.Content
		view.Shape = s.Result.Shape
		if s.Result.HasReasoning {
			reasoning := s.Result.Reasoning
			view.Reasoning = &reasoning
		}
	}
	if s.Err != nil {
		view.Error = &ErrorView{Kind: s.Err.Kind, Message: s.Err.Message, StatusCode: s.Err.StatusCode}
	}
	if !s.StartedAt.IsZero() && !s.FinishedAt.IsZero() {
		view.DurationMS = s.FinishedAt.Sub(s.StartedAt).Milliseconds()
	}
	return view
}
