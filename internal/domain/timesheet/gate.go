package timesheet

import "strings"

type GateState int

const (
	GateIdle GateState = iota
	GateDetected
	GateAwaitingComment
	GateConfirmed
)

func (s GateState) String() string {
	switch s {
	case GateIdle:
		return "idle"
	case GateDetected:
		return "detected"
	case GateAwaitingComment:
		return "awaiting_comment"
	case GateConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// SubmissionGate blocks a weekly hours submission until flagged days carry a
// justification comment.
//
//	Idle --Detect(flagged, "")--> Detected --Prompt--> AwaitingComment --Confirm(c)--> Confirmed
//	Idle --Detect(flagged, c)---> Confirmed
//	any  --Cancel--> Idle
//
// When Detect finds nothing to justify the gate stays Idle and CanSubmit is true.
type SubmissionGate struct {
	state   GateState
	checked bool
	flagged []FlaggedDay
	comment string
}

func NewSubmissionGate() *SubmissionGate {
	return &SubmissionGate{}
}

func (g *SubmissionGate) State() GateState {
	return g.state
}

// Detect evaluates a submission attempt from Idle.
func (g *SubmissionGate) Detect(flagged []FlaggedDay, comment string) (GateState, error) {
	if g.state != GateIdle {
		return g.state, ErrInvalidGateTransition
	}

	g.checked = true
	g.flagged = flagged
	g.comment = ""

	if len(flagged) == 0 {
		return g.state, nil
	}
	if c := strings.TrimSpace(comment); c != "" {
		g.comment = c
		g.state = GateConfirmed
		return g.state, nil
	}
	g.state = GateDetected
	return g.state, nil
}

// Prompt records that the caller is now asking the operator for a comment.
func (g *SubmissionGate) Prompt() error {
	if g.state != GateDetected {
		return ErrInvalidGateTransition
	}
	g.state = GateAwaitingComment
	return nil
}

// Confirm accepts the operator's comment. A blank comment leaves the gate waiting.
func (g *SubmissionGate) Confirm(comment string) error {
	if g.state != GateAwaitingComment {
		return ErrInvalidGateTransition
	}
	c := strings.TrimSpace(comment)
	if c == "" {
		return ErrOvertimeCommentRequired
	}
	g.comment = c
	g.state = GateConfirmed
	return nil
}

// Cancel aborts the submission.
func (g *SubmissionGate) Cancel() {
	*g = SubmissionGate{}
}

func (g *SubmissionGate) CanSubmit() bool {
	switch g.state {
	case GateConfirmed:
		return true
	case GateIdle:
		return g.checked && len(g.flagged) == 0
	}
	return false
}

// Flagged returns the days found by the last Detect.
func (g *SubmissionGate) Flagged() []FlaggedDay {
	return g.flagged
}

// Payload returns the overtime fields for the submission. The comment is nil
// when nothing was flagged.
func (g *SubmissionGate) Payload() (*string, []FlaggedDay, error) {
	if !g.CanSubmit() {
		return nil, nil, ErrSubmissionBlocked
	}
	if g.state == GateIdle {
		return nil, nil, nil
	}
	comment := g.comment
	return &comment, g.flagged, nil
}
