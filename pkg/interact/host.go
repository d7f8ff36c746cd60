package interact

import (
	"github.com/matzehuels/sankey/pkg/dataview"
)

// MarkMode is how marked rows combine with the host's current marking.
type MarkMode string

const (
	Replace MarkMode = "Replace"
	Add     MarkMode = "Add"
)

// ModeFor returns Add when the modifier key is held, Replace otherwise.
func ModeFor(shift bool) MarkMode {
	if shift {
		return Add
	}
	return Replace
}

// Host is the environment that owns the data and the user interface chrome.
type Host interface {
	Mark(rows []dataview.RowID, mode MarkMode)
	ClearMarking()
	ShowTooltip(text string)
	HideTooltip()
	ShowErrors(messages []string)
	HideErrors()
	// SignalRenderComplete is called exactly once per committed frame,
	// after every draw command of that frame.
	SignalRenderComplete()
}

// RequestKind names a host request.
type RequestKind string

const (
	RequestMark           RequestKind = "mark"
	RequestClearMarking   RequestKind = "clear_marking"
	RequestShowTooltip    RequestKind = "show_tooltip"
	RequestHideTooltip    RequestKind = "hide_tooltip"
	RequestShowErrors     RequestKind = "show_errors"
	RequestHideErrors     RequestKind = "hide_errors"
	RequestRenderComplete RequestKind = "render_complete"
)

// Request is one recorded host request.
type Request struct {
	Kind   RequestKind      `json:"kind"`
	Rows   []dataview.RowID `json:"rows,omitempty"`
	Mode   MarkMode         `json:"mode,omitempty"`
	Text   string           `json:"text,omitempty"`
	Errors []string         `json:"errors,omitempty"`
}

// Recorder is a Host that records every request in order. The HTTP host
// uses it to return the requests an event produced; tests use it to assert
// on them. A Recorder is not safe for concurrent use on its own; the
// Controller serializes calls into it.
type Recorder struct {
	Requests []Request
}

var _ Host = (*Recorder)(nil)

func (r *Recorder) Mark(rows []dataview.RowID, mode MarkMode) {
	r.Requests = append(r.Requests, Request{Kind: RequestMark, Rows: rows, Mode: mode})
}

func (r *Recorder) ClearMarking() { r.Requests = append(r.Requests, Request{Kind: RequestClearMarking}) }

func (r *Recorder) ShowTooltip(text string) {
	r.Requests = append(r.Requests, Request{Kind: RequestShowTooltip, Text: text})
}

func (r *Recorder) HideTooltip() { r.Requests = append(r.Requests, Request{Kind: RequestHideTooltip}) }

func (r *Recorder) ShowErrors(messages []string) {
	r.Requests = append(r.Requests, Request{Kind: RequestShowErrors, Errors: messages})
}

func (r *Recorder) HideErrors() { r.Requests = append(r.Requests, Request{Kind: RequestHideErrors}) }

func (r *Recorder) SignalRenderComplete() {
	r.Requests = append(r.Requests, Request{Kind: RequestRenderComplete})
}

// Drain returns the recorded requests and clears the log.
func (r *Recorder) Drain() []Request {
	out := r.Requests
	r.Requests = nil
	return out
}

// Count returns how many requests of kind were recorded.
func (r *Recorder) Count(kind RequestKind) int {
	n := 0
	for _, req := range r.Requests {
		if req.Kind == kind {
			n++
		}
	}
	return n
}
