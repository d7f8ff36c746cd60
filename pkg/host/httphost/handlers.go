package httphost

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/interact"
	sankeyio "github.com/matzehuels/sankey/pkg/io"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/render/sankey"
	"github.com/matzehuels/sankey/pkg/render/sankey/flow"
)

type ctxKey struct{}

// UpdateResponse is returned by the snapshot endpoints.
type UpdateResponse struct {
	SessionID string             `json:"session_id"`
	RenderID  string             `json:"render_id,omitempty"`
	Error     string             `json:"error,omitempty"`
	Code      errors.Code        `json:"code,omitempty"`
	Requests  []interact.Request `json:"requests"`
}

// EventRequest is the body of the event endpoints. Either Tag or the point
// (X, Y) identifies the target.
type EventRequest struct {
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	Tag   *sankey.Tag `json:"tag,omitempty"`
	Shift bool        `json:"shift,omitempty"`
}

// EventResponse lists the host requests an event produced.
type EventResponse struct {
	Target   sankey.Tag         `json:"target"`
	Requests []interact.Request `json:"requests"`
}

// MarkingResponse is the current marking of a session.
type MarkingResponse struct {
	Rows []dataview.RowID `json:"rows"`
}

// withSession resolves the {session} URL parameter.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "session")
		sess, ok := s.sessions.Get(id)
		if !ok {
			writeError(w, errors.New(errors.ErrCodeNotFound, "unknown session: %s", id))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *Session {
	return r.Context().Value(ctxKey{}).(*Session)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create(s.newController)
	s.logger.Info("session created", "session", sess.ID)
	s.update(w, r, sess, http.StatusCreated)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, sessionFrom(r), http.StatusOK)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.sessions.Delete(sessionFrom(r).ID)
	w.WriteHeader(http.StatusNoContent)
}

// update decodes a snapshot and hands it to the session controller.
// Data view errors are not request failures: the overlay requests are
// returned with status ok.
func (s *Server) update(w http.ResponseWriter, r *http.Request, sess *Session, okStatus int) {
	snap, err := sankeyio.ReadJSON(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		writeError(w, err)
		return
	}
	if snap.Width == 0 {
		snap.Width = s.opts.Width
	}
	if snap.Height == 0 {
		snap.Height = s.opts.Height
	}
	hash, err := pipeline.SnapshotHash(snap)
	if err != nil {
		writeError(w, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	err = sess.controller.Update(r.Context(), snap)
	resp := UpdateResponse{SessionID: sess.ID, Requests: sess.host.Drain()}
	if resp.Requests == nil {
		resp.Requests = []interact.Request{}
	}
	if err != nil {
		resp.Error = err.Error()
		resp.Code = errors.GetCode(err)
		status := statusFor(err)
		if resp.Code == errors.ErrCodeDataView {
			status = okStatus
		}
		s.logger.Warn("update failed", "session", sess.ID, "error", err)
		writeJSON(w, status, resp)
		return
	}

	sess.renderID = uuid.NewString()
	sess.snapshotHash = hash
	resp.RenderID = sess.renderID
	s.logger.Info("frame committed", "session", sess.ID, "render", sess.renderID, "rows", len(snap.Rows))
	writeJSON(w, okStatus, resp)
}

func (s *Server) handleArtifact(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		sess.mu.Lock()
		f, hash, renderID := sess.controller.Frame(), sess.snapshotHash, sess.renderID
		sess.mu.Unlock()
		if f == nil {
			writeError(w, errors.New(errors.ErrCodeNotFound, "session %s has no frame", sess.ID))
			return
		}

		opts := s.opts
		opts.Formats = []string{format}
		artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), f, hash, opts)
		if err != nil {
			writeError(w, err)
			return
		}
		cache := "MISS"
		if hit {
			cache = "HIT"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Cache", cache)
		w.Header().Set("X-Render-ID", renderID)
		_, _ = w.Write(artifacts[format])
	}
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, sess.scene)
}

func (s *Server) handleMarking(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, MarkingResponse{Rows: sess.host.Marked()})
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	s.event(w, r, func(ctx context.Context, c *interact.Controller, ev EventRequest) sankey.Tag {
		if ev.Tag != nil {
			c.Hover(ctx, *ev.Tag)
			return *ev.Tag
		}
		return c.HoverAt(ctx, flow.Point{X: ev.X, Y: ev.Y})
	})
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	s.event(w, r, func(_ context.Context, c *interact.Controller, _ EventRequest) sankey.Tag {
		c.Leave()
		return sankey.Background
	})
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	s.event(w, r, func(ctx context.Context, c *interact.Controller, ev EventRequest) sankey.Tag {
		if ev.Tag != nil {
			c.Click(ctx, *ev.Tag, ev.Shift)
			return *ev.Tag
		}
		return c.ClickAt(ctx, flow.Point{X: ev.X, Y: ev.Y}, ev.Shift)
	})
}

func (s *Server) handleBackground(w http.ResponseWriter, r *http.Request) {
	s.event(w, r, func(ctx context.Context, c *interact.Controller, _ EventRequest) sankey.Tag {
		c.BackgroundClick(ctx)
		return sankey.Background
	})
}

// event decodes an optional EventRequest, runs fn under the session lock
// and returns the host requests it produced.
func (s *Server) event(w http.ResponseWriter, r *http.Request, fn func(context.Context, *interact.Controller, EventRequest) sankey.Tag) {
	var ev EventRequest
	if r.Body != nil && r.ContentLength != 0 {
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&ev)
		if err != nil && err != io.EOF {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode event"))
			return
		}
	}

	sess := sessionFrom(r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	target := fn(r.Context(), sess.controller, ev)
	resp := EventResponse{Target: target, Requests: sess.host.Drain()}
	if resp.Requests == nil {
		resp.Requests = []interact.Request{}
	}
	writeJSON(w, http.StatusOK, resp)
}
