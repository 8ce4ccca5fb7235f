package preview

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/toaster/pkg/render"
	"github.com/vango-dev/toaster/pkg/toast"
	"github.com/vango-dev/toaster/pkg/vdom"
)

// ToastRequest is the body of POST /toasts and PATCH /toasts/{id}.
type ToastRequest struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`

	// Markup marks Title and Description as HTML.
	Markup bool `json:"markup,omitempty"`

	// Duration is a Go duration or "infinite".
	Duration    string `json:"duration,omitempty"`
	Position    string `json:"position,omitempty"`
	Dismissible *bool  `json:"dismissible,omitempty"`
	CloseButton *bool  `json:"closeButton,omitempty"`
	RichColors  *bool  `json:"richColors,omitempty"`
	Action      string `json:"action,omitempty"`
	Cancel      string `json:"cancel,omitempty"`
}

// ToastState is one toast in GET /toasts.
type ToastState struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Position    string  `json:"position"`
	State       string  `json:"state"`
	Index       int     `json:"index"`
	Visible     bool    `json:"visible"`
	Offset      float64 `json:"offset"`
	Height      float64 `json:"height"`
	RemainingMS int64   `json:"remainingMs"`
	Running     bool    `json:"running"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func parseDuration(s string) (time.Duration, error) {
	switch {
	case s == "":
		return 0, nil
	case strings.EqualFold(s, "infinite"):
		return toast.Infinite, nil
	}
	return time.ParseDuration(s)
}

func content(s string, markup bool) toast.Content {
	switch {
	case s == "":
		return toast.Content{}
	case markup:
		return toast.Markup(s)
	default:
		return toast.Text(s)
	}
}

func (req ToastRequest) options() ([]toast.Option, error) {
	d, err := parseDuration(req.Duration)
	if err != nil {
		return nil, err
	}

	var opts []toast.Option
	if req.ID != "" {
		opts = append(opts, toast.WithID(toast.ID(req.ID)))
	}
	if req.Description != "" {
		opts = append(opts, toast.WithDescription(content(req.Description, req.Markup)))
	}
	if req.Category != "" {
		opts = append(opts, toast.WithCategory(toast.ParseCategory(req.Category)))
	}
	if d != 0 {
		opts = append(opts, toast.WithDuration(d))
	}
	if req.Position != "" {
		opts = append(opts, toast.WithPosition(toast.Position(req.Position)))
	}
	if req.Dismissible != nil {
		opts = append(opts, toast.WithDismissible(*req.Dismissible))
	}
	if req.CloseButton != nil {
		opts = append(opts, toast.WithCloseButton(*req.CloseButton))
	}
	if req.RichColors != nil {
		opts = append(opts, toast.WithRichColors(*req.RichColors))
	}
	if req.Action != "" {
		opts = append(opts, toast.WithAction(req.Action, nil))
	}
	if req.Cancel != "" {
		opts = append(opts, toast.WithCancel(req.Cancel, nil))
	}
	return opts, nil
}

func decode(w http.ResponseWriter, r *http.Request) (ToastRequest, bool) {
	var req ToastRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return req, false
	}
	return req, true
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var body *vdom.VNode
	if err := s.loop.Do(r.Context(), func() {
		body = vdom.Div(vdom.ID("toaster-root"), s.toaster.Render())
	}); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderPage(&buf, render.PageData{
		Body:   body,
		Title:  s.title,
		Script: clientScript,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	var (
		html string
		err  error
	)
	if doErr := s.loop.Do(r.Context(), func() {
		html, err = s.renderer.RenderToString(s.toaster.Render())
	}); doErr != nil {
		writeError(w, http.StatusServiceUnavailable, doErr.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var out []ToastState
	if err := s.loop.Do(r.Context(), func() {
		for _, it := range s.toaster.Items() {
			out = append(out, ToastState{
				ID:          string(it.ID),
				Category:    string(it.Category),
				Position:    string(it.Position),
				State:       it.State.String(),
				Index:       it.Index,
				Visible:     it.Visible,
				Offset:      it.Offset,
				Height:      it.Height,
				RemainingMS: it.Remaining.Milliseconds(),
				Running:     it.Running,
			})
		}
	}); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if out == nil {
		out = []ToastState{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	if req.Position != "" && !toast.Position(req.Position).Valid() {
		writeError(w, http.StatusBadRequest, "unknown position "+req.Position)
		return
	}
	opts, err := req.options()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var id toast.ID
	if err := s.loop.Do(r.Context(), func() {
		if toast.ParseCategory(req.Category) == toast.CategoryCustom {
			id = s.store.Custom(vdom.Div(vdom.Text(req.Title)), opts...)
			return
		}
		id = s.store.Show(content(req.Title, req.Markup), opts...)
	}); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": string(id)})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := toast.ID(chi.URLParam(r, "id"))
	req, ok := decode(w, r)
	if !ok {
		return
	}
	req.ID = ""
	opts, err := req.options()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var updateErr error
	if err := s.loop.Do(r.Context(), func() {
		_, updateErr = s.store.Update(id, content(req.Title, req.Markup), opts...)
	}); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if errors.Is(updateErr, toast.ErrNotFound) {
		writeError(w, http.StatusNotFound, "toast "+string(id)+" not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	id := toast.ID(chi.URLParam(r, "id"))

	found := false
	if err := s.loop.Do(r.Context(), func() {
		if _, found = s.store.Get(id); found {
			s.store.Dismiss(id)
		}
	}); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "toast "+string(id)+" not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDismissAll(w http.ResponseWriter, r *http.Request) {
	if err := s.loop.Do(r.Context(), s.store.DismissAll); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
