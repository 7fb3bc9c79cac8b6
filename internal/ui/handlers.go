package ui

import (
	"encoding/json"
	"net/http"

	"github.com/leapstack-labs/sqlmark/pkg/annotate"
)

// maxRequestBody caps annotate request bodies at 4 MiB; SQL statements are
// small and anything larger is a client error.
const maxRequestBody = 4 << 20

// AnnotateRequest is the POST /api/annotate body.
type AnnotateRequest struct {
	SQL        string               `json:"sql"`
	References []annotate.Reference `json:"references"`
	// Diagnostics requests unmatched-reference reporting for this call,
	// overriding the server default when true.
	Diagnostics bool `json:"diagnostics,omitempty"`
}

// AnnotateResponse is the POST /api/annotate reply: the annotation result
// plus a display badge for every supplied reference.
type AnnotateResponse struct {
	Lines     [][]annotate.Segment `json:"lines"`
	Unmatched []annotate.Reference `json:"unmatched,omitempty"`
	Badges    []RefBadge           `json:"badges"`
}

// RefBadge pairs a reference number with its display badge.
type RefBadge struct {
	Num   string         `json:"referenceNum"`
	Badge annotate.Badge `json:"badge"`
}

// Health reports service liveness.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Annotate runs the annotation core over the request body.
func (s *Server) Annotate(w http.ResponseWriter, r *http.Request) {
	var req AnnotateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result := annotate.AnnotateWithOptions(req.SQL, req.References, annotate.Options{
		Diagnostics: s.diagnostics || req.Diagnostics,
		Logger:      s.logger,
	})

	resp := AnnotateResponse{
		Lines:     result.Lines,
		Unmatched: result.Unmatched,
		Badges:    make([]RefBadge, 0, len(req.References)),
	}
	for _, ref := range req.References {
		resp.Badges = append(resp.Badges, RefBadge{Num: ref.Num, Badge: s.icons.Badge(ref)})
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
