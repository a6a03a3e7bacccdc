package tea

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"TeaHouse/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

// teaReq carries the client-supplied fields. Absent fields decode to
// zero values and are stored as-is; only presence of the id is enforced,
// not presence of name/price.
type teaReq struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTeaRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	t, err := s.Store.Create(r.Context(), req.Name, req.Price)
	if err != nil {
		s.writeStoreError(w, r, err, "create tea failed")
		return
	}

	kit.WriteJSON(w, http.StatusCreated, t)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	teas, err := s.Store.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "list teas failed")
		return
	}

	kit.WriteJSON(w, http.StatusOK, teas)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, ok := parseID(raw)
	if !ok {
		writeNotFound(w, r, raw)
		return
	}

	t, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, "get tea failed")
		return
	}
	if !found {
		writeNotFound(w, r, raw)
		return
	}

	kit.WriteJSON(w, http.StatusOK, t)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, ok := parseID(raw)
	if !ok {
		writeNotFound(w, r, raw)
		return
	}

	req, err := decodeTeaRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	t, found, err := s.Store.Update(r.Context(), id, req.Name, req.Price)
	if err != nil {
		s.writeStoreError(w, r, err, "update tea failed")
		return
	}
	if !found {
		writeNotFound(w, r, raw)
		return
	}

	kit.WriteJSON(w, http.StatusOK, t)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, ok := parseID(raw)
	if !ok {
		writeNotFound(w, r, raw)
		return
	}

	found, err := s.Store.Delete(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, "delete tea failed")
		return
	}
	if !found {
		writeNotFound(w, r, raw)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseID rejects anything that is not a plain base-10 integer. The
// route treats a non-integer id the same as a missing record.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func writeNotFound(w http.ResponseWriter, r *http.Request, raw string) {
	kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": raw})
}

func decodeTeaRequest(w http.ResponseWriter, r *http.Request) (teaReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req teaReq
	if err := dec.Decode(&req); err != nil {
		return teaReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return teaReq{}, errors.New("extra data after json object")
	}

	return req, nil
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err))
	}
	if isTimeoutErr(err) {
		kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
		return
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func isTimeoutErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
