package proxy

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/felipegalvaoz/zemdocs-admin/internal/empresa"
	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
	"github.com/felipegalvaoz/zemdocs-admin/internal/stats"
	"github.com/felipegalvaoz/zemdocs-admin/pkg/cnpja"
)

// errorBody is the JSON error envelope. Kind is set only for errors the
// frontend dispatches on, such as duplicate CNPJs.
type errorBody struct {
	Error  string            `json:"error"`
	Kind   string            `json:"kind,omitempty"`
	CNPJ   string            `json:"cnpj,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("proxy: response encode failed", zap.Error(err))
	}
}

// writeError translates the domain error taxonomy into HTTP responses.
func writeError(w http.ResponseWriter, err error) {
	var dup *empresa.DuplicateCNPJError
	if errors.As(err, &dup) {
		writeJSON(w, http.StatusConflict, errorBody{
			Error: dup.Error(),
			Kind:  "duplicate_key",
			CNPJ:  dup.CNPJ,
		})
		return
	}

	var verr *empresa.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:  "dados inválidos",
			Fields: verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, empresa.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "empresa não encontrada"})
	case errors.Is(err, cnpja.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "CNPJ não encontrado na Receita"})
	case errors.Is(err, cnpja.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "limite de consultas excedido, tente novamente em alguns minutos"})
	default:
		zap.L().Error("proxy: request failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "erro ao comunicar com o servidor"})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ListFilter{
		Limit:  intQuery(q.Get("limit"), 20),
		Offset: intQuery(q.Get("offset"), 0),
		Search: q.Get("search"),
	}

	page, err := s.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "id inválido"})
		return
	}

	e, err := s.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleGetByCNPJ(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.GetByCNPJ(r.Context(), chi.URLParam(r, "cnpj"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// handleLookup consults the public registry and returns an editable
// draft. Nothing is persisted.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	draft, err := s.svc.Lookup(r.Context(), chi.URLParam(r, "cnpj"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.EmpresaCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "corpo inválido"})
		return
	}

	e, err := s.svc.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleCreateFromCNPJ(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.CreateFromCNPJ(r.Context(), chi.URLParam(r, "cnpj"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "id inválido"})
		return
	}

	var req model.EmpresaUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "corpo inválido"})
		return
	}

	e, err := s.svc.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "id inválido"})
		return
	}

	if err := s.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStats pulls one wide listing and aggregates it. The dashboard
// shows four cards; a dedicated backend endpoint is not worth the trip.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	page, err := s.svc.List(r.Context(), model.ListFilter{Limit: s.listsize})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Compute(page.Empresas, time.Now()))
}

func intQuery(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
