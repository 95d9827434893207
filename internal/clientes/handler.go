package clientes

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/clientes/internal/platform/httpx"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.service.List(r.Context(), ListClientesRequest{
		Pais: r.URL.Query().Get("pais"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, clientes)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := clienteID(r)
	if !ok {
		h.respondError(w, r, ErrNotFound)
		return
	}
	cliente, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cliente)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClienteRequest
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	cliente, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, cliente)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := clienteID(r)
	if !ok {
		h.respondError(w, r, ErrNotFound)
		return
	}
	// A missing body updates nothing, like {}.
	var req UpdateClienteRequest
	if err := decode(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, r, err)
		return
	}
	cliente, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cliente)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := clienteID(r)
	if !ok {
		h.respondError(w, r, ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.Message(w, http.StatusOK, MsgEliminado)
}

// Helpers
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpx.StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("clientes request failed", "error", err, "method", r.Method, "path", r.URL.Path)
	} else {
		h.logger.Debug("clientes request rejected", "error", err, "status", status, "path", r.URL.Path)
	}
	httpx.RespondError(w, err)
}

func clienteID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := httpx.DecodeJSON(r, target); err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	return nil
}
