package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ProductCatalog/pkg/kit"
)

const maxCallBody = 1 << 20

// Server exposes a Dispatcher under the product-catalog mount: a JSON call
// endpoint, the operation listing, and (when set) the MCP transport.
type Server struct {
	Dispatcher *Dispatcher
	Log        *zap.Logger
	MCP        http.Handler
}

type callReq struct {
	Operation string         `json:"operation"`
	Arguments map[string]any `json:"arguments"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/operations", s.listOperations)
	r.Post("/rpc", s.call)

	if s.MCP != nil {
		r.Handle("/mcp", s.MCP)
		r.Handle("/mcp/", s.MCP)
	}

	return r
}

func (s *Server) listOperations(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Dispatcher.Operations())
}

func (s *Server) call(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCallRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.Operation = strings.TrimSpace(req.Operation)
	if req.Operation == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "operation required", nil)
		return
	}

	res, err := s.Dispatcher.Call(r.Context(), req.Operation, req.Arguments)
	if err != nil {
		if errors.Is(err, ErrUnknownOperation) {
			kit.WriteError(w, r, http.StatusNotFound, "unknown operation", map[string]any{
				"operation": req.Operation,
				"available": s.Dispatcher.Names(),
			})
			return
		}
		if s.Log != nil {
			s.Log.Error("call failed", zap.Error(err), zap.String("operation", req.Operation))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, res)
}

func decodeCallRequest(w http.ResponseWriter, r *http.Request) (callReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCallBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req callReq
	if err := dec.Decode(&req); err != nil {
		return callReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return callReq{}, errors.New("extra data after json object")
	}

	return req, nil
}
