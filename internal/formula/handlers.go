package formula

import (
	"encoding/json"
	"errors"
	"net/http"

	"physcalc/internal/handlers"
	"physcalc/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// maxBodyBytes bounds an evaluation request body.
const maxBodyBytes = 64 << 10

// ListHandler handles GET /api/v1/formulas.
func ListHandler(p *Processor) http.HandlerFunc {
	infos := p.Describe()
	return func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, infos)
	}
}

// EvaluateHandler handles POST /api/v1/formulas/{name}. Validation failures
// answer 422, collaborator failures 502.
func EvaluateHandler(p *Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		name := chi.URLParam(r, "name")

		if _, ok := p.Endpoint(name); !ok {
			handlers.WriteError(w, http.StatusNotFound, "unknown formula")
			return
		}

		var req Request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			status, msg := http.StatusBadRequest, "invalid request body"
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status, msg = http.StatusRequestEntityTooLarge, "request body too large"
			}
			observability.RecordError(ctx, w, status, trace.SpanFromContext(ctx), observability.LoggerWithTrace(ctx),
				p.metrics.errors, observability.Failure{
					Op:      name,
					Kind:    KindValidation,
					Message: msg,
					Err:     err,
				})
			return
		}

		res := p.Evaluate(ctx, name, req)
		if !res.OK() {
			kind := ErrorKind(res.Err)
			status := http.StatusUnprocessableEntity
			switch kind {
			case KindCollaborator:
				status = http.StatusBadGateway
			case KindInternal:
				status = http.StatusInternalServerError
			}
			handlers.WriteJSON(w, status, ErrorResponse{
				Error:  res.Message,
				Kind:   kind,
				Detail: detail(res.Err),
			})
			return
		}

		handlers.WriteJSON(w, http.StatusOK, ResultResponse{
			Endpoint:  res.Endpoint,
			Selector:  res.Selector,
			Inputs:    res.Inputs,
			Values:    res.Values,
			Series:    res.Series,
			RequestID: observability.RequestIDFromContext(ctx),
		})
	}
}

// detail is the reason shown to API clients. Internal errors are not exposed.
func detail(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		if verr.Field != "" {
			return verr.Field + " " + verr.Reason
		}
		return verr.Reason
	}
	var cerr *CollaboratorError
	if errors.As(err, &cerr) {
		return cerr.Collaborator + " unavailable"
	}
	return "internal error"
}
