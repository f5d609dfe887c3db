package statements

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ledgerhouse/member-ledger/pkg/api"
	"github.com/ledgerhouse/member-ledger/pkg/handlers/respond"
	"github.com/ledgerhouse/member-ledger/pkg/statement"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// StatementsHandler holds the dependencies for statement-related handlers.
type StatementsHandler struct {
	Generator *statement.Generator
}

// NewStatementsHandler creates a new StatementsHandler.
func NewStatementsHandler(gen *statement.Generator) *StatementsHandler {
	return &StatementsHandler{Generator: gen}
}

// GenerateStatement handles the logic for exporting a statement over a
// closed date range. Query parameters: start, end (YYYY-MM-DD, both
// inclusive) and an optional format (tabular or document).
func (h *StatementsHandler) GenerateStatement(w http.ResponseWriter, r *http.Request) {
	ident, ok := respond.Caller(w, r)
	if !ok {
		return
	}

	params, err := parseParams(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid statement parameters: %v", err), http.StatusBadRequest)
		return
	}

	format := statement.FormatTabular
	if params.Format != nil {
		format, err = statement.ParseFormat(*params.Format)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid format: %v", err), http.StatusBadRequest)
			return
		}
	}

	st, err := h.Generator.Generate(r.Context(), ident, ident.AccountId, params.Start.Time, params.End.Time)
	if err != nil {
		respond.Error(w, err)
		return
	}

	rendered, err := statement.Render(st, format)
	if err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", statement.Filename(st, format)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rendered); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// parseParams decodes the start, end and format query parameters.
func parseParams(r *http.Request) (*api.GenerateStatementParams, error) {
	var params api.GenerateStatementParams

	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	params.Start = openapi_types.Date{Time: start}

	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	params.End = openapi_types.Date{Time: end}

	if format := r.URL.Query().Get("format"); format != "" {
		params.Format = &format
	}

	return &params, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.Parse(openapi_types.DateFormat, s)
}
