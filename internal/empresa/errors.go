package empresa

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
	"github.com/felipegalvaoz/zemdocs-admin/pkg/backend"
)

// ErrNotFound is returned when the backend has no record for the
// requested id or CNPJ.
var ErrNotFound = errors.New("empresa não encontrada")

// DuplicateCNPJError means creation failed because the CNPJ is already
// registered. It carries the attempted CNPJ so the caller can offer the
// existing listing as a recovery action instead of a plain dismiss.
type DuplicateCNPJError struct {
	CNPJ    string
	Message string
}

func (e *DuplicateCNPJError) Error() string {
	return fmt.Sprintf("empresa com CNPJ %s já cadastrada", model.FormatCNPJ(e.CNPJ))
}

// ValidationError is a pre-submit failure. It never reaches the network
// layer.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validação falhou: " + strings.Join(parts, "; ")
}

// duplicateKind is the structured error code the backend should emit
// for unique-key violations.
const duplicateKind = "duplicate_key"

// duplicateSubstrings is the legacy fallback: backends that predate the
// structured code report duplicates only through natural-language error
// text. Case-sensitive substring match, same as the original client.
var duplicateSubstrings = []string{
	"já existe",
	"já está cadastrada",
	"já cadastrada",
	"já cadastrado",
	"duplicate key",
	"unique constraint",
	"unique constraint failed",
}

// ClassifyCreateError decides whether a creation failure is a duplicate
// CNPJ or something else. The structured kind wins when present; the
// substring heuristic and the bare-400 fallback cover older backends.
func ClassifyCreateError(cnpj string, err error) error {
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	if apiErr.Kind == duplicateKind {
		return &DuplicateCNPJError{CNPJ: cnpj, Message: apiErr.Message}
	}
	for _, s := range duplicateSubstrings {
		if strings.Contains(apiErr.Message, s) {
			return &DuplicateCNPJError{CNPJ: cnpj, Message: apiErr.Message}
		}
	}
	if apiErr.StatusCode == http.StatusBadRequest {
		return &DuplicateCNPJError{CNPJ: cnpj, Message: apiErr.Message}
	}
	return err
}

// mapAPIError translates backend status codes into the domain taxonomy.
func mapAPIError(err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}
