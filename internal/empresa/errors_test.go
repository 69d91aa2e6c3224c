package empresa

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipegalvaoz/zemdocs-admin/pkg/backend"
)

func TestClassifyCreateError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantDup bool
		wantMsg string
	}{
		{
			name:    "structured duplicate kind",
			err:     &backend.APIError{StatusCode: http.StatusConflict, Message: "CNPJ já cadastrado", Kind: "duplicate_key"},
			wantDup: true,
			wantMsg: "CNPJ já cadastrado",
		},
		{
			name:    "legacy postgres message",
			err:     &backend.APIError{StatusCode: http.StatusInternalServerError, Message: "duplicate key value violates unique constraint \"empresas_cnpj_key\""},
			wantDup: true,
		},
		{
			name:    "legacy portuguese message",
			err:     &backend.APIError{StatusCode: http.StatusConflict, Message: "empresa já cadastrada"},
			wantDup: true,
		},
		{
			name:    "bare 400 treated as duplicate",
			err:     &backend.APIError{StatusCode: http.StatusBadRequest, Message: "erro ao criar empresa"},
			wantDup: true,
		},
		{
			name:    "server error stays generic",
			err:     &backend.APIError{StatusCode: http.StatusInternalServerError, Message: "banco indisponível"},
			wantDup: false,
		},
		{
			name:    "non-api error passes through",
			err:     errors.New("connection refused"),
			wantDup: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyCreateError("12345678000190", tt.err)

			var dup *DuplicateCNPJError
			if !tt.wantDup {
				assert.False(t, errors.As(got, &dup))
				assert.Equal(t, tt.err, got)
				return
			}
			require.ErrorAs(t, got, &dup)
			assert.Equal(t, "12345678000190", dup.CNPJ)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, dup.Message)
			}
			assert.Contains(t, dup.Error(), "12.345.678/0001-90")
		})
	}
}

func TestMapAPIError(t *testing.T) {
	notFound := &backend.APIError{StatusCode: http.StatusNotFound, Message: "empresa não encontrada"}
	assert.ErrorIs(t, mapAPIError(notFound), ErrNotFound)

	boom := &backend.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	assert.Equal(t, error(boom), mapAPIError(boom))

	plain := errors.New("timeout")
	assert.Equal(t, plain, mapAPIError(plain))
}
