package empresa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
)

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name      string
		req       *model.EmpresaCreate
		wantField string
	}{
		{
			name: "valid",
			req:  &model.EmpresaCreate{CNPJ: "12345678000190", RazaoSocial: "ACME LTDA"},
		},
		{
			name:      "missing cnpj",
			req:       &model.EmpresaCreate{RazaoSocial: "ACME LTDA"},
			wantField: "CNPJ",
		},
		{
			name:      "malformed cnpj",
			req:       &model.EmpresaCreate{CNPJ: "123", RazaoSocial: "ACME LTDA"},
			wantField: "CNPJ",
		},
		{
			name:      "missing razao social",
			req:       &model.EmpresaCreate{CNPJ: "12345678000190"},
			wantField: "RazaoSocial",
		},
		{
			name:      "bad email",
			req:       &model.EmpresaCreate{CNPJ: "12345678000190", RazaoSocial: "ACME", Email: "not-an-email"},
			wantField: "Email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreate(tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	err := ValidateUpdate(&model.EmpresaUpdate{RazaoSocial: "ACME NOVA"})
	assert.NoError(t, err)

	err = ValidateUpdate(&model.EmpresaUpdate{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "campo obrigatório", verr.Fields["RazaoSocial"])
}
