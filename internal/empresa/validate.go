package empresa

import (
	"github.com/go-playground/validator/v10"

	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registered as a tag so the create payload can declare the CNPJ
	// invariant next to the field.
	_ = v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		return model.ValidCNPJ(fl.Field().String())
	})
	return v
}

// fieldMessages maps validator tags to operator-facing messages.
func fieldMessages(err error) map[string]string {
	fields := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = err.Error()
		return fields
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "campo obrigatório"
		case "cnpj":
			fields[fe.Field()] = "CNPJ deve ter 14 dígitos"
		case "email":
			fields[fe.Field()] = "email inválido"
		default:
			fields[fe.Field()] = "valor inválido"
		}
	}
	return fields
}

// ValidateCreate checks a creation draft before it touches the network.
func ValidateCreate(req *model.EmpresaCreate) error {
	if err := validate.Struct(req); err != nil {
		return &ValidationError{Fields: fieldMessages(err)}
	}
	return nil
}

// ValidateUpdate checks an update payload before it touches the network.
func ValidateUpdate(req *model.EmpresaUpdate) error {
	if err := validate.Struct(req); err != nil {
		return &ValidationError{Fields: fieldMessages(err)}
	}
	return nil
}
