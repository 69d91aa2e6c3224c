package empresa

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
	"github.com/felipegalvaoz/zemdocs-admin/pkg/cnpja"
)

// DraftFromLookup maps a registry lookup into an editable creation
// draft. The mapping is pure and total: any missing nested field
// degrades to its zero default, never to an error. First non-empty
// value wins; typedCNPJ backs the registry tax id when the registry
// omits it.
func DraftFromLookup(office *cnpja.Office, typedCNPJ string) *model.EmpresaCreate {
	draft := &model.EmpresaCreate{
		CNPJ:                  model.NormalizeCNPJ(typedCNPJ),
		AtividadesSecundarias: []string{},
		Membros:               []model.Membro{},
		Telefones:             []model.TelefoneEmpresa{},
		Emails:                []model.EmailEmpresa{},
		InscricoesEstaduais:   []model.InscricaoEstadual{},
		DadosSuframa:          []model.Suframa{},
	}
	if office == nil {
		return draft
	}

	if office.TaxID != "" {
		draft.CNPJ = model.NormalizeCNPJ(office.TaxID)
	}
	draft.RazaoSocial = office.Company.Name
	draft.NomeFantasia = office.Alias
	draft.DataAbertura = office.Founded
	draft.Porte = office.Company.Size.Text
	draft.NaturezaJuridica = office.Company.Nature.Text
	draft.AtividadePrincipal = office.MainActivity.Text

	// Status descriptions vary between registry releases; the stored
	// form is the uppercased text, while the active flag comes from the
	// stable status code.
	draft.SituacaoCadastral = strings.ToUpper(office.Status.Text)
	draft.Ativa = office.Status.ID == cnpja.StatusActiveID

	draft.Logradouro = office.Address.Street
	draft.Numero = office.Address.Number
	draft.Complemento = office.Address.Details
	draft.CEP = office.Address.Zip
	draft.Bairro = office.Address.District
	draft.Municipio = office.Address.City
	draft.UF = office.Address.State

	if len(office.Emails) > 0 {
		draft.Email = office.Emails[0].Address
	}
	if len(office.Phones) > 0 {
		draft.Telefone = formatPhone(office.Phones[0])
	}

	draft.CapitalSocial = decimal.NewFromFloat(office.Company.Equity)
	draft.SimplesNacional = office.Company.Simples.Optant
	draft.MEI = office.Company.Simei.Optant

	for _, a := range office.SideActivities {
		draft.AtividadesSecundarias = append(draft.AtividadesSecundarias, formatActivity(a))
	}
	for _, m := range office.Company.Members {
		draft.Membros = append(draft.Membros, model.Membro{
			Nome:       m.Person.Name,
			Documento:  m.Person.TaxID,
			Cargo:      m.Role.Text,
			DataInicio: m.Since,
			Idade:      m.Person.Age,
		})
	}
	for _, p := range office.Phones {
		draft.Telefones = append(draft.Telefones, model.TelefoneEmpresa{
			Tipo:   p.Type,
			DDD:    p.Area,
			Numero: p.Number,
		})
	}
	for _, e := range office.Emails {
		draft.Emails = append(draft.Emails, model.EmailEmpresa{
			Email: e.Address,
			Tipo:  e.Ownership,
		})
	}
	for _, r := range office.Registrations {
		draft.InscricoesEstaduais = append(draft.InscricoesEstaduais, model.InscricaoEstadual{
			Estado: r.State,
			Numero: r.Number,
			Status: r.Status.Text,
		})
	}
	for _, s := range office.Suframa {
		entry := model.Suframa{
			Numero:       s.Number,
			DataCadastro: s.Since,
			Ativa:        s.Approved,
		}
		if len(s.Incentives) > 0 {
			entry.TipoIncentivo = s.Incentives[0].Benefit
		}
		draft.DadosSuframa = append(draft.DadosSuframa, entry)
	}

	if draft.InscricaoEstadual == "" && len(draft.InscricoesEstaduais) > 0 {
		draft.InscricaoEstadual = draft.InscricoesEstaduais[0].Numero
	}

	return draft
}

// formatPhone renders a registry phone as "(area) number".
func formatPhone(p cnpja.Phone) string {
	if p.Area == "" {
		return p.Number
	}
	return fmt.Sprintf("(%s) %s", p.Area, p.Number)
}

// formatActivity renders a CNAE activity as "code - description".
func formatActivity(a cnpja.Activity) string {
	if a.ID == 0 {
		return a.Text
	}
	return fmt.Sprintf("%d - %s", a.ID, a.Text)
}
