// Package model defines the empresa record types shared by the admin
// gateway, the CLI, and the backend client.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Registration statuses mirrored from the official registry. The set is
// open: the backend stores whatever the registry reports.
const (
	SituacaoAtiva    = "ATIVA"
	SituacaoSuspensa = "SUSPENSA"
	SituacaoInapta   = "INAPTA"
	SituacaoBaixada  = "BAIXADA"
)

// Empresa is one registered company as held by the zemdocs core API.
// ID and the audit timestamps are backend-assigned and read-only here.
type Empresa struct {
	ID   int    `json:"id"`
	CNPJ string `json:"cnpj"`

	RazaoSocial        string `json:"razao_social"`
	NomeFantasia       string `json:"nome_fantasia"`
	DataAbertura       string `json:"data_abertura"`
	Porte              string `json:"porte"`
	NaturezaJuridica   string `json:"natureza_juridica"`
	AtividadePrincipal string `json:"atividade_principal"`
	SituacaoCadastral  string `json:"situacao_cadastral"`

	InscricaoEstadual  string `json:"inscricao_estadual"`
	InscricaoMunicipal string `json:"inscricao_municipal"`

	// Endereço
	Logradouro  string `json:"logradouro"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	CEP         string `json:"cep"`
	Bairro      string `json:"bairro"`
	Municipio   string `json:"municipio"`
	UF          string `json:"uf"`

	// Contato
	Email    string `json:"email"`
	Telefone string `json:"telefone"`

	CapitalSocial   decimal.Decimal `json:"capital_social"`
	SimplesNacional bool            `json:"simples_nacional"`
	MEI             bool            `json:"mei"`

	// Ativa is the business flag, distinct from SituacaoCadastral which
	// mirrors the official registry.
	Ativa bool `json:"ativa"`

	AtividadesSecundarias []string            `json:"atividades_secundarias,omitempty"`
	Membros               []Membro            `json:"membros,omitempty"`
	Telefones             []TelefoneEmpresa   `json:"telefones,omitempty"`
	Emails                []EmailEmpresa      `json:"emails,omitempty"`
	InscricoesEstaduais   []InscricaoEstadual `json:"inscricoes_estaduais,omitempty"`
	DadosSuframa          []Suframa           `json:"dados_suframa,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Membro is a person in the company's ownership board.
type Membro struct {
	Nome       string `json:"nome"`
	Documento  string `json:"documento"`
	Cargo      string `json:"cargo"`
	DataInicio string `json:"data_inicio"`
	Idade      string `json:"idade"`
}

// TelefoneEmpresa is a secondary phone with its type and area code.
type TelefoneEmpresa struct {
	Tipo   string `json:"tipo"`
	DDD    string `json:"ddd"`
	Numero string `json:"numero"`
}

// EmailEmpresa is a secondary email with its type.
type EmailEmpresa struct {
	Email string `json:"email"`
	Tipo  string `json:"tipo"`
}

// InscricaoEstadual is a state registration number.
type InscricaoEstadual struct {
	Estado string `json:"estado"`
	Numero string `json:"numero"`
	Status string `json:"status"`
}

// Suframa is a special-incentive registration.
type Suframa struct {
	Numero         string `json:"numero"`
	DataCadastro   string `json:"data_cadastro"`
	DataVencimento string `json:"data_vencimento"`
	TipoIncentivo  string `json:"tipo_incentivo"`
	Ativa          bool   `json:"ativa"`
}

// EmpresaCreate is the full creation payload: everything a lookup can
// pre-populate plus whatever the operator typed in.
type EmpresaCreate struct {
	CNPJ string `json:"cnpj" validate:"required,cnpj"`

	RazaoSocial        string `json:"razao_social" validate:"required"`
	NomeFantasia       string `json:"nome_fantasia"`
	DataAbertura       string `json:"data_abertura"`
	Porte              string `json:"porte"`
	NaturezaJuridica   string `json:"natureza_juridica"`
	AtividadePrincipal string `json:"atividade_principal"`
	SituacaoCadastral  string `json:"situacao_cadastral"`

	InscricaoEstadual  string `json:"inscricao_estadual"`
	InscricaoMunicipal string `json:"inscricao_municipal"`

	Logradouro  string `json:"logradouro"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	CEP         string `json:"cep"`
	Bairro      string `json:"bairro"`
	Municipio   string `json:"municipio"`
	UF          string `json:"uf"`

	Email    string `json:"email" validate:"omitempty,email"`
	Telefone string `json:"telefone"`

	CapitalSocial   decimal.Decimal `json:"capital_social"`
	SimplesNacional bool            `json:"simples_nacional"`
	MEI             bool            `json:"mei"`
	Ativa           bool            `json:"ativa"`

	AtividadesSecundarias []string            `json:"atividades_secundarias"`
	Membros               []Membro            `json:"membros"`
	Telefones             []TelefoneEmpresa   `json:"telefones"`
	Emails                []EmailEmpresa      `json:"emails"`
	InscricoesEstaduais   []InscricaoEstadual `json:"inscricoes_estaduais"`
	DadosSuframa          []Suframa           `json:"dados_suframa"`
}

// EmpresaUpdate is the partial-update payload. Only these five fields
// are mutable after creation.
type EmpresaUpdate struct {
	RazaoSocial  string `json:"razao_social" validate:"required"`
	NomeFantasia string `json:"nome_fantasia"`
	Email        string `json:"email" validate:"omitempty,email"`
	Telefone     string `json:"telefone"`
	Ativa        bool   `json:"ativa"`
}

// EmpresaPage is the list envelope returned by the backend.
type EmpresaPage struct {
	Empresas []Empresa `json:"empresas"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

// ListFilter holds the backend list parameters.
type ListFilter struct {
	Limit  int
	Offset int
	Search string
}
