// Package export renders the empresas listing as an XLSX workbook for
// download from the dashboard.
package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
)

// SheetName is the single sheet every export carries.
const SheetName = "Empresas"

// header is the fixed column order of the export.
var header = []string{
	"CNPJ", "Razão Social", "Nome Fantasia", "Situação Cadastral",
	"Data Abertura", "Município", "UF", "Capital Social",
	"Simples Nacional", "MEI", "Ativa", "Email", "Telefone",
}

// WriteXLSX writes the records as one worksheet. CNPJ goes out in the
// formatted rendering since the file is for people, not machines.
func WriteXLSX(w io.Writer, records []model.Empresa) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	row := sheet.AddRow()
	for _, h := range header {
		row.AddCell().SetString(h)
	}

	for _, e := range records {
		row := sheet.AddRow()
		row.AddCell().SetString(model.FormatCNPJ(e.CNPJ))
		row.AddCell().SetString(e.RazaoSocial)
		row.AddCell().SetString(e.NomeFantasia)
		row.AddCell().SetString(e.SituacaoCadastral)
		row.AddCell().SetString(e.DataAbertura)
		row.AddCell().SetString(e.Municipio)
		row.AddCell().SetString(e.UF)
		row.AddCell().SetString(e.CapitalSocial.StringFixed(2))
		row.AddCell().SetString(boolLabel(e.SimplesNacional))
		row.AddCell().SetString(boolLabel(e.MEI))
		row.AddCell().SetString(boolLabel(e.Ativa))
		row.AddCell().SetString(e.Email)
		row.AddCell().SetString(e.Telefone)
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

func boolLabel(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
