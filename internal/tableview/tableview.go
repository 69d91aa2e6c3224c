// Package tableview holds the client-side table state for the empresas
// listing: filtering, sorting, column pinning, pagination and row
// selection, all applied in memory over an already-fetched page.
package tableview

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
)

// Column identifiers. The set is fixed; pinning and sorting refer to
// columns by these ids.
const (
	ColCNPJ          = "cnpj"
	ColRazaoSocial   = "razao_social"
	ColNomeFantasia  = "nome_fantasia"
	ColMunicipio     = "municipio"
	ColUF            = "uf"
	ColSituacao      = "situacao_cadastral"
	ColDataAbertura  = "data_abertura"
	ColCapitalSocial = "capital_social"
	ColAtiva         = "ativa"
)

// DefaultColumns is the initial column order.
var DefaultColumns = []string{
	ColCNPJ, ColRazaoSocial, ColNomeFantasia, ColMunicipio, ColUF,
	ColSituacao, ColDataAbertura, ColCapitalSocial, ColAtiva,
}

// PageSizes are the only accepted page sizes.
var PageSizes = []int{5, 10, 25, 50}

// Pin is a column's pin position.
type Pin int

// Pin positions.
const (
	PinNone Pin = iota
	PinLeft
	PinRight
)

// Direction is a sort direction. There is no unsorted direction: once a
// column is sorted, further clicks only flip between ascending and
// descending.
type Direction int

// Sort directions.
const (
	Asc Direction = iota
	Desc
)

// Sort is the active sort. At most one column sorts at a time.
type Sort struct {
	Column    string
	Direction Direction
}

// State is the full table state. It is not safe for concurrent use;
// each session owns its own State.
type State struct {
	collator *collate.Collator

	search    string
	situacoes map[string]bool
	portes    map[string]bool
	ufs       map[string]bool
	abertaDe  string
	abertaAte string

	sort *Sort
	pins map[string]Pin

	pageSize int
	page     int

	selected map[int]bool
}

// Result is one rendered page.
type Result struct {
	Rows    []model.Empresa
	Total   int
	Page    int
	Pages   int
	Columns []string
}

// NewState creates a table state with the default page size, no
// filters, and the default sort on razão social.
func NewState() *State {
	return &State{
		collator:  collate.New(language.BrazilianPortuguese, collate.IgnoreCase),
		situacoes: map[string]bool{},
		portes:    map[string]bool{},
		ufs:       map[string]bool{},
		sort:      &Sort{Column: ColRazaoSocial, Direction: Asc},
		pins:      map[string]Pin{},
		pageSize:  10,
		page:      1,
		selected:  map[int]bool{},
	}
}

// SetSearch sets the free-text filter and returns to the first page.
func (s *State) SetSearch(q string) {
	s.search = strings.TrimSpace(q)
	s.page = 1
}

// ToggleSituacao toggles one registration status in the categorical
// filter. An empty set means no status filtering.
func (s *State) ToggleSituacao(v string) {
	toggle(s.situacoes, strings.ToUpper(v))
	s.page = 1
}

// TogglePorte toggles one size bracket in the categorical filter.
func (s *State) TogglePorte(v string) {
	toggle(s.portes, strings.ToUpper(v))
	s.page = 1
}

// ToggleUF toggles one state in the categorical filter.
func (s *State) ToggleUF(v string) {
	toggle(s.ufs, strings.ToUpper(v))
	s.page = 1
}

func toggle(set map[string]bool, v string) {
	if set[v] {
		delete(set, v)
		return
	}
	set[v] = true
}

// SetDateRange filters by opening date, inclusive on both ends. Empty
// bounds are open. Dates are ISO strings, so comparison is lexical.
func (s *State) SetDateRange(from, to string) {
	s.abertaDe, s.abertaAte = from, to
	s.page = 1
}

// SortBy sorts by the given column. Sorting an already-sorted column
// flips the direction; there is no third click back to unsorted.
func (s *State) SortBy(col string) {
	if s.sort.Column == col {
		if s.sort.Direction == Asc {
			s.sort.Direction = Desc
		} else {
			s.sort.Direction = Asc
		}
		return
	}
	s.sort = &Sort{Column: col, Direction: Asc}
}

// SetSort sets the sort outright, bypassing the click-toggle behavior.
func (s *State) SetSort(col string, dir Direction) {
	s.sort = &Sort{Column: col, Direction: dir}
}

// CurrentSort returns the active sort.
func (s *State) CurrentSort() *Sort {
	cp := *s.sort
	return &cp
}

// PinColumn pins a column left or right, or unpins it. Relative order
// within each pin group follows the default column order.
func (s *State) PinColumn(col string, pin Pin) {
	if pin == PinNone {
		delete(s.pins, col)
		return
	}
	s.pins[col] = pin
}

// Columns returns the display order: left-pinned, unpinned, then
// right-pinned, each group keeping its original relative order.
func (s *State) Columns() []string {
	var left, middle, right []string
	for _, col := range DefaultColumns {
		switch s.pins[col] {
		case PinLeft:
			left = append(left, col)
		case PinRight:
			right = append(right, col)
		default:
			middle = append(middle, col)
		}
	}
	out := make([]string, 0, len(DefaultColumns))
	out = append(out, left...)
	out = append(out, middle...)
	return append(out, right...)
}

// SetPageSize switches the page size and returns to the first page.
// Sizes outside PageSizes are ignored.
func (s *State) SetPageSize(n int) {
	for _, allowed := range PageSizes {
		if n == allowed {
			s.pageSize = n
			s.page = 1
			return
		}
	}
}

// SetPage moves to the given page. Out-of-range values clamp during
// Apply, when the filtered total is known.
func (s *State) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.page = n
}

// ToggleSelect toggles one row in the selection.
func (s *State) ToggleSelect(id int) {
	if s.selected[id] {
		delete(s.selected, id)
		return
	}
	s.selected[id] = true
}

// SelectAll adds every given id to the selection.
func (s *State) SelectAll(ids []int) {
	for _, id := range ids {
		s.selected[id] = true
	}
}

// ClearSelection empties the selection.
func (s *State) ClearSelection() {
	s.selected = map[int]bool{}
}

// Selected returns the selected ids in ascending order.
func (s *State) Selected() []int {
	out := make([]int, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Apply runs the current filters, sort and pagination over the records
// and returns the visible page. All active filters combine with AND.
func (s *State) Apply(records []model.Empresa) Result {
	filtered := make([]model.Empresa, 0, len(records))
	for _, e := range records {
		if s.matches(&e) {
			filtered = append(filtered, e)
		}
	}

	s.sortRecords(filtered)

	total := len(filtered)
	pages := (total + s.pageSize - 1) / s.pageSize
	if pages == 0 {
		pages = 1
	}
	page := s.page
	if page > pages {
		page = pages
	}

	start := (page - 1) * s.pageSize
	end := start + s.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Rows:    filtered[start:end],
		Total:   total,
		Page:    page,
		Pages:   pages,
		Columns: s.Columns(),
	}
}

// DistinctValues returns the sorted distinct values of a categorical
// column across the records, for populating filter option lists.
func DistinctValues(records []model.Empresa, col string) []string {
	seen := map[string]bool{}
	for _, e := range records {
		var v string
		switch col {
		case ColSituacao:
			v = strings.ToUpper(e.SituacaoCadastral)
		case ColUF:
			v = strings.ToUpper(e.UF)
		case ColMunicipio:
			v = e.Municipio
		}
		if v != "" {
			seen[v] = true
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s *State) matches(e *model.Empresa) bool {
	if s.search != "" && !matchesSearch(e, s.search) {
		return false
	}
	if len(s.situacoes) > 0 && !s.situacoes[strings.ToUpper(e.SituacaoCadastral)] {
		return false
	}
	if len(s.portes) > 0 && !s.portes[strings.ToUpper(e.Porte)] {
		return false
	}
	if len(s.ufs) > 0 && !s.ufs[strings.ToUpper(e.UF)] {
		return false
	}
	if s.abertaDe != "" && e.DataAbertura < s.abertaDe {
		return false
	}
	if s.abertaAte != "" && e.DataAbertura > s.abertaAte {
		return false
	}
	return true
}

// matchesSearch checks the free text against the three identifying
// fields: CNPJ, razão social, and nome fantasia. CNPJ matches both raw
// digits and the formatted rendering so operators can paste either
// form.
func matchesSearch(e *model.Empresa, q string) bool {
	q = strings.ToLower(q)
	for _, field := range []string{
		model.NormalizeCNPJ(e.CNPJ),
		model.FormatCNPJ(e.CNPJ),
		e.RazaoSocial,
		e.NomeFantasia,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (s *State) sortRecords(records []model.Empresa) {
	col, dir := s.sort.Column, s.sort.Direction
	sort.SliceStable(records, func(i, j int) bool {
		less := s.less(&records[i], &records[j], col)
		if dir == Desc {
			return s.less(&records[j], &records[i], col)
		}
		return less
	})
}

// less compares two records on one column. Text columns use the pt-BR
// collator so accented names order the way operators expect.
func (s *State) less(a, b *model.Empresa, col string) bool {
	switch col {
	case ColCNPJ:
		return model.NormalizeCNPJ(a.CNPJ) < model.NormalizeCNPJ(b.CNPJ)
	case ColRazaoSocial:
		return s.collator.CompareString(a.RazaoSocial, b.RazaoSocial) < 0
	case ColNomeFantasia:
		return s.collator.CompareString(a.NomeFantasia, b.NomeFantasia) < 0
	case ColMunicipio:
		return s.collator.CompareString(a.Municipio, b.Municipio) < 0
	case ColUF:
		return a.UF < b.UF
	case ColSituacao:
		return s.collator.CompareString(a.SituacaoCadastral, b.SituacaoCadastral) < 0
	case ColDataAbertura:
		return a.DataAbertura < b.DataAbertura
	case ColCapitalSocial:
		return a.CapitalSocial.LessThan(b.CapitalSocial)
	case ColAtiva:
		return !a.Ativa && b.Ativa
	}
	return false
}
