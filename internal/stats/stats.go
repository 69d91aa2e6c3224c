// Package stats aggregates summary figures over the empresas
// collection for the dashboard header cards.
package stats

import (
	"strconv"
	"strings"
	"time"

	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
)

// Summary holds the dashboard aggregates computed from one listing.
type Summary struct {
	Total        int            `json:"total"`
	Ativas       int            `json:"ativas"`
	NovasEsteAno int            `json:"novas_este_ano"`
	PorUF        map[string]int `json:"por_uf"`
}

// Compute aggregates the records at the given reference time. A company
// counts as active when either the business flag is set or the registry
// status reads ATIVA; the two can disagree on backends that predate the
// flag.
func Compute(records []model.Empresa, now time.Time) Summary {
	s := Summary{PorUF: map[string]int{}}
	year := now.Year()

	for _, e := range records {
		s.Total++
		if e.Ativa || strings.EqualFold(e.SituacaoCadastral, model.SituacaoAtiva) {
			s.Ativas++
		}
		if openedInYear(e.DataAbertura, year) {
			s.NovasEsteAno++
		}
		if uf := strings.ToUpper(strings.TrimSpace(e.UF)); uf != "" {
			s.PorUF[uf]++
		}
	}
	return s
}

// openedInYear reads the year out of an ISO opening date. Malformed or
// empty dates simply do not count.
func openedInYear(date string, year int) bool {
	if len(date) < 4 {
		return false
	}
	y, err := strconv.Atoi(date[:4])
	return err == nil && y == year
}
