package inventory

import (
	"sort"
	"time"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// Los listados de logs salen siempre del más reciente al más antiguo, sea cual sea el adaptador:
// fecha del registro desc, después alta desc y por último id asc.
func newestFirst[T any](list []T, key func(T) (date, created time.Time, id string)) {
	sort.SliceStable(list, func(i, j int) bool {
		di, ci, idi := key(list[i])
		dj, cj, idj := key(list[j])
		if !di.Equal(dj) {
			return di.After(dj)
		}
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return idi < idj
	})
}

func sortMovements(list []*entity.StockMovement) {
	newestFirst(list, func(m *entity.StockMovement) (time.Time, time.Time, string) { return m.Date, m.CreatedAt, m.ID })
}

func sortLosses(list []*entity.Loss) {
	newestFirst(list, func(l *entity.Loss) (time.Time, time.Time, string) { return l.Date, l.CreatedAt, l.ID })
}

func sortProductions(list []*entity.Production) {
	newestFirst(list, func(p *entity.Production) (time.Time, time.Time, string) { return p.Date, p.CreatedAt, p.ID })
}

// sortCounts las contagens no tienen alta propia; el timestamp ya es el momento del conteo.
func sortCounts(list []*entity.StockCount) {
	newestFirst(list, func(c *entity.StockCount) (time.Time, time.Time, string) { return c.Timestamp, time.Time{}, c.ID })
}
