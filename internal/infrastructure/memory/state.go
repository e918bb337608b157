package memory

import "github.com/nicklvs1307/stockfy/internal/domain/entity"

// state todas las colecciones del store.
type state struct {
	employees   *table[entity.Employee]
	categories  *table[entity.Category]
	products    *table[entity.Product]
	movements   *table[entity.StockMovement]
	balances    map[string]entity.StockBalance
	counts      *table[entity.StockCount]
	labels      *table[entity.Label]
	productions *table[entity.Production]
	losses      *table[entity.Loss]
}

func newState() *state {
	return &state{
		employees:   newTable[entity.Employee](),
		categories:  newTable[entity.Category](),
		products:    newTable[entity.Product](),
		movements:   newTable[entity.StockMovement](),
		balances:    map[string]entity.StockBalance{},
		counts:      newTable[entity.StockCount](),
		labels:      newTable[entity.Label](),
		productions: newTable[entity.Production](),
		losses:      newTable[entity.Loss](),
	}
}

func (s *state) clone() *state {
	balances := make(map[string]entity.StockBalance, len(s.balances))
	for k, v := range s.balances {
		balances[k] = v
	}
	return &state{
		employees:   s.employees.clone(),
		categories:  s.categories.clone(),
		products:    s.products.clone(),
		movements:   s.movements.clone(),
		balances:    balances,
		counts:      s.counts.clone(),
		labels:      s.labels.clone(),
		productions: s.productions.clone(),
		losses:      s.losses.clone(),
	}
}

// Copias profundas de las entidades con punteros o slices.

func copyProduction(p *entity.Production) *entity.Production {
	c := *p
	if p.Responsible != nil {
		r := *p.Responsible
		c.Responsible = &r
	}
	c.Inputs = append([]entity.ProductionInput(nil), p.Inputs...)
	return &c
}

func copyCount(sc *entity.StockCount) *entity.StockCount {
	c := *sc
	if sc.Responsible != nil {
		r := *sc.Responsible
		c.Responsible = &r
	}
	return &c
}

func copyLabel(l *entity.Label) *entity.Label {
	c := *l
	if l.Measure != nil {
		m := *l.Measure
		c.Measure = &m
	}
	return &c
}

func copyOf[T any](v *T) *T {
	c := *v
	return &c
}
