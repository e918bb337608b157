// Package memory implementa los repositorios sobre un store en proceso con
// snapshot JSON opcional (mismo layout de colecciones que el almacenamiento local heredado).
package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/nicklvs1307/stockfy/internal/application/inventory"
)

var _ inventory.TxRunner = (*Store)(nil)

// access lectura/escritura sobre el estado. Store toma los locks; txScope ya corre bajo el lock de Run.
type access interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// Store un único escritor a la vez (mutex); cada escritura trabaja sobre una copia
// del estado y la publica solo si tuvo éxito, luego persiste el snapshot.
type Store struct {
	mu   sync.RWMutex
	st   *state
	path string
}

// NewStore store vacío solo en memoria.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Open carga el snapshot de path (si existe) y persiste cada escritura en él.
func Open(path string) (*Store, error) {
	st, err := loadSnapshot(path)
	if err != nil {
		return nil, err
	}
	return &Store{st: st, path: path}, nil
}

// Load store solo en memoria a partir de un snapshot ya abierto (no persiste escrituras).
func Load(r io.Reader) (*Store, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	st, err := decodeSnapshot(b)
	if err != nil {
		return nil, fmt.Errorf("decodificar snapshot: %w", err)
	}
	return &Store{st: st}, nil
}

// Run ejecuta fn con repositorios atados a una copia del estado. Error = descarte completo.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(func(st *state) error {
		return fn(repositoriesFor(&txScope{st: st}))
	})
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.st.clone()
	if err := fn(next); err != nil {
		return err
	}
	if s.path != "" {
		if err := saveSnapshot(s.path, next); err != nil {
			return fmt.Errorf("persistir snapshot: %w", err)
		}
	}
	s.st = next
	return nil
}

// txScope estado de una transacción en curso.
type txScope struct {
	st *state
}

func (t *txScope) read(fn func(st *state) error) error  { return fn(t.st) }
func (t *txScope) write(fn func(st *state) error) error { return fn(t.st) }

func repositoriesFor(a access) inventory.Repositories {
	return inventory.Repositories{
		Stock:      &StockRepo{a: a},
		Movements:  &MovementRepo{a: a},
		Losses:     &LossRepo{a: a},
		Production: &ProductionRepo{a: a},
		Counts:     &CountRepo{a: a},
	}
}

// Repositorios fuera de transacción (cada escritura es atómica por sí sola).

func (s *Store) Stock() *StockRepo           { return &StockRepo{a: s} }
func (s *Store) Movements() *MovementRepo    { return &MovementRepo{a: s} }
func (s *Store) Losses() *LossRepo           { return &LossRepo{a: s} }
func (s *Store) Production() *ProductionRepo { return &ProductionRepo{a: s} }
func (s *Store) Counts() *CountRepo          { return &CountRepo{a: s} }
func (s *Store) Labels() *LabelRepo          { return &LabelRepo{a: s} }
func (s *Store) Products() *ProductRepo      { return &ProductRepo{a: s} }
func (s *Store) Categories() *CategoryRepo   { return &CategoryRepo{a: s} }
func (s *Store) Employees() *EmployeeRepo    { return &EmployeeRepo{a: s} }
