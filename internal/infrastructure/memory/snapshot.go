package memory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
)

// snapshot layout del archivo: una clave por colección.
type snapshot struct {
	Employees   []employeeRecord   `json:"funcionarios"`
	Categories  []categoryRecord   `json:"categorias"`
	Products    []productRecord    `json:"produtos"`
	Movements   []movementRecord   `json:"movimentacoes"`
	Balances    map[string]flexInt `json:"saldos"`
	Counts      []countRecord      `json:"contagens"`
	Labels      []labelRecord      `json:"etiquetas"`
	Productions []productionRecord `json:"producao"`
	Losses      []lossRecord       `json:"perdas"`
}

type refRecord struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}

type employeeRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"nome"`
	Role      string   `json:"cargo,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"telefone,omitempty"`
	Status    string   `json:"status,omitempty"`
	CreatedAt flexTime `json:"createdAt"`
	UpdatedAt flexTime `json:"updatedAt"`
}

type categoryRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"nome"`
	Description string   `json:"descricao,omitempty"`
	Status      string   `json:"status,omitempty"`
	CreatedAt   flexTime `json:"createdAt"`
	UpdatedAt   flexTime `json:"updatedAt"`
}

type productRecord struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"nome"`
	Code                 string   `json:"codigo,omitempty"`
	CategoryID           string   `json:"categoriaId,omitempty"`
	DefaultShelfLifeDays flexInt  `json:"validadePadrao"`
	DefaultStorage       string   `json:"statusPadrao,omitempty"`
	Status               string   `json:"status,omitempty"`
	CreatedAt            flexTime `json:"createdAt"`
	UpdatedAt            flexTime `json:"updatedAt"`
}

type movementRecord struct {
	ID        string   `json:"id"`
	ProductID string   `json:"produtoId"`
	Type      string   `json:"tipo"`
	Quantity  flexInt  `json:"quantidade"`
	Date      flexTime `json:"data"`
	Notes     string   `json:"observacao,omitempty"`
	CreatedAt flexTime `json:"createdAt"`
	UpdatedAt flexTime `json:"updatedAt"`
}

type lossRecord struct {
	ID        string   `json:"id"`
	ProductID string   `json:"produtoId"`
	Quantity  flexInt  `json:"quantidade"`
	Date      flexTime `json:"data"`
	Reason    string   `json:"motivo,omitempty"`
	Notes     string   `json:"observacao,omitempty"`
	CreatedAt flexTime `json:"createdAt"`
	UpdatedAt flexTime `json:"updatedAt"`
}

type inputRecord struct {
	ProductID string  `json:"produtoId"`
	Quantity  flexInt `json:"quantidade"`
}

type productionRecord struct {
	ID          string        `json:"id"`
	ProductID   string        `json:"produtoId"`
	Quantity    flexInt       `json:"quantidade"`
	Date        flexTime      `json:"data"`
	Responsible *refRecord    `json:"responsavel,omitempty"`
	Notes       string        `json:"observacao,omitempty"`
	Inputs      []inputRecord `json:"insumos"`
	CreatedAt   flexTime      `json:"createdAt"`
	UpdatedAt   flexTime      `json:"updatedAt"`
}

type countRecord struct {
	ID              string     `json:"id"`
	Product         refRecord  `json:"produto"`
	Responsible     *refRecord `json:"responsavel,omitempty"`
	Quantity        flexInt    `json:"quantidade"`
	PreviousBalance flexInt    `json:"saldoAnterior"`
	Difference      flexInt    `json:"diferenca"`
	AdjustStock     bool       `json:"ajustarEstoque"`
	Notes           string     `json:"observacao,omitempty"`
	Timestamp       flexTime   `json:"timestamp"`
}

type labelProductRecord struct {
	ID            string  `json:"id"`
	Name          string  `json:"nome"`
	ShelfLifeDays flexInt `json:"validade"`
	Storage       string  `json:"armazenamento,omitempty"`
}

type measureRecord struct {
	Value flexDecimal `json:"valor"`
	Unit  string      `json:"unidade"`
}

// flexDecimal valor de medida heredado: string ("0,5", "500") o número. Valid=false si no es numérico.
type flexDecimal struct {
	Value decimal.Decimal
	Valid bool
}

func (d flexDecimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Value.String())
}

func (d *flexDecimal) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*d = flexDecimal{}
		return nil
	}
	v, err := entity.ParseMeasureValue(s)
	*d = flexDecimal{Value: v, Valid: err == nil}
	return nil
}

type labelRecord struct {
	ID             string             `json:"id"`
	Product        labelProductRecord `json:"produto"`
	Responsible    refRecord          `json:"responsavel"`
	HandledAt      flexTime           `json:"dataManipulacao"`
	ExpiresAt      flexTime           `json:"dataValidade"`
	Quantity       flexInt            `json:"quantidade"`
	Measure        *measureRecord     `json:"medida,omitempty"`
	OriginalExpiry string             `json:"validadeOriginal,omitempty"`
	SIF            string             `json:"sif,omitempty"`
	Batch          string             `json:"lote,omitempty"`
	Status         string             `json:"status,omitempty"`
	CreatedAt      flexTime           `json:"createdAt"`
	UpdatedAt      flexTime           `json:"updatedAt"`
}

// flexInt entero que también acepta strings numéricos y números con decimales (datos heredados).
type flexInt int64

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*n = flexInt(v)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("cantidad inválida %q", s)
	}
	*n = flexInt(int64(f))
	return nil
}

// flexTime instante que acepta "", fecha simple o RFC3339. Se escribe en RFC3339Nano.
type flexTime struct {
	time.Time
}

func (t flexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		t.Time = v
		return nil
	}
	v, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q", s)
	}
	t.Time = v
	return nil
}

func ft(t time.Time) flexTime { return flexTime{Time: t} }

// status heredado ativo/inativo -> active/inactive.
func normalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case entity.StatusInactive, "inativo":
		return entity.StatusInactive
	default:
		return entity.StatusActive
	}
}

func refToEntity(r *refRecord) *entity.EmployeeRef {
	if r == nil || r.ID == "" {
		return nil
	}
	return &entity.EmployeeRef{ID: r.ID, Name: r.Name}
}

func refFromEntity(r *entity.EmployeeRef) *refRecord {
	if r == nil {
		return nil
	}
	return &refRecord{ID: r.ID, Name: r.Name}
}

// loadSnapshot lee path; archivo inexistente o vacío = estado vacío.
func loadSnapshot(path string) (*state, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return newState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	st, err := decodeSnapshot(b)
	if err != nil {
		return nil, fmt.Errorf("decodificar snapshot %s: %w", path, err)
	}
	return st, nil
}

func decodeSnapshot(b []byte) (*state, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return newState(), nil
	}
	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return snap.toState(), nil
}

// saveSnapshot escribe en un archivo temporal y lo renombra sobre path.
func saveSnapshot(path string, st *state) error {
	b, err := json.MarshalIndent(fromState(st), "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *snapshot) toState() *state {
	st := newState()
	for _, r := range s.Employees {
		st.employees.put(r.ID, &entity.Employee{
			ID: r.ID, Name: r.Name, Role: r.Role, Email: r.Email, Phone: r.Phone,
			Status: normalizeStatus(r.Status), CreatedAt: r.CreatedAt.Time, UpdatedAt: r.UpdatedAt.Time,
		})
	}
	for _, r := range s.Categories {
		st.categories.put(r.ID, &entity.Category{
			ID: r.ID, Name: r.Name, Description: r.Description,
			Status: normalizeStatus(r.Status), CreatedAt: r.CreatedAt.Time, UpdatedAt: r.UpdatedAt.Time,
		})
	}
	for _, r := range s.Products {
		st.products.put(r.ID, &entity.Product{
			ID: r.ID, Name: r.Name, Code: r.Code, CategoryID: r.CategoryID,
			DefaultShelfLifeDays: int(r.DefaultShelfLifeDays), DefaultStorage: r.DefaultStorage,
			Status: normalizeStatus(r.Status), CreatedAt: r.CreatedAt.Time, UpdatedAt: r.UpdatedAt.Time,
		})
	}
	for _, r := range s.Movements {
		st.movements.put(r.ID, &entity.StockMovement{
			ID: r.ID, ProductID: r.ProductID, Type: r.Type, Quantity: int64(r.Quantity),
			Date: r.Date.Time, Notes: r.Notes, CreatedAt: r.CreatedAt.Time, UpdatedAt: r.UpdatedAt.Time,
		})
	}
	for id, q := range s.Balances {
		st.balances[id] = entity.StockBalance{ProductID: id, Quantity: int64(q)}
	}
	for _, r := range s.Counts {
		st.counts.put(r.ID, &entity.StockCount{
			ID:              r.ID,
			Product:         entity.ProductRef{ID: r.Product.ID, Name: r.Product.Name},
			Responsible:     refToEntity(r.Responsible),
			Quantity:        int64(r.Quantity),
			PreviousBalance: int64(r.PreviousBalance),
			Difference:      int64(r.Difference),
			AdjustStock:     r.AdjustStock,
			Notes:           r.Notes,
			Timestamp:       r.Timestamp.Time,
		})
	}
	for _, r := range s.Labels {
		l := &entity.Label{
			ID: r.ID,
			Product: entity.LabelProduct{
				ID: r.Product.ID, Name: r.Product.Name,
				ShelfLifeDays: int(r.Product.ShelfLifeDays), Storage: r.Product.Storage,
			},
			Responsible:    entity.EmployeeRef{ID: r.Responsible.ID, Name: r.Responsible.Name},
			HandledAt:      r.HandledAt.Time,
			ExpiresAt:      r.ExpiresAt.Time,
			Quantity:       int(r.Quantity),
			OriginalExpiry: r.OriginalExpiry,
			SIF:            r.SIF,
			Batch:          r.Batch,
			Status:         r.Status,
			CreatedAt:      r.CreatedAt.Time,
			UpdatedAt:      r.UpdatedAt.Time,
		}
		if r.Measure != nil && r.Measure.Value.Valid {
			l.Measure = &entity.Measure{Value: r.Measure.Value.Value, Unit: r.Measure.Unit}
		}
		st.labels.put(r.ID, l)
	}
	for _, r := range s.Productions {
		p := &entity.Production{
			ID: r.ID, ProductID: r.ProductID, Quantity: int64(r.Quantity), Date: r.Date.Time,
			Responsible: refToEntity(r.Responsible), Notes: r.Notes,
			CreatedAt: r.CreatedAt.Time, UpdatedAt: r.UpdatedAt.Time,
		}
		for _, in := range r.Inputs {
			p.Inputs = append(p.Inputs, entity.ProductionInput{ProductID: in.ProductID, Quantity: int64(in.Quantity)})
		}
		st.productions.put(r.ID, p)
	}
	for _, r := range s.Losses {
		st.losses.put(r.ID, &entity.Loss{
			ID: r.ID, ProductID: r.ProductID, Quantity: int64(r.Quantity), Date: r.Date.Time,
			Reason: r.Reason, Notes: r.Notes, CreatedAt: r.CreatedAt.Time, UpdatedAt: r.UpdatedAt.Time,
		})
	}
	return st
}

func fromState(st *state) *snapshot {
	s := &snapshot{
		Employees:   []employeeRecord{},
		Categories:  []categoryRecord{},
		Products:    []productRecord{},
		Movements:   []movementRecord{},
		Balances:    make(map[string]flexInt, len(st.balances)),
		Counts:      []countRecord{},
		Labels:      []labelRecord{},
		Productions: []productionRecord{},
		Losses:      []lossRecord{},
	}
	for _, e := range st.employees.all() {
		s.Employees = append(s.Employees, employeeRecord{
			ID: e.ID, Name: e.Name, Role: e.Role, Email: e.Email, Phone: e.Phone,
			Status: e.Status, CreatedAt: ft(e.CreatedAt), UpdatedAt: ft(e.UpdatedAt),
		})
	}
	for _, c := range st.categories.all() {
		s.Categories = append(s.Categories, categoryRecord{
			ID: c.ID, Name: c.Name, Description: c.Description,
			Status: c.Status, CreatedAt: ft(c.CreatedAt), UpdatedAt: ft(c.UpdatedAt),
		})
	}
	for _, p := range st.products.all() {
		s.Products = append(s.Products, productRecord{
			ID: p.ID, Name: p.Name, Code: p.Code, CategoryID: p.CategoryID,
			DefaultShelfLifeDays: flexInt(p.DefaultShelfLifeDays), DefaultStorage: p.DefaultStorage,
			Status: p.Status, CreatedAt: ft(p.CreatedAt), UpdatedAt: ft(p.UpdatedAt),
		})
	}
	for _, m := range st.movements.all() {
		s.Movements = append(s.Movements, movementRecord{
			ID: m.ID, ProductID: m.ProductID, Type: m.Type, Quantity: flexInt(m.Quantity),
			Date: ft(m.Date), Notes: m.Notes, CreatedAt: ft(m.CreatedAt), UpdatedAt: ft(m.UpdatedAt),
		})
	}
	for id, b := range st.balances {
		s.Balances[id] = flexInt(b.Quantity)
	}
	for _, c := range st.counts.all() {
		s.Counts = append(s.Counts, countRecord{
			ID:              c.ID,
			Product:         refRecord{ID: c.Product.ID, Name: c.Product.Name},
			Responsible:     refFromEntity(c.Responsible),
			Quantity:        flexInt(c.Quantity),
			PreviousBalance: flexInt(c.PreviousBalance),
			Difference:      flexInt(c.Difference),
			AdjustStock:     c.AdjustStock,
			Notes:           c.Notes,
			Timestamp:       ft(c.Timestamp),
		})
	}
	for _, l := range st.labels.all() {
		r := labelRecord{
			ID: l.ID,
			Product: labelProductRecord{
				ID: l.Product.ID, Name: l.Product.Name,
				ShelfLifeDays: flexInt(l.Product.ShelfLifeDays), Storage: l.Product.Storage,
			},
			Responsible:    refRecord{ID: l.Responsible.ID, Name: l.Responsible.Name},
			HandledAt:      ft(l.HandledAt),
			ExpiresAt:      ft(l.ExpiresAt),
			Quantity:       flexInt(l.Quantity),
			OriginalExpiry: l.OriginalExpiry,
			SIF:            l.SIF,
			Batch:          l.Batch,
			Status:         l.Status,
			CreatedAt:      ft(l.CreatedAt),
			UpdatedAt:      ft(l.UpdatedAt),
		}
		if l.Measure != nil {
			r.Measure = &measureRecord{Value: flexDecimal{Value: l.Measure.Value, Valid: true}, Unit: l.Measure.Unit}
		}
		s.Labels = append(s.Labels, r)
	}
	for _, p := range st.productions.all() {
		r := productionRecord{
			ID: p.ID, ProductID: p.ProductID, Quantity: flexInt(p.Quantity), Date: ft(p.Date),
			Responsible: refFromEntity(p.Responsible), Notes: p.Notes, Inputs: []inputRecord{},
			CreatedAt: ft(p.CreatedAt), UpdatedAt: ft(p.UpdatedAt),
		}
		for _, in := range p.Inputs {
			r.Inputs = append(r.Inputs, inputRecord{ProductID: in.ProductID, Quantity: flexInt(in.Quantity)})
		}
		s.Productions = append(s.Productions, r)
	}
	for _, l := range st.losses.all() {
		s.Losses = append(s.Losses, lossRecord{
			ID: l.ID, ProductID: l.ProductID, Quantity: flexInt(l.Quantity), Date: ft(l.Date),
			Reason: l.Reason, Notes: l.Notes, CreatedAt: ft(l.CreatedAt), UpdatedAt: ft(l.UpdatedAt),
		})
	}
	return s
}
