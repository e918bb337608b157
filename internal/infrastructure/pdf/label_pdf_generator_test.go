package pdf_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/stockfy/internal/domain/entity"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/pdf"
)

func label() *entity.Label {
	handled := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	return &entity.Label{
		ID:          "l-1",
		Product:     entity.LabelProduct{ID: "p1", Name: "Caldo de Legumes", ShelfLifeDays: 2},
		Responsible: entity.EmployeeRef{ID: "f1", Name: "Ana"},
		HandledAt:   handled,
		ExpiresAt:   handled.AddDate(0, 0, 2),
		Quantity:    1,
		SIF:         "123",
	}
}

func TestQRData(t *testing.T) {
	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(pdf.QRData(label())), &payload))
	assert.Equal(t, "l-1", payload["id"])
	assert.Equal(t, "Caldo de Legumes", payload["produto"])
	assert.Equal(t, "2024-04-03T08:00:00Z", payload["validade"])
	assert.Equal(t, "Ana", payload["responsavel"])
}

func TestGenerateLabelPDF(t *testing.T) {
	g := pdf.NewLabelPDFGenerator("CNPJ: 00.000.000/0001-00", "Rua A, 1")
	b, err := g.GenerateLabelPDF(context.Background(), label())
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.Equal(t, "%PDF", string(b[:4]))
}
