package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/infrastructure/export"
)

func parseCSV(t *testing.T, raw []byte) [][]string {
	t.Helper()
	// o BOM antecede o conteúdo e não faz parte dos registros
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))
	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestTrackingCSV(t *testing.T) {
	e := export.NewCSVExporter()
	created := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)

	out, err := e.TrackingCSV([]dto.MovementResponse{
		{
			EquipmentName:     "Notebook Dell",
			SerialNumber:      "SN-001",
			Status:            "saida",
			Quantity:          2,
			LocationID:        "loc-1",
			LocationName:      "Almoxarifado A",
			SectorID:          "setor-ti",
			ResponsiblePerson: "Maria Souza",
			DeliveredBy:       "João Lima",
			ReceivedBy:        "Maria Souza",
			CreatedAt:         created,
		},
	})
	require.NoError(t, err)

	rows := parseCSV(t, out)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Data/Hora", "Equipamento", "Nº Série", "Status", "Quantidade",
		"Localização", "Setor", "Responsável", "Quem Entregou", "Quem Recebeu",
	}, rows[0])
	assert.Equal(t, "15/08/2026 09:30:00", rows[1][0])
	assert.Equal(t, "Notebook Dell", rows[1][1])
	assert.Equal(t, "Almoxarifado A", rows[1][5])
	// setor sem nome resolvido cai no ID
	assert.Equal(t, "setor-ti", rows[1][6])
}

func TestTrackingCSV_Vazio(t *testing.T) {
	out, err := export.NewCSVExporter().TrackingCSV(nil)
	require.NoError(t, err)
	rows := parseCSV(t, out)
	assert.Len(t, rows, 1) // só o cabeçalho
}

func TestInventoryCSV(t *testing.T) {
	e := export.NewCSVExporter()

	out, err := e.InventoryCSV([]dto.EquipmentResponse{
		{Name: "Teclado ABNT", SerialNumber: "SN-002", CategoryID: "perifericos", LocationID: "b2", AvailableQuantity: 14},
		{Name: "Caixa de Som", AvailableQuantity: 3},
	})
	require.NoError(t, err)

	rows := parseCSV(t, out)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Equipamento", "Nº Série", "Categoria", "Localização", "Quantidade Disponível"}, rows[0])
	assert.Equal(t, []string{"Teclado ABNT", "SN-002", "perifericos", "b2", "14"}, rows[1])
	assert.Equal(t, []string{"Caixa de Som", "", "", "", "3"}, rows[2])
}
