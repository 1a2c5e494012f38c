// Package export gera os arquivos CSV de movimentações e de inventário para
// download. A codificação é UTF-8 com BOM para que o Excel abra os acentos
// corretamente.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
)

// BOM UTF-8 exigido pelo Excel para detectar a codificação.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var trackingHeaders = []string{
	"Data/Hora", "Equipamento", "Nº Série", "Status", "Quantidade",
	"Localização", "Setor", "Responsável", "Quem Entregou", "Quem Recebeu",
}

var inventoryHeaders = []string{
	"Equipamento", "Nº Série", "Categoria", "Localização", "Quantidade Disponível",
}

// CSVExporter serializa listados em CSV.
type CSVExporter struct{}

// NewCSVExporter constrói o exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

// TrackingCSV gera o CSV do histórico de movimentações, na mesma ordem do
// listado (mais recente primeiro).
func (e *CSVExporter) TrackingCSV(movements []dto.MovementResponse) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	if err := w.Write(trackingHeaders); err != nil {
		return nil, fmt.Errorf("csv: escrever cabeçalho: %w", err)
	}
	for _, m := range movements {
		record := []string{
			m.CreatedAt.Format("02/01/2006 15:04:05"),
			m.EquipmentName,
			m.SerialNumber,
			m.Status,
			strconv.FormatInt(m.Quantity, 10),
			orID(m.LocationName, m.LocationID),
			orID(m.SectorName, m.SectorID),
			m.ResponsiblePerson,
			m.DeliveredBy,
			m.ReceivedBy,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv: escrever lançamento: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}

func orID(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

// InventoryCSV gera o CSV do inventário atual.
func (e *CSVExporter) InventoryCSV(equipments []dto.EquipmentResponse) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	if err := w.Write(inventoryHeaders); err != nil {
		return nil, fmt.Errorf("csv: escrever cabeçalho: %w", err)
	}
	for _, eq := range equipments {
		record := []string{
			eq.Name,
			eq.SerialNumber,
			eq.CategoryID,
			eq.LocationID,
			strconv.FormatInt(eq.AvailableQuantity, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv: escrever equipamento: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}
