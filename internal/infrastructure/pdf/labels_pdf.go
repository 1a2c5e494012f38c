package pdf

import (
	"context"
	"encoding/json"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
)

// Etiquetas por fila na folha A4 (3 colunas de 4 unidades cada).
const labelsPerRow = 3

// GenerateLabelSheet gera a folha de etiquetas QR para impressão e colagem
// nos equipamentos. Cada QR codifica o LookupPayload em JSON; a câmera do
// cliente decodifica e consulta o endpoint de lookup.
func (g *MarotoGenerator) GenerateLabelSheet(
	_ context.Context,
	payloads []dto.LookupPayload,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Etiquetas QR", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New("ETIQUETAS DE EQUIPAMENTO", props.Text{
			Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
		}),
	)))

	for start := 0; start < len(payloads); start += labelsPerRow {
		end := start + labelsPerRow
		if end > len(payloads) {
			end = len(payloads)
		}
		r, err := labelRow(payloads[start:end])
		if err != nil {
			return nil, err
		}
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

// labelRow: até 3 etiquetas lado a lado (QR + nome + série).
func labelRow(payloads []dto.LookupPayload) (core.Row, error) {
	cols := make([]core.Col, 0, labelsPerRow)
	for _, p := range payloads {
		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("pdf: montar payload da etiqueta: %w", err)
		}
		serie := p.SerialNumber
		if serie == "" {
			serie = "sem número de série"
		}
		cols = append(cols, col.New(4).Add(
			code.NewQr(string(data), props.Rect{
				Percent: 75,
				Center:  true,
			}),
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 42,
			}),
			text.New(serie, props.Text{
				Size: 7, Align: align.Center, Top: 47, Color: colorGray,
			}),
		))
	}
	for len(cols) < labelsPerRow {
		cols = append(cols, col.New(4))
	}
	return row.New(55).Add(cols...), nil
}
