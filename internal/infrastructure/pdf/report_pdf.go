// Package pdf implementa a geração dos documentos imprimíveis do sistema:
// o relatório de movimentações e a folha de etiquetas QR dos equipamentos.
//
// Layout da página A4 do relatório:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Período do filtro                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: totais por status | por setor | por localização     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Data | Equipamento | Status | Qtde | Setor | Resp.  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
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

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoGenerator gera os PDFs do sistema usando Maroto v2.
type MarotoGenerator struct{}

// NewMarotoGenerator constrói o gerador.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// GenerateMovementReport gera o PDF do relatório de movimentações e devolve
// seus bytes.
func (g *MarotoGenerator) GenerateMovementReport(
	_ context.Context,
	report *dto.MovementReportDTO,
	filter dto.ReportFilter,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Movimentações", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(reportHeaderRow(filter, report.Total))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow("Por status", report.ByStatus))
	m.AddRows(summaryRow("Por setor", report.BySector))
	m.AddRows(summaryRow("Por localização", report.ByLocation))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMovementRows(report.Movements) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar relatório: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// reportHeaderRow: título (esq) e período + total (dir).
func reportHeaderRow(filter dto.ReportFilter, total int) core.Row {
	periodo := "Todo o período"
	if filter.From != nil && filter.To != nil {
		periodo = fmt.Sprintf("%s a %s",
			filter.From.Format("02/01/2006"), filter.To.Format("02/01/2006"))
	} else if filter.From != nil {
		periodo = "Desde " + filter.From.Format("02/01/2006")
	} else if filter.To != nil {
		periodo = "Até " + filter.To.Format("02/01/2006")
	}

	return row.New(16).Add(
		col.New(7).Add(
			text.New("RELATÓRIO DE MOVIMENTAÇÕES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Controle de equipamentos da Sala de Setup", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+periodo, props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(fmt.Sprintf("Total de lançamentos: %d", total), props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// summaryRow: uma linha de resumo com os totais agrupados.
func summaryRow(label string, totals []dto.GroupTotalDTO) core.Row {
	resumo := "—"
	if len(totals) > 0 {
		resumo = ""
		for i, t := range totals {
			if i > 0 {
				resumo += "   |   "
			}
			resumo += fmt.Sprintf("%s: %d", t.Name, t.Quantity)
		}
	}
	return row.New(8).Add(
		col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		})),
		col.New(9).Add(text.New(resumo, props.Text{
			Size: 8, Top: 1, Color: colorGray,
		})),
	)
}

// tableHeaderRow: cabeçalho da tabela de lançamentos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data/Hora", 2, align.Left),
		h("Equipamento", 4, align.Left),
		h("Status", 2, align.Center),
		h("Qtde", 1, align.Center),
		h("Responsável", 3, align.Left),
	)
}

// tableMovementRows: uma fila por lançamento.
func tableMovementRows(movements []dto.MovementResponse) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		nome := mv.EquipmentName
		if nome == "" {
			nome = mv.EquipmentID
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				mv.CreatedAt.Format("02/01/2006 15:04"),
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				nome,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				mv.Status,
				props.Text{Size: 7.5, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", mv.Quantity),
				props.Text{Size: 7.5, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(mv.ResponsiblePerson, "—"),
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
