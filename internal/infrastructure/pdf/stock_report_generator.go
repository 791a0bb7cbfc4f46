// Package pdf genera el informe imprimible de stock bajo para el back-office.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Informe de Stock Bajo  │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total variantes / agotadas / en stock bajo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Variante | Actual | Reserv | Disp  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de uso interno                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	appinventory "github.com/tu-usuario/stock-engine/internal/application/inventory"
	"github.com/tu-usuario/stock-engine/internal/application/dto"
	"github.com/tu-usuario/stock-engine/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appinventory.LowStockReportGenerator = (*MarotoStockReportGenerator)(nil)

// MarotoStockReportGenerator implementa inventory.LowStockReportGenerator usando Maroto v2.
type MarotoStockReportGenerator struct{}

// NewMarotoStockReportGenerator construye el generador.
func NewMarotoStockReportGenerator() *MarotoStockReportGenerator { return &MarotoStockReportGenerator{} }

// Generate genera el PDF del informe de stock bajo y devuelve sus bytes.
// Los items llegan ya ordenados (agotados primero, luego por disponible ascendente).
func (g *MarotoStockReportGenerator) Generate(
	_ context.Context,
	organizationID string,
	generatedAt time.Time,
	items []dto.StockSummaryItemDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de Stock Bajo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(items))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}
	if len(items) == 0 {
		m.AddRows(emptyRow())
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	fecha := generatedAt.Format("02/01/2006 15:04")

	return row.New(14).Add(
		col.New(8).Add(
			text.New("INFORME DE STOCK BAJO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Variantes agotadas o por debajo del umbral de reposición", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRow: conteos agregados del informe.
func summaryRow(items []dto.StockSummaryItemDTO) core.Row {
	out := 0
	for _, it := range items {
		if it.Class == inventory.StockClassOut {
			out++
		}
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Variantes en alerta: %d   |   Agotadas: %d   |   Stock bajo: %d",
				len(items), out, len(items)-out,
			), props.Text{Size: 9, Top: 2}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de variantes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Variante", 3, align.Left),
		h("Actual", 1, align.Right),
		h("Reserv.", 1, align.Right),
		h("Disp.", 1, align.Right),
		h("Umbral", 1, align.Right),
	)
}

// tableItemRows: una fila por variante; las agotadas se resaltan en rojo.
func tableItemRows(items []dto.StockSummaryItemDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		availColor := colorGray
		if it.Class == inventory.StockClassOut {
			availColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(it.VariantName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(it.CurrentStock.StringFixed(0), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(1).Add(text.New(it.ReservedStock.StringFixed(0), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(1).Add(text.New(it.AvailableStock.StringFixed(0), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
				Color: availColor,
			})),
			col.New(1).Add(text.New(it.Threshold.StringFixed(0), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
			})),
		))
	}
	return result
}

func emptyRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Sin variantes en alerta. Todo el inventario está por encima del umbral.", props.Text{
			Size: 9, Align: align.Center, Top: 3, Color: colorGray,
		}),
	))
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento de uso interno. Las cifras reflejan el estado del inventario "+
				"al momento de generación y pueden variar con movimientos posteriores.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}
