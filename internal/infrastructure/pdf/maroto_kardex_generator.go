// Package pdf genera el kardex imprimible de un producto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + SKU          │  Stock actual + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cant. | Saldo | Motivo | Actor        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: Saldo del kardex vs stock + QR del producto            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	appinventory "github.com/jhoicas/servihogar-api/internal/application/inventory"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appinventory.KardexRenderer = (*MarotoKardexGenerator)(nil)

// MarotoKardexGenerator implementa inventory.KardexRenderer usando Maroto v2.
type MarotoKardexGenerator struct {
	company string
}

// NewMarotoKardexGenerator construye el generador. company aparece como autor del PDF.
func NewMarotoKardexGenerator(company string) *MarotoKardexGenerator {
	return &MarotoKardexGenerator{company: company}
}

// RenderKardex genera el PDF con los movimientos en orden cronológico y el saldo acumulado.
func (g *MarotoKardexGenerator) RenderKardex(product *entity.Product, movements []*entity.InventoryMovement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex "+product.Name, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(product, time.Now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	rows, balance := movementRows(movements)
	if len(rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(text.New("Sin movimientos registrados", props.Text{
			Size: 8, Align: align.Center, Top: 2, Color: colorGray,
		}))))
	}
	m.AddRows(rows...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(product, balance))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(product *entity.Product, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("KARDEX DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
			text.New("SKU: "+nonEmpty(product.SKU, "—"), props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Stock actual", props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(strconv.Itoa(product.Stock), props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 6,
			}),
			text.New("Emitido: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("Saldo", 1, align.Right),
		h("Motivo", 4, align.Left),
		h("Actor", 3, align.Left),
	)
}

// movementRows una fila por movimiento con el saldo acumulado; devuelve el saldo final.
func movementRows(movements []*entity.InventoryMovement) ([]core.Row, int) {
	result := make([]core.Row, 0, len(movements))
	balance := 0
	for _, mv := range movements {
		balance += mv.SignedQuantity()
		qtyColor := colorPrimary
		if mv.Type == entity.MovementTypeOUT {
			qtyColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(mv.CreatedAt.Format("02/01/2006 15:04"),
				props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(1).Add(text.New(mv.Type,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: qtyColor})),
			col.New(1).Add(text.New(strconv.Itoa(mv.SignedQuantity()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor})),
			col.New(1).Add(text.New(strconv.Itoa(balance),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(4).Add(text.New(mv.Reason,
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(mv.Actor, "—"),
				props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return result, balance
}

func footerRow(product *entity.Product, balance int) core.Row {
	status := "Kardex conciliado con el stock"
	statusColor := colorPrimary
	if balance != product.Stock {
		status = fmt.Sprintf("DESCUADRE: kardex %d vs stock %d", balance, product.Stock)
		statusColor = colorRed
	}
	return row.New(30).Add(
		col.New(8).Add(
			text.New("Saldo según kardex: "+strconv.Itoa(balance), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 3,
			}),
			text.New(status, props.Text{
				Size: 8, Top: 10, Color: statusColor,
			}),
		),
		col.New(4).Add(code.NewQr(product.ID, props.Rect{
			Center: true, Percent: 80,
		})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
