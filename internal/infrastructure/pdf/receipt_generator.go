// Package pdf genera el recibo de venta en PDF.
//
// Layout del recibo (media carta):
//
//	┌──────────────────────────────────────┐
//	│  NOMBRE DEL NEGOCIO                  │
//	│  Recibo N° V-20250115-A3F1           │
//	│  Fecha / Cajero / Cliente            │
//	│  ──────────────────────────────────  │
//	│  Artículo | Kg | Precio/kg | Total   │
//	│  ──────────────────────────────────  │
//	│  TOTAL A PAGAR                       │
//	│  Leyenda: precio congelado al        │
//	│  momento de la venta                 │
//	└──────────────────────────────────────┘
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appsales "github.com/nangulu/pos-api/internal/application/sales"
	"github.com/nangulu/pos-api/internal/domain/entity"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// printer formatea montos con separador de miles (solo presentación; los
// cálculos viven en decimal exacto).
var printer = message.NewPrinter(language.Spanish)

// MarotoReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	businessName string
}

var _ appsales.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(businessName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{businessName: businessName}
}

// GenerateReceiptPDF genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, sale *entity.Sale, item *entity.Item, cashier *entity.User) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Recibo %s", sale.SaleNumber), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(g.businessName, sale, cashier)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.4}))
	m.AddRows(detailRows(sale, item)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.4}))
	m.AddRows(totalRow(sale))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar recibo PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRows(businessName string, sale *entity.Sale, cashier *entity.User) []core.Row {
	cashierName := sale.CashierID
	if cashier != nil {
		cashierName = cashier.FullName
	}
	customer := sale.CustomerName
	if customer == "" {
		customer = "mostrador"
	}
	rows := []core.Row{
		row.New(8).Add(
			text.NewCol(12, businessName, props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center}),
		),
		row.New(5).Add(
			text.NewCol(12, fmt.Sprintf("Recibo N° %s", sale.SaleNumber), props.Text{Size: 10, Align: align.Center}),
		),
		row.New(4).Add(
			text.NewCol(6, fmt.Sprintf("Fecha: %s", sale.CreatedAt.Format("2006-01-02 15:04")), props.Text{Size: 8}),
			text.NewCol(6, fmt.Sprintf("Cajero: %s", cashierName), props.Text{Size: 8, Align: align.Right}),
		),
		row.New(4).Add(
			text.NewCol(12, fmt.Sprintf("Cliente: %s", customer), props.Text{Size: 8}),
		),
	}
	if sale.Status == entity.SaleStatusReversed {
		rows = append(rows, row.New(5).Add(
			text.NewCol(12, "*** VENTA ANULADA ***", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center}),
		))
	}
	return rows
}

func detailRows(sale *entity.Sale, item *entity.Item) []core.Row {
	return []core.Row{
		row.New(5).Add(
			text.NewCol(5, "Artículo", props.Text{Size: 8, Style: fontstyle.Bold}),
			text.NewCol(2, "Kg", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(3, "Precio/kg", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(2, "Total", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
		),
		row.New(5).Add(
			text.NewCol(5, item.Name, props.Text{Size: 8}),
			text.NewCol(2, sale.KgSold.StringFixed(3), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(3, money(sale.PriceSnapshot), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, money(sale.TotalPrice), props.Text{Size: 8, Align: align.Right}),
		),
	}
}

func totalRow(sale *entity.Sale) core.Row {
	return row.New(8).Add(
		col.New(6),
		text.NewCol(6, fmt.Sprintf("TOTAL A PAGAR: %s", money(sale.TotalPrice)),
			props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	return row.New(6).Add(
		text.NewCol(12,
			fmt.Sprintf("Precio por kg congelado al momento de la venta (%s). Anulaciones solo completas, con motivo.", money(sale.PriceSnapshot)),
			props.Text{Size: 7, Align: align.Center, Color: colorGray}),
	)
}

func money(d decimal.Decimal) string {
	return printer.Sprintf("$%.2f", d.InexactFloat64())
}
