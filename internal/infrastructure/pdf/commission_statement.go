// Package pdf genera el estado de comisiones de un partner con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Partner + Empresa   │  Periodo + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: MRR / Proyección anual / Clientes / Promedio       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cliente | Inicio | Valor mensual | Tasa | Comisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TENDENCIA: últimos 12 meses                                 │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

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

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var statusLabels = map[string]string{
	"active":   "Activa",
	"inactive": "Inactiva",
	"paid":     "Pagada",
}

// StatementGenerator implementa ports.StatementRenderer usando Maroto v2.
type StatementGenerator struct {
	appName string
}

// NewStatementGenerator construye el generador; appName va como autor del documento.
func NewStatementGenerator(appName string) *StatementGenerator {
	return &StatementGenerator{appName: appName}
}

// RenderCommissionStatement genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) RenderCommissionStatement(st *dto.CommissionStatement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de comisiones", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(st.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(st.Commissions)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(trendRows(st.Summary.Trend)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Las comisiones activas se liquidan mensualmente sobre el valor mensual de cada cliente. "+
			"Documento informativo, no constituye factura.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: partner y empresa (izq), periodo y fecha de generación (der).
func headerRow(st *dto.CommissionStatement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(st.PartnerName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s", nonEmpty(st.Company, "-"), nonEmpty(st.Email, "-")), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE COMISIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(st.Period, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+st.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: cuatro indicadores en columnas iguales.
func summaryRow(s dto.CommissionDashboardResponse) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Align: align.Center, Top: 6}),
		)
	}
	return row.New(16).Add(
		kpi("Ingreso mensual (MRR)", money(s.MRR)),
		kpi("Proyección anual", money(s.AnnualProjection)),
		kpi("Clientes activos", fmt.Sprintf("%d", s.ActiveClients)),
		kpi("Promedio por cliente", money(s.AveragePerClient)),
	)
}

// tableHeaderRow: cabecera de la tabla de comisiones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cliente", 4, align.Left),
		h("Inicio", 2, align.Center),
		h("Valor mensual", 2, align.Right),
		h("Tasa", 1, align.Center),
		h("Comisión", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

// tableDetailRows: una fila por comisión.
func tableDetailRows(list []dto.CommissionResponse) []core.Row {
	if len(list) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin comisiones registradas.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		))}
	}
	result := make([]core.Row, 0, len(list))
	for _, c := range list {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(c.ClientName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(c.StartDate.Format("02/01/2006"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money(c.MonthlyValue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(percent(c.Rate), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money(c.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(nonEmpty(statusLabels[c.Status], c.Status), props.Text{Size: 7, Align: align.Center, Top: 1})),
		))
	}
	return result
}

// trendRows: tendencia mensual en dos filas de seis meses.
func trendRows(points []dto.MonthPoint) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("TENDENCIA DE COMISIONES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for start := 0; start < len(points); start += 6 {
		end := min(start+6, len(points))
		cols := make([]core.Col, 0, 6)
		for _, p := range points[start:end] {
			cols = append(cols, col.New(2).Add(
				text.New(p.Label, props.Text{Size: 7, Align: align.Center, Color: colorGray}),
				text.New(money(p.Amount), props.Text{Size: 8, Align: align.Center, Top: 4}),
			))
		}
		rows = append(rows, row.New(10).Add(cols...))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea un valor en pesos sin decimales: 1234567 → "$1.234.567".
func money(d decimal.Decimal) string {
	s := d.StringFixed(0)
	if strings.HasPrefix(s, "-") {
		return "-$" + formatMoney(s[1:])
	}
	return "$" + formatMoney(s)
}

// percent 0.5 → "50%".
func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
