// Package pdf implementa la generación del presupuesto comercial en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Marca + Modelo              │  PRESUPUESTO + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRECIO CONTADO / ANTICIPO                                   │
//	│  TABLA: Planes de cuotas (cuotas | monto)                    │
//	│  BONIFICACIONES + Especificaciones técnicas                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Validez de la oferta                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
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

	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/application/usecase"
	"github.com/alluma/crm-api/internal/domain/entity"
)

var _ usecase.QuotePDFGenerator = (*MarotoQuoteGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 180, Green: 30, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// cuotaPlan es una entrada del JSON planes_cuotas de la plantilla.
type cuotaPlan struct {
	Cuotas int         `json:"cuotas"`
	Monto  json.Number `json:"monto"`
	Notas  string      `json:"notas"`
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoQuoteGenerator implementa usecase.QuotePDFGenerator usando Maroto v2.
type MarotoQuoteGenerator struct{}

// NewMarotoQuoteGenerator construye el generador.
func NewMarotoQuoteGenerator() *MarotoQuoteGenerator { return &MarotoQuoteGenerator{} }

// GenerateQuotePDF genera el PDF del presupuesto y devuelve sus bytes.
func (g *MarotoQuoteGenerator) GenerateQuotePDF(
	_ context.Context,
	t *entity.QuoteTemplate,
	in dto.QuotePDFRequest,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Presupuesto "+t.Marca+" "+t.Modelo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(preciosRow(t))

	// Planes de cuotas
	if planes := parsePlanes(t.PlanesCuotas); len(planes) > 0 {
		m.AddRows(planesHeaderRow())
		for _, r := range planesRows(planes) {
			m.AddRows(r)
		}
	}

	if t.Bonificaciones != "" {
		m.AddRows(textBlockRows("BONIFICACIONES", t.Bonificaciones)...)
	}
	if t.Especificaciones != "" {
		m.AddRows(textBlockRows("ESPECIFICACIONES TÉCNICAS", t.Especificaciones)...)
	}

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(
			"Presupuesto sujeto a modificación sin previo aviso. "+
				"Precios válidos por 7 días desde la fecha de emisión.",
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

// headerRow: marca y modelo (izq), rótulo y fecha (der).
func headerRow(t *entity.QuoteTemplate) core.Row {
	fecha := time.Now().Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(t.Marca, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(t.Modelo, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("PRESUPUESTO", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos del cliente destinatario.
func clienteRow(in dto.QuotePDFRequest) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(in.Cliente, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s",
				nonEmpty(in.Telefono, "—"),
				nonEmpty(in.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// preciosRow: precio de contado y anticipo sugerido.
func preciosRow(t *entity.QuoteTemplate) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("PRECIO CONTADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
			text.New("$"+formatMoney(t.PrecioContado.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 7,
			}),
		),
		col.New(6).Add(
			text.New("ANTICIPO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
			text.New("$"+formatMoney(t.Anticipo.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

// planesHeaderRow: cabecera de la tabla de planes.
func planesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cuotas", 3, align.Center),
		h("Monto por cuota", 4, align.Right),
		h("Observaciones", 5, align.Left),
	)
}

// planesRows: una fila por plan de financiación.
func planesRows(planes []cuotaPlan) []core.Row {
	result := make([]core.Row, 0, len(planes))
	for _, p := range planes {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				fmt.Sprintf("%d", p.Cuotas),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				"$"+formatMoney(p.Monto.String()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(5).Add(text.New(
				p.Notas,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// textBlockRows: título + párrafo multilínea.
func textBlockRows(title, body string) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	for _, ln := range strings.Split(body, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(ln, props.Text{Size: 8, Top: 1, Left: 1}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// parsePlanes decodifica el JSON de planes. Un JSON inválido o vacío
// simplemente omite la tabla, no aborta el presupuesto.
func parsePlanes(raw string) []cuotaPlan {
	if raw == "" {
		return nil
	}
	var planes []cuotaPlan
	if err := json.Unmarshal([]byte(raw), &planes); err != nil {
		return nil
	}
	return planes
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
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
