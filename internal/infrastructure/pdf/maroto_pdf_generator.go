// Package pdf genera la werkbon (orden de trabajo) de un project para los installateurs.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Projectnaam + status │  Werkbon N° + datum          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KLANT: naam + klantnummer + contacto                        │
//	│  LOCATIE: straat / postcode / woonplaats + planning          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA TAKEN: Datum | Titel | Uitvoerder | Status            │
//	│  TABLA AFSPRAKEN: Datum | Titel | Notities                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con referencia del project + firma               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
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

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02-01-2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.WorkOrderGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
	now     func() time.Time
}

// NewMarotoPDFGenerator construye el generador. company aparece como autor y en el pie.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company, now: time.Now}
}

// GenerateWorkOrderPDF genera el PDF y devuelve sus bytes. p debe traer Customer,
// Tasks y Appointments cargados; Customer puede ser nil.
func (g *MarotoPDFGenerator) GenerateWorkOrderPDF(_ context.Context, p *entity.Project) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Werkbon project %d", p.ID), true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(p.Customer))
	m.AddRows(locationRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("TAKEN"))
	m.AddRows(tableHeaderRow([]string{"Datum", "Titel", "Uitvoerder", "Status"}, []int{2, 5, 3, 2}))
	m.AddRows(taskRows(p.Tasks)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("AFSPRAKEN"))
	m.AddRows(tableHeaderRow([]string{"Datum", "Titel", "Notities"}, []int{2, 4, 6}))
	m.AddRows(appointmentRows(p.Appointments)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(p, g.company))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: projectnaam + status (izq) y número de werkbon + fecha (der).
func headerRow(p *entity.Project, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Status: "+string(p.Status), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("WERKBON", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("PRJ-%05d", p.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Datum: "+now.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(c *entity.Customer) core.Row {
	name, contact := "—", ""
	if c != nil {
		name = c.FirstName + " " + c.LastName
		contact = fmt.Sprintf("Klantnummer: %s   |   Tel: %s   |   Email: %s",
			nonEmpty(c.CustomerNumber, "—"),
			nonEmpty(c.Phone, "—"),
			nonEmpty(c.Email, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("KLANT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// locationRow: dirección de la obra, planning e installateurs.
func locationRow(p *entity.Project) core.Row {
	address := nonEmpty(fmt.Sprintf("%s %s %s", p.Street, p.PostalCode, p.City), "—")
	return row.New(20).Add(
		col.New(6).Add(
			text.New("LOCATIE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(address, props.Text{Size: 9, Top: 6}),
			text.New(nonEmpty(p.Description, ""), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("PLANNING", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Start: %s   |   Eind: %s", formatDate(p.StartDate), formatDate(p.EndDate)),
				props.Text{Size: 9, Top: 6}),
			text.New("Installateurs: "+nonEmpty(p.Installers, "—"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func tableHeaderRow(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

// taskRows: una fila por taak.
func taskRows(tasks []*entity.Task) []core.Row {
	if len(tasks) == 0 {
		return []core.Row{emptyRow("Geen taken.")}
	}
	result := make([]core.Row, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(t.Date.Format(dateLayout), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(t.Title, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(t.Executor, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(t.Status), props.Text{Size: 8, Top: 1, Align: align.Center})),
		))
	}
	return result
}

// appointmentRows: una fila por afspraak; las notas largas se parten en líneas.
func appointmentRows(appointments []*entity.Appointment) []core.Row {
	if len(appointments) == 0 {
		return []core.Row{emptyRow("Geen afspraken.")}
	}
	result := make([]core.Row, 0, len(appointments))
	for _, a := range appointments {
		notes := splitEvery(a.Notes, 60)
		if len(notes) == 0 {
			notes = []string{"—"}
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(a.Date.Format(dateLayout), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(a.Title, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(notes[0], props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
		))
		for _, chunk := range notes[1:] {
			result = append(result, row.New(4).Add(
				col.New(6),
				col.New(6).Add(text.New(chunk, props.Text{Size: 8, Left: 1, Color: colorGray})),
			))
		}
	}
	return result
}

// footerRow: QR con la referencia del project y espacio para la firma del klant.
func footerRow(p *entity.Project, company string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(fmt.Sprintf("project:%d", p.ID), props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Handtekening klant:", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3,
			}),
			text.New("______________________________", props.Text{
				Size: 9, Top: 16, Left: 3, Color: colorGray,
			}),
			text.New(nonEmpty(company, ""), props.Text{
				Size: 7, Top: 30, Left: 3, Color: colorGray,
			}),
		),
	)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format(dateLayout)
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	var parts []string
	r := []rune(s)
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
