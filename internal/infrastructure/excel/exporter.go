// Package excel exporta listados del CRM a .xlsx y lee hojas para la importación masiva.
package excel

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
)

// ContactHeader columnas de la exportación de contactos.
var ContactHeader = []string{
	"Nombre", "Empresa", "Email", "Teléfono", "Cargo", "Industria", "Estado", "Etapa", "Fecha validación", "Creado",
}

// LeadHeader columnas de la exportación de leads.
var LeadHeader = []string{
	"Empresa", "Contacto", "Email", "Teléfono", "Industria", "Tamaño", "Origen", "Estado", "Último contacto", "Creado",
}

var stateLabels = map[string]string{
	"unvalidated": "Sin validar",
	"validated":   "Validado",
	"converted":   "Convertido",
}

// Exporter implementa ports.SpreadsheetExporter con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportContacts genera el .xlsx de contactos.
func (e *Exporter) ExportContacts(contacts []dto.ContactResponse) ([]byte, error) {
	rows := make([][]any, 0, len(contacts))
	for _, c := range contacts {
		validated := ""
		if c.ValidationDate != nil {
			validated = c.ValidationDate.Format("2006-01-02")
		}
		rows = append(rows, []any{
			c.Name, c.Company, c.Email, c.Phone, c.Position, c.Industry, c.Status,
			stateLabels[c.State], validated, c.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return writeSheet("Contactos", ContactHeader, []float64{25, 25, 28, 15, 18, 18, 10, 14, 16, 20}, rows)
}

// ExportLeads genera el .xlsx de leads.
func (e *Exporter) ExportLeads(leads []dto.LeadResponse) ([]byte, error) {
	rows := make([][]any, 0, len(leads))
	for _, l := range leads {
		last := ""
		if l.LastContact != nil {
			last = l.LastContact.Format("2006-01-02")
		}
		rows = append(rows, []any{
			l.CompanyName, l.ContactName, l.ContactEmail, l.ContactPhone, l.Industry, l.CompanySize,
			l.Source, l.Status, last, l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return writeSheet("Leads", LeadHeader, []float64{25, 22, 28, 15, 18, 12, 14, 12, 16, 20}, rows)
}

// writeSheet escribe una hoja con cabecera con estilo, anchos de columna y panel congelado.
func writeSheet(sheetName string, headers []string, widths []float64, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo necesita el archivo abierto: se cierra al final o ante error

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: eliminar hoja por defecto: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: coordenadas: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: cabecera %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: estilo %s: %w", cell, err)
		}
		if i < len(widths) {
			colName, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("excel: columna: %w", err)
			}
			if err := f.SetColWidth(sheetName, colName, colName, widths[i]); err != nil {
				f.Close()
				return nil, fmt.Errorf("excel: ancho de columna: %w", err)
			}
		}
	}

	for r, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: coordenadas: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: fila %d: %w", r+2, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: congelar cabecera: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("excel: cerrar: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadFirstSheet devuelve las filas de la primera hoja de un .xlsx.
func ReadFirstSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel: el archivo no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excel: leer %s: %w", sheets[0], err)
	}
	return rows, nil
}
