package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/infrastructure/excel"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// columnas esperadas en la fila de encabezado
var importHeader = []string{"nombre", "empresa", "email", "telefono", "cargo", "industria", "notas"}

// readRows devuelve todas las filas (encabezado incluido) de un .xlsx o .csv.
// El CSV se decodifica desde ISO-8859-1 salvo que encoding sea "utf8".
func readRows(name string, r io.Reader, encoding string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return excel.ReadFirstSheet(r)
	case ".csv":
		if !strings.EqualFold(encoding, "utf8") && !strings.EqualFold(encoding, "utf-8") {
			r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
		}
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("formato no soportado %q (use .xlsx o .csv)", filepath.Ext(name))
	}
}

// parsedRow contacto leído con su número de fila en el archivo (1 = encabezado).
type parsedRow struct {
	Line    int
	Contact dto.ContactRequest
}

// parseRows mapea las filas por nombre de columna. Devuelve los contactos y las líneas sin nombre.
func parseRows(rows [][]string) ([]parsedRow, []int, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("archivo vacío")
	}
	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[normalizeHeader(h)] = i
	}
	if _, ok := idx["nombre"]; !ok {
		return nil, nil, fmt.Errorf("falta la columna obligatoria \"nombre\" (encabezado esperado: %s)", strings.Join(importHeader, ","))
	}
	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		out     []parsedRow
		skipped []int
	)
	for n, row := range rows[1:] {
		line := n + 2
		name := get(row, "nombre")
		if name == "" {
			skipped = append(skipped, line)
			continue
		}
		out = append(out, parsedRow{Line: line, Contact: dto.ContactRequest{
			Name:     name,
			Company:  get(row, "empresa"),
			Email:    get(row, "email"),
			Phone:    get(row, "telefono"),
			Position: get(row, "cargo"),
			Industry: get(row, "industria"),
			Notes:    get(row, "notas"),
		}})
	}
	return out, skipped, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	r := strings.NewReplacer("é", "e", "í", "i", "ó", "o", "á", "a", "ú", "u")
	return r.Replace(h)
}
