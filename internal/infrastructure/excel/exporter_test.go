package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportContacts_CabeceraYFilas(t *testing.T) {
	validated := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	data, err := NewExporter().ExportContacts([]dto.ContactResponse{
		{Name: "Juan Pérez", Company: "JP Ltda", Status: "active", State: "validated", ValidationDate: &validated,
			CreatedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)},
		{Name: "Ana", Status: "inactive", State: "unvalidated"},
	})
	require.NoError(t, err)

	rows, err := ReadFirstSheet(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ContactHeader, rows[0])
	assert.Equal(t, "Juan Pérez", rows[1][0])
	assert.Equal(t, "Validado", rows[1][7])
	assert.Equal(t, "2026-02-01", rows[1][8])
	assert.Equal(t, "Sin validar", rows[2][7])
}

func TestExportLeads_SoloCabecera(t *testing.T) {
	data, err := NewExporter().ExportLeads(nil)
	require.NoError(t, err)

	rows, err := ReadFirstSheet(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, LeadHeader, rows[0])
}

func TestReadFirstSheet_ArchivoInvalido(t *testing.T) {
	_, err := ReadFirstSheet(bytes.NewReader([]byte("no es xlsx")))
	assert.Error(t, err)
}
