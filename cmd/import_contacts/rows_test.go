package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadRows_CSVLatin1(t *testing.T) {
	src := "nombre,empresa,email,telefono,cargo,industria,notas\nJuan Pérez,Acme,juan@acme.co,300,Gerente,Logística,\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	rows, err := readRows("contactos.csv", strings.NewReader(encoded), "latin1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Juan Pérez", rows[1][0])
	assert.Equal(t, "Logística", rows[1][5])
}

func TestReadRows_FormatoNoSoportado(t *testing.T) {
	_, err := readRows("contactos.txt", bytes.NewReader(nil), "")
	assert.Error(t, err)
}

func TestParseRows_OmiteFilasSinNombre(t *testing.T) {
	rows := [][]string{
		{"Nombre", "Email", "Teléfono"},
		{"Ana", "ana@x.co", "123"},
		{"", "sin@nombre.co", ""},
		{"Luis"},
	}
	out, skipped, err := parseRows(rows)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "Ana", out[0].Contact.Name)
	assert.Equal(t, "123", out[0].Contact.Phone)
	assert.Equal(t, 2, out[0].Line)
	assert.Equal(t, "Luis", out[1].Contact.Name)
	assert.Empty(t, out[1].Contact.Email)
	assert.Equal(t, []int{3}, skipped)
}

func TestParseRows_SinColumnaNombre(t *testing.T) {
	_, _, err := parseRows([][]string{{"empresa", "email"}})
	assert.Error(t, err)

	_, _, err = parseRows(nil)
	assert.Error(t, err)
}
