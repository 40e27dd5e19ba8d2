package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldASCII(t *testing.T) {
	assert.Equal(t, "Perez Nunez", FoldASCII("Pérez Núñez"))
	assert.Equal(t, "Validacion de Cliente", FoldASCII("Validación de Cliente"))
}

func TestSuggestUsername(t *testing.T) {
	cases := []struct {
		name, email, want string
	}{
		{"Juan Pérez", "", "jperez"},
		{"Juan Pérez", "juan.perez@acme.co", "juan.perez"},
		{"María José Gómez", "", "mgomez"},
		{"Ñandú", "", "nandu"},
		{"", "@sinlocal.com", ""},
		{"  ", "", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SuggestUsername(c.name, c.email), "%q / %q", c.name, c.email)
	}
}
