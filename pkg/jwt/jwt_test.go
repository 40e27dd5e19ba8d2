package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	in := Identity{UserID: 7, Username: "socio1", Role: "partner", PartnerID: 3}

	tok, err := Generate(secret, "bcs-blackbox", 5, in)
	require.NoError(t, err)

	out, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate(secret, "bcs-blackbox", 5, Identity{UserID: 1, Role: "admin"})
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate(secret, "bcs-blackbox", -1, Identity{UserID: 1, Role: "admin"})
	require.NoError(t, err)

	_, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "x", 5, Identity{UserID: 1})
	assert.Error(t, err)
}
