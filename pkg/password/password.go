// Package password hashea y verifica contraseñas.
//
// Los usuarios existentes guardan SHA-256 en hexadecimal; los hashes bcrypt se reconocen por su
// prefijo "$2", de modo que ambos esquemas conviven en la misma tabla.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Esquemas soportados.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// Hasher genera hashes con el esquema configurado y verifica cualquiera de los dos.
type Hasher struct {
	scheme string
	cost   int
}

// NewHasher construye un Hasher. Un esquema vacío equivale a sha256.
func NewHasher(scheme string) (*Hasher, error) {
	switch strings.ToLower(scheme) {
	case "", SchemeSHA256:
		return &Hasher{scheme: SchemeSHA256}, nil
	case SchemeBcrypt:
		return &Hasher{scheme: SchemeBcrypt, cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("password: esquema desconocido %q", scheme)
	}
}

// Scheme devuelve el esquema usado para hashes nuevos.
func (h *Hasher) Scheme() string { return h.scheme }

// Hash devuelve el hash de plain según el esquema configurado.
func (h *Hasher) Hash(plain string) (string, error) {
	if h.scheme == SchemeBcrypt {
		b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
		if err != nil {
			return "", fmt.Errorf("bcrypt: %w", err)
		}
		return string(b), nil
	}
	return SHA256Hex(plain), nil
}

// Verify compara plain contra un hash almacenado de cualquiera de los dos esquemas.
func (h *Hasher) Verify(hash, plain string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	}
	want := SHA256Hex(plain)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(hash)), []byte(want)) == 1
}

// SHA256Hex hash legado: SHA-256 del texto en hexadecimal minúscula.
func SHA256Hex(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
