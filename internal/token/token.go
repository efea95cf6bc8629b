package token

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	// NonceLength es el largo del nonce aleatorio en caracteres.
	NonceLength = 32
	// TTL es la vida útil de un token emitido.
	TTL = 600 * time.Second

	nonceAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	separator     = "_"
)

// Token es un token de un solo uso con nonce aleatorio y marca de emisión.
// En el wire viaja como "<nonce>_<unix-ts>"; internamente se maneja
// estructurado para que el parseo quede confinado al borde.
type Token struct {
	Nonce    string
	IssuedAt time.Time
}

// Issue genera un token nuevo con nonce criptográficamente aleatorio.
func Issue(now time.Time) (Token, error) {
	nonce, err := randomNonce(NonceLength)
	if err != nil {
		return Token{}, err
	}
	return Token{Nonce: nonce, IssuedAt: now}, nil
}

// String serializa el token a su forma de wire.
func (t Token) String() string {
	return t.Nonce + separator + strconv.FormatInt(t.IssuedAt.Unix(), 10)
}

// Parse interpreta la forma de wire. El bool indica si era parseable;
// un token malformado nunca produce error.
func Parse(raw string) (Token, bool) {
	idx := strings.LastIndex(raw, separator)
	if idx < 0 {
		return Token{}, false
	}
	nonce := raw[:idx]
	ts, err := strconv.ParseInt(raw[idx+1:], 10, 64)
	if err != nil || nonce == "" {
		return Token{}, false
	}
	return Token{Nonce: nonce, IssuedAt: time.Unix(ts, 0)}, true
}

// Validate decide si un token presentado es válido contra el valor
// almacenado: debe existir, coincidir exactamente, parsear y no haber
// superado TTL desde su emisión. Nunca devuelve error.
func Validate(presented, stored string, now time.Time) bool {
	if stored == "" || presented != stored {
		return false
	}
	t, ok := Parse(presented)
	if !ok {
		return false
	}
	return now.Sub(t.IssuedAt) <= TTL
}

func randomNonce(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(nonceAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(nonceAlphabet[idx.Int64()])
	}
	return b.String(), nil
}
