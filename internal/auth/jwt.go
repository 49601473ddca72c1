package auth

import (
	"errors"
	"fmt"
	"time"

	"hamburgueseria-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UsuarioID  uuid.UUID  `json:"id"`
	Usuario    string     `json:"usuario"`
	Nombre     string     `json:"nombre"`
	Rol        models.Rol `json:"rol"`
	SucursalID uuid.UUID  `json:"sucursal"`
	jwt.RegisteredClaims
}

// GenerateToken firma un JWT HS256 con los datos del usuario.
// expiresHrs viene de la configuración (24h por defecto).
func GenerateToken(secret string, expiresHrs int, u *models.Usuario) (string, error) {
	claims := &Claims{
		UsuarioID:  u.ID,
		Usuario:    u.Usuario,
		Nombre:     u.Nombre,
		Rol:        u.Rol,
		SucursalID: u.SucursalID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresHrs) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ErrTokenExpirado distingue la expiración del resto de fallas de
// verificación; ambas terminan en 401 pero con mensajes distintos.
var ErrTokenExpirado = errors.New("token expirado")

func ParseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpirado
		}
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}
