package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errEmptySecret = errors.New("jwt: secret vacío")

// Claims incluye los claims estándar JWT más los campos propios de la
// aplicación. Role permite al middleware RBAC decidir sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	FarmID string `json:"farm_id"`
	Role   string `json:"role"` // "admin" | "operador" | "lector"
}

// Generate genera un token HS256 firmado que incluye userID, farmID y role.
func Generate(secret, userID, farmID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", errEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		FarmID: farmID,
		Role:   role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y expiración, y devuelve los claims del token.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("jwt: token inválido")
	}
	return &claims, nil
}
