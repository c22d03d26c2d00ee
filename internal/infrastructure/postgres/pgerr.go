package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que los repositorios traducen a errores de dominio.
const codeUniqueViolation = "23505"

// pgCode extrae el código SQLSTATE de un error de pgx, o "" si no lo hay.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation reporta si el error es una violación de constraint único.
// Las referencias de movimientos y traslados dependen de esto para la
// idempotencia: la colisión se traduce a ErrDuplicateReference.
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}
