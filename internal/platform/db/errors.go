package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"fitness_backend/internal/shared/validation"
)

// PostgreSQL SQLSTATE codes handled by TranslateError.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

// TranslateError converts driver errors into application errors.
// A CHECK violation means a value slipped past input validation, so it is
// reported as a validation failure on the constrained column.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeCheckViolation:
			field := pgErr.ColumnName
			if field == "" {
				field = pgErr.ConstraintName
			}
			return checkViolation(field, pgErr.ConstraintName)
		case codeUniqueViolation:
			return errors.Join(ErrDuplicate, err)
		}
		return err
	}

	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		switch sqErr.ExtendedCode {
		case sqlite3.ErrConstraintCheck:
			// "CHECK constraint failed: chk_name"
			name := sqErr.Error()
			if i := strings.LastIndex(name, ": "); i >= 0 {
				name = name[i+2:]
			}
			return checkViolation(name, name)
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return errors.Join(ErrDuplicate, err)
		}
	}
	return err
}

func checkViolation(field, constraint string) error {
	return validation.New(field, "violates constraint "+constraint)
}
