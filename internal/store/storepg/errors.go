package storepg

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"shopdb/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	integrityViolationClass  = "23"
	connectionExceptionClass = "08"
	dataExceptionClass       = "22"
)

// classify tags driver errors with the domain error kinds, keeping the driver error as cause.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyCode(string(pqErr.Code), err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyCode(pgErr.Code, err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", domain.ErrorConnection, err)
	}
	return err
}

func classifyCode(code string, err error) error {
	if len(code) < 2 {
		return err
	}
	switch code[:2] {
	case integrityViolationClass:
		return fmt.Errorf("%w: %w", domain.ErrorConstraint, err)
	case connectionExceptionClass:
		return fmt.Errorf("%w: %w", domain.ErrorConnection, err)
	case dataExceptionClass:
		return fmt.Errorf("%w: %w", domain.ErrorTypeCoercion, err)
	}
	return err
}
