package shopdb

import (
	"shopdb/internal/schema"
	"shopdb/internal/schema/pg"

	"github.com/jmoiron/sqlx"
)

func GetSchemaGenerator(db *sqlx.DB, registry *schema.Registry) schema.ISchemaGenerator {
	return pg.NewSchemaGenerator(db, registry)
}
