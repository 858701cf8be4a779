package storepg

import (
	"context"
	"shopdb/internal/schema/pg"
)

func (s *Storage) CreateTable(ctx context.Context, table string, columns, dataTypes []string) error {
	g, err := pg.NewTableGenerator(s.db, table)
	if err != nil {
		return err
	}
	return classify(g.Create(ctx, columns, dataTypes))
}

func (s *Storage) DropTable(ctx context.Context, table string) error {
	g, err := pg.NewTableGenerator(s.db, table)
	if err != nil {
		return err
	}
	return classify(g.Drop(ctx))
}
