package schema

import "context"

type ISchemaGenerator interface {
	GenerateTypes(ctx context.Context) error
	GenerateSchema(ctx context.Context) error
	Start(ctx context.Context) error
	Drop(ctx context.Context) error
	Check(ctx context.Context) error
}
