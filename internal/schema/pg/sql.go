package pg

const (
	CreateEnumQuery = `
	do $$ begin
	    create type %s as enum (%s);
	exception
	    when duplicate_object then null;
	end $$
`
	DropEnumQuery = `
	drop type if exists %s
`
)

const (
	CreateTableQuery = `
	create table if not exists %s (
	    %s
	)
`
	DropTableQuery = `
	drop table if exists %s
`
)
