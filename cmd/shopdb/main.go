// Command shopdb is the operator console for the shop database: CRUD over the registry tables,
// synthetic data generation and the three reports.
package main

import (
	"context"
	"os"
	"os/signal"
	"shopdb/internal/output"
	render "shopdb/internal/output/console"
	"syscall"

	"github.com/alecthomas/kong"
)

// Commands is the command tree; every command resolves its own connection from Globals.
type Commands struct {
	Globals

	Console     ConsoleCmd     `cmd:"" default:"1" help:"Interactive menu (default)"`
	Tables      TablesCmd      `cmd:"" help:"List the registry tables"`
	Insert      InsertCmd      `cmd:"" help:"Insert one row"`
	Select      SelectCmd      `cmd:"" help:"Select rows with an optional raw SQL condition"`
	Find        FindCmd        `cmd:"" help:"Search one column by a typed filter"`
	Update      UpdateCmd      `cmd:"" help:"Update the first row matching a condition"`
	Delete      DeleteCmd      `cmd:"" help:"Delete the first row matching a condition"`
	CreateTable CreateTableCmd `cmd:"" name:"create-table" help:"Create a table if it does not exist"`
	DropTable   DropTableCmd   `cmd:"" name:"drop-table" help:"Drop a table if it exists"`
	Generate    GenerateCmd    `cmd:"" help:"Insert random rows in one statement"`
	Report      ReportGroup    `cmd:"" help:"Reports over orders"`
	Schema      SchemaGroup    `cmd:"" help:"Create, drop or check the shop tables"`
}

var CLI Commands

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx := kong.Parse(&CLI,
		kong.Name("shopdb"),
		kong.Description("CRUD console for the shop PostgreSQL schema"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(render.NewOutput(os.Stdout), (*output.IOutput)(nil)),
	)
	err := kctx.Run(&CLI.Globals)
	kctx.FatalIfErrorf(err)
}
