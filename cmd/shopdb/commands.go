package main

import (
	"context"
	"fmt"
	"os"
	"shopdb/internal/console"
	"shopdb/internal/domain"
	"shopdb/internal/output"
	"sort"

	"go.uber.org/zap"
)

type ConsoleCmd struct{}

func (c *ConsoleCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if port := s.cfg.Service.MetricsPort; port != 0 {
		go func() {
			if err := s.app.Metrics.Serve(ctx, port); err != nil {
				s.logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
		s.logger.Info("serving metrics", zap.Uint16("port", port))
	}
	return console.NewConsole(s.app.Gateway, out, os.Stdin, os.Stdout).Run(ctx)
}

type TablesCmd struct{}

func (c *TablesCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	tables := s.app.Gateway.Tables()
	rows := make([]domain.Row, 0, len(tables))
	for _, t := range tables {
		rows = append(rows, domain.Row{t})
	}
	out.ShowRows([]string{"table"}, rows)
	return nil
}

type InsertCmd struct {
	Table string            `arg:"" help:"Registry table, e.g. tbl_client"`
	Set   map[string]string `short:"s" mapsep:"none" required:"" help:"column=value, repeatable"`
}

func (c *InsertCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	columns, values := splitAssignments(c.Set)
	if err := s.app.Gateway.Insert(ctx, c.Table, columns, values); err != nil {
		return err
	}
	out.ShowMessage("Data inserted successfully!")
	return nil
}

type SelectCmd struct {
	Table   string   `arg:"" help:"Registry table"`
	Columns []string `short:"c" help:"Columns to show, comma separated (default all)"`
	Where   string   `short:"w" help:"Raw SQL condition, used verbatim"`
}

func (c *SelectCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	rows, err := s.app.Gateway.Select(ctx, c.Table, c.Columns, c.Where)
	if err != nil {
		return err
	}
	headers := c.Columns
	if len(headers) == 0 {
		if headers, err = s.app.Gateway.Columns(c.Table); err != nil {
			return err
		}
	}
	out.ShowRows(headers, rows)
	return nil
}

type FindCmd struct {
	Table  string `arg:"" help:"Registry table"`
	Column string `arg:"" help:"Column to search"`
	Kind   string `name:"type" short:"t" required:"" enum:"number,string,boolean,date" help:"Search type: number, string, boolean or date"`
	Low    string `help:"Lower bound for number and date searches"`
	High   string `help:"Upper bound for number and date searches"`
	Value  string `help:"Substring for string searches, true/false for boolean"`
}

func (c *FindCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	rows, err := s.app.Gateway.Find(ctx, c.Table, c.Column, c.filter())
	if err != nil {
		return err
	}
	out.ShowRows([]string{c.Column}, rows)
	return nil
}

func (c *FindCmd) filter() domain.Filter {
	return domain.Filter{Kind: domain.FilterKind(c.Kind), Low: c.Low, High: c.High, Value: c.Value}
}

type UpdateCmd struct {
	Table string            `arg:"" help:"Registry table"`
	Set   map[string]string `short:"s" mapsep:"none" required:"" help:"column=value, repeatable"`
	Where string            `short:"w" help:"Raw SQL condition; empty updates the first row of the table"`
}

func (c *UpdateCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	ok, err := s.app.Gateway.Update(ctx, c.Table, c.Set, c.Where)
	if err != nil {
		return err
	}
	if !ok {
		out.ShowMessage("No row matched the condition.")
		return nil
	}
	out.ShowMessage("Data updated successfully!")
	return nil
}

type DeleteCmd struct {
	Table string `arg:"" help:"Registry table"`
	Where string `short:"w" help:"Raw SQL condition, must not be empty"`
}

func (c *DeleteCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	ok, err := s.app.Gateway.Delete(ctx, c.Table, c.Where)
	if err != nil {
		return err
	}
	if !ok {
		out.ShowMessage("No row matched the condition.")
		return nil
	}
	out.ShowMessage("Data deleted successfully!")
	return nil
}

type CreateTableCmd struct {
	Name    string   `arg:"" help:"Table name"`
	Columns []string `name:"column" sep:"none" required:"" help:"Column name, repeatable"`
	Types   []string `name:"type" sep:"none" required:"" help:"SQL type of the matching --column, repeatable"`
}

func (c *CreateTableCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.app.Gateway.CreateTable(ctx, c.Name, c.Columns, c.Types); err != nil {
		return err
	}
	out.ShowMessage("Table created successfully!")
	return nil
}

type DropTableCmd struct {
	Name string `arg:"" help:"Table name"`
}

func (c *DropTableCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.app.Gateway.DropTable(ctx, c.Name); err != nil {
		return err
	}
	out.ShowMessage("Table dropped successfully!")
	return nil
}

type GenerateCmd struct {
	Table   string   `arg:"" help:"Registry table"`
	Columns []string `required:"" help:"Columns to fill, comma separated"`
	Types   []string `required:"" help:"Data type per column: int, float, bool, text, array_text, date, time, timestamp, fk_int"`
	Params  []string `name:"param" sep:"none" help:"low,high (or parent_table,parent_column for fk_int, - for none) per column, repeatable"`
	Rows    int      `short:"n" default:"100" help:"Number of rows"`
	TextLen int      `name:"text-len" default:"8" help:"Length of generated text values"`
}

func (c *GenerateCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.app.Gateway.GenerateRandomData(ctx, c.Table, c.Columns, c.Types, c.Params, c.Rows, c.TextLen)
	if err != nil {
		return err
	}
	out.ShowMessage(fmt.Sprintf("Random data generated successfully! (%d rows)", n))
	return nil
}

type ReportGroup struct {
	PaySystems PaySystemsReportCmd `cmd:"" name:"pay-systems" help:"Income per pay system for orders with a sum in range"`
	Companies  CompaniesReportCmd  `cmd:"" help:"Orders per company within a date range"`
	TopOrders  TopOrdersReportCmd  `cmd:"" name:"top-orders" help:"Five largest orders of a company"`
}

type PaySystemsReportCmd struct {
	Low  string `arg:"" help:"Lowest order sum"`
	High string `arg:"" help:"Highest order sum"`
}

func (c *PaySystemsReportCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.app.Gateway.PaySystemsIncome(ctx, c.Low, c.High)
	if err != nil {
		return err
	}
	out.ShowRows(output.PaySystemsIncomeRows(res))
	return nil
}

type CompaniesReportCmd struct {
	From string `arg:"" help:"First date, YYYY-MM-DD"`
	To   string `arg:"" help:"Last date, YYYY-MM-DD"`
}

func (c *CompaniesReportCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.app.Gateway.CompanyOrders(ctx, c.From, c.To)
	if err != nil {
		return err
	}
	out.ShowRows(output.CompanyOrdersRows(res))
	return nil
}

type TopOrdersReportCmd struct {
	Company string `arg:"" help:"Company name"`
}

func (c *TopOrdersReportCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.app.Gateway.TopOrders(ctx, c.Company)
	if err != nil {
		return err
	}
	out.ShowRows(output.TopOrdersRows(res))
	return nil
}

type SchemaGroup struct {
	Init  SchemaInitCmd  `cmd:"" help:"Create the gender enum and the five shop tables"`
	Drop  SchemaDropCmd  `cmd:"" help:"Drop the shop tables and the gender enum"`
	Check SchemaCheckCmd `cmd:"" help:"Verify that all shop tables exist"`
}

type SchemaInitCmd struct{}

func (c *SchemaInitCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.app.Schema.Start(ctx); err != nil {
		return err
	}
	out.ShowMessage("Schema created.")
	return nil
}

type SchemaDropCmd struct{}

func (c *SchemaDropCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.app.Schema.Drop(ctx); err != nil {
		return err
	}
	out.ShowMessage("Schema dropped.")
	return nil
}

type SchemaCheckCmd struct{}

func (c *SchemaCheckCmd) Run(ctx context.Context, g *Globals, out output.IOutput) error {
	s, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.app.Schema.Check(ctx); err != nil {
		return err
	}
	out.ShowMessage("All shop tables are present.")
	return nil
}

// splitAssignments orders column=value pairs by column name.
func splitAssignments(set map[string]string) ([]string, []string) {
	columns := make([]string, 0, len(set))
	for column := range set {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	values := make([]string, 0, len(columns))
	for _, column := range columns {
		values = append(values, set[column])
	}
	return columns, values
}
