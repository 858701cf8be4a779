// Package console is the interactive numbered menu over the gateway.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"shopdb/internal/domain"
	"shopdb/internal/output"
	"strconv"
	"strings"
)

// IGateway is the part of the application the menu drives.
type IGateway interface {
	Tables() []string
	Columns(table string) ([]string, error)
	Insert(ctx context.Context, table string, columns, values []string) error
	Select(ctx context.Context, table string, columns []string, condition string) ([]domain.Row, error)
	Find(ctx context.Context, table, column string, filter domain.Filter) ([]domain.Row, error)
	Update(ctx context.Context, table string, values map[string]string, condition string) (bool, error)
	Delete(ctx context.Context, table, condition string) (bool, error)
	CreateTable(ctx context.Context, name string, columns, dataTypes []string) error
	DropTable(ctx context.Context, name string) error
	GenerateRandomData(ctx context.Context, table string, columns, dataTypes, params []string, rowCount, textLen int) (int64, error)
	PaySystemsIncome(ctx context.Context, low, high string) ([]domain.PaySystemIncome, error)
	CompanyOrders(ctx context.Context, from, to string) ([]domain.CompanyOrders, error)
	TopOrders(ctx context.Context, company string) ([]domain.TopOrder, error)
}

var errQuit = errors.New("quit")

type Console struct {
	gw     IGateway
	out    output.IOutput
	in     *bufio.Scanner
	prompt io.Writer
}

// NewConsole reads answers from in and writes prompts to prompt.
func NewConsole(gw IGateway, out output.IOutput, in io.Reader, prompt io.Writer) *Console {
	return &Console{
		gw:     gw,
		out:    out,
		in:     bufio.NewScanner(in),
		prompt: prompt,
	}
}

// Run shows the menu until the operator quits, the input ends or ctx is cancelled.
// Failed operations are reported and the loop goes on.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.out.ShowMessage(fmt.Sprintf("\nAvailable tables: %s", strings.Join(c.gw.Tables(), ", ")))
		choice, err := c.menu("Menu:", mainMenu)
		if err != nil {
			return c.finish(err)
		}

		err = c.dispatch(ctx, choice)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, io.EOF):
			return c.finish(err)
		case err != nil:
			c.out.ShowError(err)
		}
	}
}

var mainMenu = []string{
	"1. Insert Data",
	"2. View Data",
	"3. Update Data",
	"4. Delete Data",
	"5. Create Table",
	"6. Drop Table",
	"7. Generate Random Data",
	"8. Find Data",
	"9. Reports",
	"0. Quit",
}

var reportMenu = []string{
	"1. Pay systems' total income",
	"2. Companies' orders through a period",
	"3. Top 5 orders of a company",
	"0. Back",
}

func (c *Console) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return c.insert(ctx)
	case "2":
		return c.view(ctx)
	case "3":
		return c.update(ctx)
	case "4":
		return c.delete(ctx)
	case "5":
		return c.createTable(ctx)
	case "6":
		return c.dropTable(ctx)
	case "7":
		return c.generate(ctx)
	case "8":
		return c.find(ctx)
	case "9":
		return c.reports(ctx)
	case "0":
		return errQuit
	default:
		c.out.ShowMessage("Invalid choice!")
		return nil
	}
}

func (c *Console) insert(ctx context.Context) error {
	table, err := c.ask("Enter table name: ")
	if err != nil {
		return err
	}
	columns, err := c.askFields("Enter columns separated by space: ")
	if err != nil {
		return err
	}
	values, err := c.askFields("Enter data separated by space: ")
	if err != nil {
		return err
	}
	if err := c.gw.Insert(ctx, table, columns, values); err != nil {
		return err
	}
	c.out.ShowMessage("Data inserted successfully!")
	return nil
}

func (c *Console) view(ctx context.Context) error {
	table, err := c.ask("Enter table name: ")
	if err != nil {
		return err
	}
	columns, err := c.askFields("Enter columns separated by space (empty for all): ")
	if err != nil {
		return err
	}
	condition, err := c.ask("Enter condition in postgres SQL (... WHERE [condition]). If not applicable leave empty: ")
	if err != nil {
		return err
	}
	rows, err := c.gw.Select(ctx, table, columns, condition)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		if columns, err = c.gw.Columns(table); err != nil {
			return err
		}
	}
	c.out.ShowRows(columns, rows)
	return nil
}

func (c *Console) update(ctx context.Context) error {
	table, err := c.ask("Enter table name: ")
	if err != nil {
		return err
	}
	columns, err := c.askFields("Enter columns separated by space: ")
	if err != nil {
		return err
	}
	values, err := c.askFields("Enter data separated by space: ")
	if err != nil {
		return err
	}
	if len(columns) != len(values) {
		return fmt.Errorf("%d columns, %d values: %w", len(columns), len(values), domain.ErrorValidation)
	}
	set := make(map[string]string, len(columns))
	for i, column := range columns {
		set[column] = values[i]
	}
	condition, err := c.ask("Enter condition in postgres SQL (... WHERE [condition]). If not applicable leave empty: ")
	if err != nil {
		return err
	}
	ok, err := c.gw.Update(ctx, table, set, condition)
	if err != nil {
		return err
	}
	if !ok {
		c.out.ShowMessage("No row matched the condition.")
		return nil
	}
	c.out.ShowMessage("Data updated successfully!")
	return nil
}

func (c *Console) delete(ctx context.Context) error {
	table, err := c.ask("Enter table name: ")
	if err != nil {
		return err
	}
	condition, err := c.ask("Enter condition in postgres SQL (... WHERE [condition]). Can not be empty: ")
	if err != nil {
		return err
	}
	ok, err := c.gw.Delete(ctx, table, condition)
	if err != nil {
		return err
	}
	if !ok {
		c.out.ShowMessage("No row matched the condition.")
		return nil
	}
	c.out.ShowMessage("Data deleted successfully!")
	return nil
}

func (c *Console) createTable(ctx context.Context) error {
	table, err := c.ask("Enter table name: ")
	if err != nil {
		return err
	}
	columns, err := c.askFields("Enter columns separated by space: ")
	if err != nil {
		return err
	}
	dataTypes, err := c.askFields("Enter data types separated by space: ")
	if err != nil {
		return err
	}
	if err := c.gw.CreateTable(ctx, table, columns, dataTypes); err != nil {
		return err
	}
	c.out.ShowMessage("Table created successfully!")
	return nil
}

func (c *Console) dropTable(ctx context.Context) error {
	table, err := c.ask("Enter table name: ")
	if err != nil {
		return err
	}
	if err := c.gw.DropTable(ctx, table); err != nil {
		return err
	}
	c.out.ShowMessage("Table dropped successfully!")
	return nil
}

func (c *Console) generate(ctx context.Context) error {
	table, err := c.ask("Enter table name: ")
	if err != nil {
		return err
	}
	columns, err := c.askFields("Enter columns separated by space: ")
	if err != nil {
		return err
	}
	dataTypes, err := c.askFields("Enter data types separated by space: ")
	if err != nil {
		return err
	}
	params, err := c.askFields("Enter parameters separated by space (min,max or - for none): ")
	if err != nil {
		return err
	}
	rowCount, err := c.askInt("Enter number of rows: ", -1)
	if err != nil {
		return err
	}
	textLen, err := c.askInt("Enter length of text columns: ", 0)
	if err != nil {
		return err
	}
	n, err := c.gw.GenerateRandomData(ctx, table, columns, dataTypes, params, rowCount, textLen)
	if err != nil {
		return err
	}
	c.out.ShowMessage(fmt.Sprintf("Random data generated successfully! (%d rows)", n))
	return nil
}

func (c *Console) find(ctx context.Context) error {
	table, err := c.ask("Enter table name: ")
	if err != nil {
		return err
	}
	column, err := c.ask("Enter column name: ")
	if err != nil {
		return err
	}
	kind, err := c.ask("Enter search type (number, string, boolean, date): ")
	if err != nil {
		return err
	}
	filter := domain.Filter{Kind: domain.FilterKind(strings.ToLower(kind))}
	switch filter.Kind {
	case domain.NumberFilter:
		if filter.Low, filter.High, err = c.askRange("Enter left bound: ", "Enter right bound: "); err != nil {
			return err
		}
	case domain.DateFilter:
		if filter.Low, filter.High, err = c.askRange("Enter left bound (YYYY-MM-DD): ", "Enter right bound (YYYY-MM-DD): "); err != nil {
			return err
		}
	case domain.StringFilter:
		if filter.Value, err = c.ask("Enter substring: "); err != nil {
			return err
		}
	case domain.BooleanFilter:
		if filter.Value, err = c.ask("Enter boolean value (true, false): "); err != nil {
			return err
		}
	}
	rows, err := c.gw.Find(ctx, table, column, filter)
	if err != nil {
		return err
	}
	c.out.ShowRows([]string{column}, rows)
	return nil
}

func (c *Console) reports(ctx context.Context) error {
	choice, err := c.menu("Reports:", reportMenu)
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		low, high, err := c.askRange("Enter left bound (starting number): ", "Enter right bound (last number): ")
		if err != nil {
			return err
		}
		res, err := c.gw.PaySystemsIncome(ctx, low, high)
		if err != nil {
			return err
		}
		c.out.ShowRows(output.PaySystemsIncomeRows(res))
	case "2":
		from, to, err := c.askRange("Enter left bound (starting date YYYY-MM-DD): ", "Enter right bound (last date YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		res, err := c.gw.CompanyOrders(ctx, from, to)
		if err != nil {
			return err
		}
		c.out.ShowRows(output.CompanyOrdersRows(res))
	case "3":
		company, err := c.ask("Enter company name: ")
		if err != nil {
			return err
		}
		res, err := c.gw.TopOrders(ctx, company)
		if err != nil {
			return err
		}
		c.out.ShowRows(output.TopOrdersRows(res))
	case "0":
	default:
		c.out.ShowMessage("Invalid choice!")
	}
	return nil
}

func (c *Console) menu(title string, items []string) (string, error) {
	c.out.ShowMessage("\n" + title)
	for _, item := range items {
		c.out.ShowMessage(item)
	}
	return c.ask("Enter your choice: ")
}

func (c *Console) ask(question string) (string, error) {
	fmt.Fprint(c.prompt, question)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) askFields(question string) ([]string, error) {
	answer, err := c.ask(question)
	if err != nil {
		return nil, err
	}
	return strings.Fields(answer), nil
}

func (c *Console) askRange(lowQuestion, highQuestion string) (string, string, error) {
	low, err := c.ask(lowQuestion)
	if err != nil {
		return "", "", err
	}
	high, err := c.ask(highQuestion)
	if err != nil {
		return "", "", err
	}
	return low, high, nil
}

// askInt parses a whole number; an empty answer gives def.
func (c *Console) askInt(question string, def int) (int, error) {
	answer, err := c.ask(question)
	if err != nil {
		return 0, err
	}
	if answer == "" {
		return def, nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number: %w", answer, domain.ErrorInvalidArgument)
	}
	return n, nil
}

func (c *Console) finish(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
