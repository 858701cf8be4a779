package console

import (
	"fmt"
	"io"
	"shopdb/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const nullText = "NULL"

var (
	borderColor = lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#475569"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8B5CF6")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	nullStyle = cellStyle.
			Foreground(mutedColor).
			Italic(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// Output renders results as bordered tables on a writer, usually stdout.
type Output struct {
	w io.Writer
}

func NewOutput(w io.Writer) *Output {
	return &Output{w: w}
}

func (o *Output) ShowMessage(msg string) {
	fmt.Fprintln(o.w, messageStyle.Render(msg))
}

func (o *Output) ShowError(err error) {
	fmt.Fprintln(o.w, errorStyle.Render("error: "+err.Error()))
}

func (o *Output) ShowRows(headers []string, rows []domain.Row) {
	if len(rows) == 0 {
		o.ShowMessage("no rows")
		return
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := make([]string, 0, len(r))
		for _, v := range r {
			line = append(line, FormatValue(v))
		}
		cells = append(cells, line)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(cells) && col < len(cells[row]) && cells[row][col] == nullText {
				return nullStyle
			}
			return cellStyle
		})
	fmt.Fprintln(o.w, t.Render())
	fmt.Fprintln(o.w, lipgloss.NewStyle().Foreground(mutedColor).Render(fmt.Sprintf("(%d rows)", len(rows))))
}

// FormatValue renders one cell the way psql would show it.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return nullText
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case decimal.Decimal:
		return val.StringFixed(2)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.DateTime)
	case pq.StringArray:
		return formatArray(val)
	case []string:
		return formatArray(val)
	default:
		return fmt.Sprint(val)
	}
}

func formatArray(items []string) string {
	return "{" + strings.Join(items, ",") + "}"
}
