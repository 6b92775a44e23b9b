package formats

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

type TableFormatter struct {
	table *tablewriter.Table
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	table := tablewriter.NewWriter(w)
	table.SetColWidth(48)
	table.SetRowLine(false)

	return &TableFormatter{
		table: table,
	}
}

func (t *TableFormatter) SetSchema(fields []string) {
	t.table.SetHeader(fields)
	t.table.SetAutoFormatHeaders(false)
}

func (t *TableFormatter) Write(values []interface{}) error {
	row := make([]string, len(values))
	for i := range values {
		row[i] = ValueToString(values[i])
	}
	t.table.Append(row)
	return nil
}

func (t *TableFormatter) Close() error {
	t.table.Render()
	return nil
}
