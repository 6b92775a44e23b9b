package formats

import (
	"encoding/csv"
	"io"
)

type CSVFormatter struct {
	writer *csv.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	writer := csv.NewWriter(w)

	return &CSVFormatter{
		writer: writer,
	}
}

func (t *CSVFormatter) SetSchema(fields []string) {
	t.writer.Write(fields)
}

func (t *CSVFormatter) Write(values []interface{}) error {
	row := make([]string, len(values))
	for i := range values {
		row[i] = ValueToString(values[i])
	}
	return t.writer.Write(row)
}

func (t *CSVFormatter) Close() error {
	t.writer.Flush()
	return t.writer.Error()
}
