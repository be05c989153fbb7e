// Package export exports the records of an object store into other formats.
package export

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/FAU-CDI/vobox/internal/status"
	"github.com/FAU-CDI/vobox/pkg/ostore"
	"github.com/FAU-CDI/vobox/pkg/vobj"
	"github.com/huandu/go-sqlbuilder"
)

const (
	// DefaultTable is the default table to export objects into
	DefaultTable = "objects"

	kindColumn   = "kind"
	idColumn     = "id"
	lengthColumn = "length"
	valueColumn  = "value"
)

var columns = []string{kindColumn, idColumn, lengthColumn, valueColumn}

// SQL exports the records of an object store into a single table of an sql database.
//
// Each record becomes a row holding the kind, the id, the length (for strings only) and the value.
// Records of kinds other than strings and integers are exported with their raw representation.
type SQL struct {
	DB    *sql.DB
	Table string // table name, defaults to DefaultTable

	BatchSize   int // maximum number of rows per insert statement
	MaxQueryVar int // maximum number of query variables (overrides BatchSize)
}

var errInsufficientQueryVars = errors.New("MaxQueryVar too small")

func (exporter *SQL) table() string {
	if exporter.Table == "" {
		return DefaultTable
	}
	return exporter.Table
}

// exec executes an sql query
func (exporter *SQL) exec(query string, args []any) error {
	_, err := exporter.DB.Exec(query, args...)
	return err
}

// chunkSize returns the number of rows to insert per statement.
func (exporter *SQL) chunkSize() (int, error) {
	size := exporter.MaxQueryVar / len(columns)
	if size == 0 {
		return 0, errInsufficientQueryVars
	}
	if exporter.BatchSize > 0 && exporter.BatchSize < size {
		size = exporter.BatchSize
	}
	return size, nil
}

// createTable re-creates the export table
func (exporter *SQL) createTable() error {
	if err := exporter.exec("DROP TABLE IF EXISTS "+exporter.table()+";", nil); err != nil {
		return err
	}

	table := sqlbuilder.CreateTable(exporter.table()).IfNotExists()
	table.Define(kindColumn, "TEXT", "NOT NULL")
	table.Define(idColumn, "TEXT", "NOT NULL")
	table.Define(lengthColumn, "INTEGER")
	table.Define(valueColumn, "TEXT")
	return exporter.exec(table.Build())
}

// insert inserts the given rows into the export table
func (exporter *SQL) insert(rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	insert := sqlbuilder.InsertInto(exporter.table())
	insert.Cols(columns...)
	for _, row := range rows {
		insert.Values(row...)
	}
	return exporter.exec(insert.Build())
}

// Row returns the row representing rec.
func Row(rec ostore.Record) ([]any, error) {
	kind := vobj.Kind(rec.Type)

	var length any
	value := string(rec.Value)

	switch kind {
	case vobj.KindString:
		data, err := vobj.ParseString(rec.Value)
		if err != nil {
			return nil, fmt.Errorf("%s object %s: %w", rec.Type, rec.ID, err)
		}
		length, value = len(data), string(data)
	case vobj.KindInteger:
		number, err := vobj.ParseInteger(rec.Value)
		if err != nil {
			return nil, fmt.Errorf("%s object %s: %w", rec.Type, rec.ID, err)
		}
		value = strconv.FormatInt(int64(number), 10)
	}

	return []any{rec.Type, rec.ID.String(), length, value}, nil
}

// Export exports all records in store.
// Any previous content of the table is dropped.
func (exporter *SQL) Export(store *ostore.Store, st *status.Status) error {
	size, err := exporter.chunkSize()
	if err != nil {
		return err
	}

	if err := exporter.createTable(); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	records := store.Records()
	defer records.Close()

	batch := make([][]any, 0, size)
	flush := func() error {
		if err := exporter.insert(batch); err != nil {
			return fmt.Errorf("failed to insert rows: %w", err)
		}
		st.Add(len(batch))
		batch = batch[:0]
		return nil
	}

	for records.Next() {
		row, err := Row(records.Datum())
		if err != nil {
			return err
		}

		batch = append(batch, row)
		if len(batch) < size {
			continue
		}
		if err := flush(); err != nil {
			return err
		}
	}
	if err := records.Err(); err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}
	return flush()
}
