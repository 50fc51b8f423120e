// Package datarecording stores instrumentation events in SQLite so that a
// run can be examined after the process has exited.
package datarecording

import (
	"database/sql"
	"log"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/eapache/queue"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
)

// DefaultBatchSize is the number of pending entries that triggers a flush.
const DefaultBatchSize = 10000

// DataRecorder is a backend that can record and store flat entries.
type DataRecorder interface {
	// CreateTable creates a table whose columns are the fields of
	// sampleEntry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData queues an entry for a table that already exists. It may
	// flush if the batch is full.
	InsertData(tableName string, entry any) error

	// ListTables returns the names of the tables created by this recorder.
	ListTables() []string

	// Flush writes all queued entries in a single transaction.
	Flush() error

	// Close flushes and releases the database.
	Close() error
}

var tableNameRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

type table struct {
	structType reflect.Type
	columns    []string
	pending    *queue.Queue
}

// SQLiteWriter records entries into a SQLite database.
type SQLiteWriter struct {
	*sql.DB

	batchSize  int
	tableNames []string
	tables     map[string]*table
	numPending int
	closed     bool
}

// DefaultPath returns a fresh database path without extension.
func DefaultPath() string {
	return "goodies_recording_" + xid.New().String()
}

// New creates a SQLiteWriter that writes into path + ".sqlite3". An empty
// path selects DefaultPath. It refuses to reuse an existing file. Pending
// entries are flushed when the process exits through atexit.
func New(path string) (*SQLiteWriter, error) {
	if path == "" {
		path = DefaultPath()
	}

	filename := path + ".sqlite3"

	if _, err := os.Stat(filename); err == nil {
		return nil, errors.Newf("file %s already exists", filename)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "checking %s", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", filename)
	}

	log.Printf("Database created for recording: %s", filename)

	w := NewWithDB(db)

	atexit.Register(func() {
		if err := w.Close(); err != nil {
			log.Printf("closing recorder: %v", err)
		}
	})

	return w, nil
}

// NewWithDB creates a SQLiteWriter on an open database.
func NewWithDB(db *sql.DB) *SQLiteWriter {
	return &SQLiteWriter{
		DB:        db,
		batchSize: DefaultBatchSize,
		tables:    make(map[string]*table),
	}
}

// WithBatchSize sets how many pending entries trigger a flush.
func (w *SQLiteWriter) WithBatchSize(n int) *SQLiteWriter {
	if n < 1 {
		n = 1
	}

	w.batchSize = n

	return w
}

func isAllowedKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func columnsOf(t reflect.Type) ([]string, error) {
	if t.Kind() != reflect.Struct {
		return nil, errors.Newf("entry must be a struct, got %s", t.Kind())
	}

	columns := make([]string, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			return nil, errors.Newf("field %s is not exported", field.Name)
		}

		if !isAllowedKind(field.Type.Kind()) {
			return nil, errors.Newf("field %s has unsupported kind %s",
				field.Name, field.Type.Kind())
		}

		columns = append(columns, field.Name)
	}

	return columns, nil
}

// CreateTable creates a table for entries shaped like sampleEntry. It
// panics if the name or the entry type cannot be stored.
func (w *SQLiteWriter) CreateTable(tableName string, sampleEntry any) {
	if !tableNameRE.MatchString(tableName) {
		panic("invalid table name " + tableName)
	}

	if _, exists := w.tables[tableName]; exists {
		panic("table " + tableName + " already exists")
	}

	structType := reflect.TypeOf(sampleEntry)

	columns, err := columnsOf(structType)
	if err != nil {
		panic(err)
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = `"` + c + `"`
	}

	createTableSQL := `CREATE TABLE ` + tableName +
		` (` + "\n\t" + strings.Join(quoted, ", \n\t") + "\n" + `);`
	w.mustExecute(createTableSQL)

	w.tableNames = append(w.tableNames, tableName)
	w.tables[tableName] = &table{
		structType: structType,
		columns:    columns,
		pending:    queue.New(),
	}
}

// InsertData queues an entry. The entry must have the table's type.
func (w *SQLiteWriter) InsertData(tableName string, entry any) error {
	t, exists := w.tables[tableName]
	if !exists {
		panic("table " + tableName + " does not exist")
	}

	if reflect.TypeOf(entry) != t.structType {
		panic("entry type does not match table " + tableName)
	}

	t.pending.Add(entry)
	w.numPending++

	if w.numPending >= w.batchSize {
		return w.Flush()
	}

	return nil
}

// ListTables returns the tables in creation order.
func (w *SQLiteWriter) ListTables() []string {
	return append([]string(nil), w.tableNames...)
}

// Flush writes all pending entries in one transaction. On failure the
// entries stay queued.
func (w *SQLiteWriter) Flush() error {
	if w.numPending == 0 || w.closed {
		return nil
	}

	tx, err := w.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}

	for _, name := range w.tableNames {
		if err := flushTable(tx, name, w.tables[name]); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	for _, t := range w.tables {
		for t.pending.Length() > 0 {
			t.pending.Remove()
		}
	}

	w.numPending = 0

	return nil
}

func flushTable(tx *sql.Tx, name string, t *table) error {
	if t.pending.Length() == 0 {
		return nil
	}

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	stmt, err := tx.Prepare("INSERT INTO " + name + " VALUES (" + marks + ")")
	if err != nil {
		return errors.Wrapf(err, "preparing insert into %s", name)
	}
	defer stmt.Close()

	values := make([]any, len(t.columns))
	for i := 0; i < t.pending.Length(); i++ {
		v := reflect.ValueOf(t.pending.Get(i))
		for j := range values {
			values[j] = v.Field(j).Interface()
		}

		if _, err := stmt.Exec(values...); err != nil {
			return errors.Wrapf(err, "inserting into %s", name)
		}
	}

	return nil
}

// Close flushes pending entries and closes the database. Calling it more
// than once is allowed.
func (w *SQLiteWriter) Close() error {
	if w.closed {
		return nil
	}

	flushErr := w.Flush()
	w.closed = true

	return errors.CombineErrors(flushErr, w.DB.Close())
}

func (w *SQLiteWriter) mustExecute(query string) sql.Result {
	res, err := w.Exec(query)
	if err != nil {
		log.Printf("Failed to execute: %s", query)
		panic(err)
	}

	return res
}
