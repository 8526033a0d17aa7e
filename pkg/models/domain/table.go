package domain

import "time"

type TableRow struct {
	Label  string
	Values []Cell
}

type Table struct {
	Name string
	Rows []TableRow

	index map[string]int
}

func NewTable(name string) *Table {
	return &Table{Name: name, index: make(map[string]int)}
}

// Add appends a row unless the label is already present. The first occurrence wins.
func (t *Table) Add(label string, values []Cell) bool {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if _, exists := t.index[label]; exists {
		return false
	}
	t.index[label] = len(t.Rows)
	t.Rows = append(t.Rows, TableRow{Label: label, Values: values})
	return true
}

func (t *Table) Row(label string) (TableRow, bool) {
	i, ok := t.index[label]
	if !ok {
		return TableRow{}, false
	}
	return t.Rows[i], true
}

func (t *Table) Labels() []string {
	labels := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		labels = append(labels, r.Label)
	}
	return labels
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Tables is the reconstructed workbook: canonical table name -> table, in discovery order.
type Tables struct {
	tables []*Table
	index  map[string]int
}

func NewTables() *Tables {
	return &Tables{index: make(map[string]int)}
}

// Put adds or replaces a table while keeping its original position.
func (ts *Tables) Put(t *Table) {
	if i, ok := ts.index[t.Name]; ok {
		ts.tables[i] = t
		return
	}
	ts.index[t.Name] = len(ts.tables)
	ts.tables = append(ts.tables, t)
}

func (ts *Tables) Get(name string) (*Table, bool) {
	if ts == nil {
		return nil, false
	}
	i, ok := ts.index[name]
	if !ok {
		return nil, false
	}
	return ts.tables[i], true
}

func (ts *Tables) Names() []string {
	if ts == nil {
		return []string{}
	}
	names := make([]string, 0, len(ts.tables))
	for _, t := range ts.tables {
		names = append(names, t.Name)
	}
	return names
}

func (ts *Tables) All() []*Table {
	if ts == nil {
		return nil
	}
	return ts.tables
}

func (ts *Tables) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.tables)
}

// Section describes a detected marker, kept for traceability.
type Section struct {
	Name      string
	MarkerRow int
	StartRow  int
	Rows      []int
}

type RowSum struct {
	TableName       string
	RowLabel        string
	Sum             float64
	ValuesProcessed int
	NumericValues   []float64
}

type ReloadStatus string

const (
	ReloadStatusLoaded   ReloadStatus = "loaded"
	ReloadStatusDegraded ReloadStatus = "degraded"
)

type ReloadResult struct {
	ID           string
	Location     string
	Status       ReloadStatus
	TablesLoaded int
	TableNames   []string
	StartedAt    time.Time
	FinishedAt   time.Time
	Error        *string
}
