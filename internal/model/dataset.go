package model

// Table is a fully materialized result set.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// DataSet holds the tables returned by one stored-procedure call.
type DataSet struct {
	Tables []Table `json:"tables"`
}

// IsEmpty reports whether the set has no tables or its first table has no rows.
func (d *DataSet) IsEmpty() bool {
	return d == nil || len(d.Tables) == 0 || len(d.Tables[0].Rows) == 0
}

// ColumnIndex returns the position of the named column, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
