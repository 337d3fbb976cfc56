package models

// ColumnType is the semantic type of a dataset column.
type ColumnType string

const (
	TypeString    ColumnType = "string"
	TypeInteger   ColumnType = "integer"
	TypeFloat     ColumnType = "float"
	TypeTimestamp ColumnType = "timestamp"
)

// ColumnSpec names one column of the fixed schema.
type ColumnSpec struct {
	Name string
	Type ColumnType
}

// Column names referenced outside the schema table.
const (
	ColVideoID          = "video_id"
	ColChannelID        = "channel_id"
	ColDurationCategory = "categorize_duration"
)

// Schema is the fixed 20-column layout of every dataset, in column order.
var Schema = []ColumnSpec{
	{ColVideoID, TypeString},
	{"video_title", TypeString},
	{ColChannelID, TypeString},
	{"channel_title", TypeString},
	{"date_of_published", TypeTimestamp},
	{"most_frequent_word", TypeString},
	{"category", TypeString},
	{"view_count", TypeInteger},
	{"like_count", TypeInteger},
	{"view_count_ratio", TypeFloat},
	{"like_count_ratio", TypeFloat},
	{"comment_count", TypeInteger},
	{"duration_sec", TypeInteger},
	{ColDurationCategory, TypeString},
	{"channel_view_count", TypeInteger},
	{"channel_sub_count", TypeInteger},
	{"channel_video_count", TypeInteger},
	{"watch_video", TypeString},
	{"picture", TypeString},
	{"language", TypeString},
}

// SchemaColumns returns the schema's column names in order.
func SchemaColumns() []string {
	cols := make([]string, len(Schema))
	for i, c := range Schema {
		cols[i] = c.Name
	}
	return cols
}

// Dataset is an ordered table of cells. Every row has one cell per column, and
// row order is the order the videos were listed in.
type Dataset struct {
	Columns []string
	Rows    [][]any
}

// NewDataset returns an empty dataset laid out with the fixed schema.
func NewDataset() *Dataset {
	return &Dataset{Columns: SchemaColumns()}
}

// Append adds a row at the end of the dataset.
func (d *Dataset) Append(row VideoStatRow) {
	d.Rows = append(d.Rows, row.Values())
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Index returns the position of the named column, or -1.
func (d *Dataset) Index(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns every cell of the named column in row order.
func (d *Dataset) Column(name string) ([]any, bool) {
	idx := d.Index(name)
	if idx < 0 {
		return nil, false
	}
	cells := make([]any, len(d.Rows))
	for i, row := range d.Rows {
		if idx < len(row) {
			cells[i] = row[idx]
		}
	}
	return cells, true
}
