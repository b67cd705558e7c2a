package mirror

import "time"

// Row is one mirrored package. The table name is chosen per family at query time.
// Names are case-sensitive; Migrate sets a binary collation where the database default is not.
type Row struct {
	Name      string    `gorm:"column:name;primaryKey;size:255"`
	Versions  string    `gorm:"column:versions;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// Columns lists the columns the engine reads and writes.
var Columns = []string{"name", "versions", "updated_at"}
