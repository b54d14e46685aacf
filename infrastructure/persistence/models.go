package persistence

import "time"

// StationModel represents a station row.
type StationModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name.
func (StationModel) TableName() string { return "stations" }

// LineModel represents a line header row. Its segments live in SegmentModel.
type LineModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Color     string    `gorm:"type:varchar(64);not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name.
func (LineModel) TableName() string { return "lines" }

// SegmentModel represents one section of a line.
type SegmentModel struct {
	ID            int64        `gorm:"primaryKey;autoIncrement"`
	LineID        int64        `gorm:"not null;index"`
	UpStationID   int64        `gorm:"not null;index"`
	DownStationID int64        `gorm:"not null;index"`
	Length        int          `gorm:"not null"`
	UpStation     StationModel `gorm:"foreignKey:UpStationID"`
	DownStation   StationModel `gorm:"foreignKey:DownStationID"`
	CreatedAt     time.Time    `gorm:"not null"`
	UpdatedAt     time.Time    `gorm:"not null"`
}

// TableName returns the table name.
func (SegmentModel) TableName() string { return "sections" }
