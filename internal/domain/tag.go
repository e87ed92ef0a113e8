package domain

// Tag is immutable reference data, managed by the seed command.
type Tag struct {
	ID   int64  `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;size:50;uniqueIndex;not null" json:"name"`
	Slug string `gorm:"column:slug;size:50;uniqueIndex;not null" json:"slug"`
}

func (Tag) TableName() string { return "tags" }
