package domain

// Ingredient is immutable reference data, managed by the seed command.
type Ingredient struct {
	ID              int64  `gorm:"column:id;primaryKey" json:"id"`
	Name            string `gorm:"column:name;size:256;index;not null" json:"name"`
	MeasurementUnit string `gorm:"column:measurement_unit;size:64;not null" json:"measurement_unit"`
}

func (Ingredient) TableName() string { return "ingredients" }
