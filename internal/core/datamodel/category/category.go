package category

import "time"

// Category names are stored normalized; the composite index is the
// authoritative duplicate guard per owner.
type Category struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex:idx_categories_user_name,priority:1"`
	Name        string    `gorm:"column:name;not null;uniqueIndex:idx_categories_user_name,priority:2"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Category) TableName() string { return "categories" }
