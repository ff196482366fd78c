// Package model defines the gorm persistence models.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Item is the persisted form of a content item.
type Item struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	SpaceID   string    `gorm:"column:space_id;size:36;index"`
	Kind      string    `gorm:"column:kind;size:16"`
	Title     string    `gorm:"column:title;size:512"`
	Body      string    `gorm:"column:body;type:text"`
	Due       int64     `gorm:"column:due"`
	Tags      string    `gorm:"column:tags;size:1024"`
	Done      bool      `gorm:"column:done"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Item) TableName() string {
	return "item"
}

// Space is the persisted form of a space, item counter included.
type Space struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	Name      string    `gorm:"column:name;size:255"`
	ItemCount int64     `gorm:"column:item_count"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Space) TableName() string {
	return "space"
}

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Item{}, &Space{})
}
