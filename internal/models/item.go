package models

import (
	"strings"

	"gorm.io/datatypes"
)

// ItemFields maps user-chosen field names to their raw values.
type ItemFields map[string]string

// Item is one record created from a category schema. CategoryID is a weak
// reference: it may be empty or point at a deleted category.
type Item struct {
	Base
	Title      string                         `gorm:"not null" json:"title"`
	CategoryID string                         `gorm:"size:36;index" json:"category_id"`
	Fields     datatypes.JSONType[ItemFields] `json:"fields"`
}

// FieldValues returns the stored field map, never nil.
func (i *Item) FieldValues() ItemFields {
	f := i.Fields.Data()
	if f == nil {
		return ItemFields{}
	}
	return f
}

// SetFields replaces the stored field map.
func (i *Item) SetFields(f ItemFields) {
	i.Fields = datatypes.NewJSONType(f)
}

// MatchesSearch reports whether term occurs, case-insensitively, in the title
// or in any field name or value. An empty term matches everything.
func (i *Item) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(i.Title), term) {
		return true
	}
	for k, v := range i.FieldValues() {
		if strings.Contains(strings.ToLower(k), term) || strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}
