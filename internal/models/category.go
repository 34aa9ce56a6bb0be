package models

import "gorm.io/datatypes"

// CategoryField declares one field of a category schema. Type is a field type
// registry value.
type CategoryField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Category is a named schema that items are created from.
type Category struct {
	Base
	Name        string                            `gorm:"not null;size:100" json:"name"`
	Description string                            `json:"description"`
	Fields      datatypes.JSONSlice[CategoryField] `json:"fields"`
}

// FieldCount returns the number of declared fields.
func (c *Category) FieldCount() int {
	return len(c.Fields)
}

// RequiredFieldNames lists the names of fields marked required, in declaration order.
func (c *Category) RequiredFieldNames() []string {
	var names []string
	for _, f := range c.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
