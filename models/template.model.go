package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DepartmentAll marks a template as usable by every department.
const DepartmentAll = "All"

type Template struct {
	gorm.Model
	Name        string                      `json:"name" gorm:"not null"`
	TemplateID  string                      `json:"templateId" gorm:"not null"` // external document template identifier
	Departments datatypes.JSONSlice[string] `json:"departments" gorm:"not null"`
}

// AppliesTo reports whether the template is usable by the given department.
func (t *Template) AppliesTo(department string) bool {
	for _, d := range t.Departments {
		if d == department || d == DepartmentAll {
			return true
		}
	}
	return false
}
