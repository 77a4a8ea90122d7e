package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Name                      string     `json:"name" gorm:"not null"`
	Username                  string     `json:"username" gorm:"unique;not null"` // university roll number
	Email                     string     `json:"email" gorm:"unique;not null"`
	Password                  string     `json:"-" gorm:"not null"`
	Department                string     `json:"department" gorm:"not null"` // e.g. "CSE"
	UniversityRollNo          string     `json:"universityRollNo" gorm:"unique;not null"`
	CollegeRollNo             string     `json:"collegeRollNo" gorm:"unique;not null"`
	Role                      string     `json:"role" gorm:"default:'student'"` // student, admin
	ForgotPasswordToken       string     `json:"-" gorm:"default:''"`
	ForgotPasswordTokenExpiry *time.Time `json:"-"`
}
