package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type CertificateRequest struct {
	gorm.Model
	StudentID      uint       `json:"studentId" gorm:"not null;index"`
	Student        User       `json:"-" gorm:"foreignKey:StudentID"`
	TrainingType   string     `json:"trainingType" gorm:"not null"`
	CompanyName    string     `json:"companyName" gorm:"not null"`
	CompanyAddress string     `json:"companyAddress" gorm:"not null"`
	CompanyEmail   string     `json:"companyEmail" gorm:"default:''"`
	CompanyContact string     `json:"companyContact" gorm:"not null"`
	MentorName     string     `json:"mentorName" gorm:"default:''"`
	MentorEmail    string     `json:"mentorEmail" gorm:"default:''"`
	MentorContact  string     `json:"mentorContact" gorm:"default:''"`
	Status         string     `json:"status" gorm:"default:'Pending'"` // Pending, Approved, Rejected
	ApprovedDate   *time.Time `json:"approvedDate"`
	Remarks        string     `json:"remarks" gorm:"default:''"`
	RefNo          string     `json:"refNo" gorm:"default:''"`
	OfferLetterUrl string     `json:"offerLetterUrl" gorm:"default:''"`
}
