package model

import "time"

type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "pending"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusClosed    InquiryStatus = "closed"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusPending, InquiryStatusContacted, InquiryStatusClosed:
		return true
	}
	return false
}

// Inquiry types used by the site's forms
const (
	InquiryTypeGeneral = "general"
	InquiryTypeQuote   = "quote"
	InquiryTypeMeeting = "meeting"
)

// ContactInquiry is a contact-form submission. Consent is checked at the
// boundary and never stored.
type ContactInquiry struct {
	ID          string        `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"not null"`
	Email       string        `json:"email" gorm:"not null;index"`
	Phone       *string       `json:"phone"`
	Subject     *string       `json:"subject"`
	Message     string        `json:"message" gorm:"type:text;not null"`
	InquiryType string        `json:"inquiryType" gorm:"size:50;not null;default:'general'"`
	Status      InquiryStatus `json:"status" gorm:"size:20;not null;default:'pending'"`
	CreatedAt   time.Time     `json:"createdAt" gorm:"index;autoCreateTime:false"`
}

type InquiryInput struct {
	Name        string
	Email       string
	Phone       *string
	Subject     *string
	Message     string
	InquiryType *string
}

func NewContactInquiry(id string, in InquiryInput, now time.Time) ContactInquiry {
	inquiry := ContactInquiry{
		ID:          id,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Subject:     in.Subject,
		Message:     in.Message,
		InquiryType: InquiryTypeGeneral,
		Status:      InquiryStatusPending,
		CreatedAt:   now,
	}
	if in.InquiryType != nil {
		inquiry.InquiryType = *in.InquiryType
	}
	return inquiry
}
