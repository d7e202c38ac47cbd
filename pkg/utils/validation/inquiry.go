package validation

import (
	"propertymasters_backend/internal/model"
)

type inquiryForm struct {
	Name        *string `json:"name" validate:"required,min=1"`
	Email       *string `json:"email" validate:"required,min=1,email"`
	Message     *string `json:"message" validate:"required,min=1"`
	InquiryType *string `json:"inquiryType" validate:"omitempty,min=1"`
	Consent     *bool   `json:"consent" validate:"required,eq=true"`
}

type contactForm struct {
	Name    *string `json:"name" validate:"required,min=1"`
	Email   *string `json:"email" validate:"required,min=1"`
	Message *string `json:"message" validate:"required,min=1"`
}

type statusForm struct {
	Status *string `json:"status" validate:"required,oneof=pending contacted closed"`
}

// ParseInquiry validates a contact-inquiry submission. Consent must be the
// boolean true; it gates acceptance and is not part of the result. A client
// supplied status is ignored.
func ParseInquiry(obj Object) (model.InquiryInput, error) {
	r := newReader(obj)
	form := inquiryForm{
		Name:        r.String("name"),
		Email:       r.TrimmedString("email"),
		Message:     r.String("message"),
		InquiryType: r.String("inquiryType"),
		Consent:     r.Bool("consent"),
	}
	phone := r.OptionalText("phone")
	subject := r.OptionalText("subject")
	r.check(&form)

	if err := r.errs.Err(); err != nil {
		return model.InquiryInput{}, err
	}

	return model.InquiryInput{
		Name:        *form.Name,
		Email:       *form.Email,
		Phone:       phone,
		Subject:     subject,
		Message:     *form.Message,
		InquiryType: form.InquiryType,
	}, nil
}

// ParseContactForm validates the external-compat contact shape. Values are
// trimmed and the inquiry type is always general.
func ParseContactForm(obj Object) (model.InquiryInput, error) {
	r := newReader(obj)
	form := contactForm{
		Name:    r.TrimmedString("name"),
		Email:   r.TrimmedString("email"),
		Message: r.TrimmedString("message"),
	}
	phone := r.OptionalText("phone")
	subject := r.OptionalText("subject")
	r.check(&form)

	if err := r.errs.Err(); err != nil {
		return model.InquiryInput{}, err
	}

	general := model.InquiryTypeGeneral
	return model.InquiryInput{
		Name:        *form.Name,
		Email:       *form.Email,
		Phone:       phone,
		Subject:     subject,
		Message:     *form.Message,
		InquiryType: &general,
	}, nil
}

func ParseStatus(obj Object) (model.InquiryStatus, error) {
	r := newReader(obj)
	form := statusForm{Status: r.String("status")}
	r.check(&form)

	if err := r.errs.Err(); err != nil {
		return "", err
	}
	return model.InquiryStatus(*form.Status), nil
}
