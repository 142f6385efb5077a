package models

type InquiryType string

const (
	InquiryProduct      InquiryType = "product_inquiry"
	InquiryService      InquiryType = "service_request"
	InquiryEmergency    InquiryType = "emergency"
	InquiryConsultation InquiryType = "consultation"
	InquiryPartnership  InquiryType = "partnership"
	InquiryGeneral      InquiryType = "general_contact"
	InquiryLeadCapture  InquiryType = "lead_capture"
)

// InquiryRequest carries a submitted contact form. The backend never stores
// or forwards it; it only formats a WhatsApp deep link the browser opens.
type InquiryRequest struct {
	Type InquiryType `json:"type" binding:"required"`

	FullName string `json:"full_name" binding:"required,min=2"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location" binding:"required,min=2"`

	// Page context supplied by the caller.
	Page    string `json:"page,omitempty"`
	Section string `json:"section,omitempty"`

	// Type-specific fields. Validated per inquiry type by the service.
	ProductName      string `json:"product_name,omitempty"`
	ProductCategory  string `json:"product_category,omitempty"`
	ServiceName      string `json:"service_name,omitempty"`
	AnimalType       string `json:"animal_type,omitempty"`
	Quantity         string `json:"quantity,omitempty"`
	NumberOfAnimals  string `json:"number_of_animals,omitempty"`
	NumberOfAffected string `json:"number_of_affected,omitempty"`
	IssueDescription string `json:"issue_description,omitempty"`
	Symptoms         string `json:"symptoms,omitempty"`
	Topic            string `json:"topic,omitempty"`
	PreferredTime    string `json:"preferred_time,omitempty"`
	BusinessName     string `json:"business_name,omitempty"`
	BusinessType     string `json:"business_type,omitempty"`
	Subject          string `json:"subject,omitempty"`
	Message          string `json:"message,omitempty"`
}

// InquiryResponse returns the prepared deep link.
type InquiryResponse struct {
	WhatsAppURL string      `json:"whatsapp_url"`
	Type        InquiryType `json:"type"`
}
