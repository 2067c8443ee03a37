package models

// ReportSchemaVersion is bumped whenever ReportPayload changes shape
const ReportSchemaVersion = "1"

// CategoryScore is one flattened row of the report's category breakdown
type CategoryScore struct {
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Max        float64 `json:"max"`
	Percentage float64 `json:"percentage"`
}

// ReportPayload is the body sent to the PDF/email generation service
type ReportPayload struct {
	SchemaVersion   string           `json:"schemaVersion"`
	CatalogVersion  string           `json:"catalogVersion,omitempty"`
	Email           string           `json:"email"`
	Score           int              `json:"score"`
	CategoryScore   []CategoryScore  `json:"categoryScore"`
	Recommendations []Recommendation `json:"recommendations"`
	ReportBody      string           `json:"htmlContent"` // opaque to the delivery service contract
}

// DeliveryReceipt is the delivery service's success response
type DeliveryReceipt struct {
	Message string `json:"message"`
}
