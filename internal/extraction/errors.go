package extraction

import "fmt"

// Reason classifies why extraction failed.
type Reason string

// Failure reasons.
const (
	ReasonEmptyInput        Reason = "empty_input"
	ReasonAPICall           Reason = "api_call"
	ReasonEmptyResponse     Reason = "empty_response"
	ReasonMalformedResponse Reason = "malformed_response"
	ReasonSchemaMismatch    Reason = "schema_mismatch"
)

// ExtractionError is returned when resume text could not be turned into a draft.
type ExtractionError struct {
	Reason  Reason
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed (%s): %s: %v", e.Reason, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed (%s): %s", e.Reason, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
