package constants

// Standard Response Field Keys
const (
	ResponseFieldMessage = "message"
	ResponseFieldDetails = "details"
	ResponseFieldErrors  = "errors"
)

func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}

// BuildValidationErrorResponse lists one message per failing field.
func BuildValidationErrorResponse(message string, fieldErrors map[string]string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
		ResponseFieldErrors:  fieldErrors,
	}
}
