package httperr

import "errors"

// BusinessError carries a domain failure code out of the use-case layer.
// Handlers map codes to HTTP statuses and user-facing messages.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Domain failure codes shared by both storage backends.
const (
	CodeClinicNotFound      = "clinic_not_found"
	CodeSlotTaken           = "slot_taken"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeInvalidStatus       = "invalid_status"
	CodeNotAuthorized       = "not_authorized"
	CodeEmailTaken          = "email_taken"
	CodeInvalidCredentials  = "invalid_credentials"
)
