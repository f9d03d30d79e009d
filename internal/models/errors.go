package models

import "errors"

var ErrNotFound = errors.New("requested resource not found")
var ErrForbidden = errors.New("user does not have permission to access this resource")
var ErrConflict = errors.New("resource conflict, item already exists")
var ErrSessionNotFound = errors.New("booking session not found or expired")

// ErrNotReady indicates that submit was called before the form reached the
// review step. The caller must keep advancing the form instead.
var ErrNotReady = errors.New("booking form is not on the review step")

var ErrTermsNotAccepted = errors.New("terms not accepted")
var ErrMissingPaymentCode = errors.New("payment confirmation code is missing")

// ErrSubmissionFailed wraps a persistence failure after the booking record
// was produced. Distinct from validation: the user retries with the same
// form session and keeps the references already shown to them.
var ErrSubmissionFailed = errors.New("submission failed, please retry")

var ErrInvalidStatus = errors.New("unknown booking status")
