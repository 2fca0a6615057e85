package i18n

// Common errors
var (
	ErrNotFound       = NewErrorWithCode("ErrorResourceNotFound", ErrorNotFound)
	ErrUnauthorized   = NewErrorWithCode("ErrorUnauthorized", ErrorUnauthorized)
	ErrForbidden      = NewErrorWithCode("ErrorForbidden", ErrorForbidden)
	ErrBadRequest     = NewErrorWithCode("ErrorBadRequest", ErrorBadRequest)
	ErrInternalServer = NewErrorWithCode("ErrorInternalServer", ErrorInternalServer)
)

// User related errors
var (
	ErrorUserNotFound             = NewErrorWithCode("ErrorUserNotFound", ErrorNotFound)
	ErrorInvalidCredentials       = NewErrorWithCode("ErrorInvalidCredentials", ErrorUnauthorized)
	ErrorUserDisabled             = NewErrorWithCode("ErrorUserDisabled", ErrorForbidden)
	ErrorUserNamePasswordRequired = NewErrorWithCode("ErrorUserNamePasswordRequired", ErrorBadRequest)
	ErrorInvalidOldPassword       = NewErrorWithCode("ErrorInvalidOldPassword", ErrorForbidden)
	ErrorUsernameExists           = NewErrorWithCode("ErrorUsernameExists", ErrorConflict)
)

// Property related errors
var (
	ErrorPropertyNotFound   = NewErrorWithCode("ErrorPropertyNotFound", ErrorNotFound)
	ErrorPropertyFloorRange = NewErrorWithCode("ErrorPropertyFloorRange", ErrorBadRequest)
	ErrorPropertyHasTenants = NewErrorWithCode("ErrorPropertyHasTenants", ErrorConflict)
)

// Tenant related errors
var (
	ErrorTenantNotFound     = NewErrorWithCode("ErrorTenantNotFound", ErrorNotFound)
	ErrorTenantFloorInvalid = NewErrorWithCode("ErrorTenantFloorInvalid", ErrorBadRequest)
	ErrorTenantNoRecord     = NewErrorWithCode("ErrorTenantNoRecord", ErrorForbidden)
)

// Payment related errors
var (
	ErrorPaymentNotFound      = NewErrorWithCode("ErrorPaymentNotFound", ErrorNotFound)
	ErrorPaymentInvalidStatus = NewErrorWithCode("ErrorPaymentInvalidStatus", ErrorBadRequest)
	ErrorPaymentInvalidMonth  = NewErrorWithCode("ErrorPaymentInvalidMonth", ErrorBadRequest)
	ErrorPaymentInvalidDate   = NewErrorWithCode("ErrorPaymentInvalidDate", ErrorBadRequest)
	ErrorPaymentEmptyBatch    = NewErrorWithCode("ErrorPaymentEmptyBatch", ErrorBadRequest)
)

// Submission (complaint/suggestion/report) related errors
var (
	ErrorSubmissionNotFound      = NewErrorWithCode("ErrorSubmissionNotFound", ErrorNotFound)
	ErrorSubmissionInvalidStatus = NewErrorWithCode("ErrorSubmissionInvalidStatus", ErrorBadRequest)
	ErrorSubmissionTitleRequired = NewErrorWithCode("ErrorSubmissionTitleRequired", ErrorBadRequest)
)

// Monthly report related errors
var (
	ErrorMonthlyReportNotFound = NewErrorWithCode("ErrorMonthlyReportNotFound", ErrorNotFound)
	ErrorMonthlyReportMonth    = NewErrorWithCode("ErrorMonthlyReportMonth", ErrorBadRequest)
)

// Success message IDs
const (
	SuccessLogin                = "SuccessLogin"
	SuccessPasswordChanged      = "SuccessPasswordChanged"
	SuccessUserCreated          = "SuccessUserCreated"
	SuccessUserUpdated          = "SuccessUserUpdated"
	SuccessUserDeleted          = "SuccessUserDeleted"
	SuccessPropertyCreated      = "SuccessPropertyCreated"
	SuccessPropertyUpdated      = "SuccessPropertyUpdated"
	SuccessPropertyDeleted      = "SuccessPropertyDeleted"
	SuccessTenantCreated        = "SuccessTenantCreated"
	SuccessTenantUpdated        = "SuccessTenantUpdated"
	SuccessTenantDeleted        = "SuccessTenantDeleted"
	SuccessPaymentStatusUpdated = "SuccessPaymentStatusUpdated"
	SuccessPaymentDateUpdated   = "SuccessPaymentDateUpdated"
	SuccessPaymentDeleted       = "SuccessPaymentDeleted"
	SuccessSubmissionCreated    = "SuccessSubmissionCreated"
	SuccessStatusUpdated        = "SuccessStatusUpdated"
	SuccessArchived             = "SuccessArchived"
	SuccessMonthlyReportCreated = "SuccessMonthlyReportCreated"
	SuccessMonthlyReportDeleted = "SuccessMonthlyReportDeleted"
)
