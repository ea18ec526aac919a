package core

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	WatsonErrorArgumentRequired = "WATSON_ARGUMENT_REQUIRED"
	WatsonErrorBadInput         = "WATSON_BAD_INPUT"
	WatsonErrorTransport        = "WATSON_TRANSPORT_FAILURE"
	WatsonErrorProtocol         = "WATSON_PROTOCOL_ERROR"
	WatsonErrorDeserialization  = "WATSON_DESERIALIZATION_FAILURE"
	WatsonErrorInternal         = "WATSON_INTERNAL_ERROR"
)

type FaultKind string

const (
	FaultNone            FaultKind = ""
	FaultArgument        FaultKind = "argument"
	FaultTransport       FaultKind = "transport"
	FaultProtocol        FaultKind = "protocol"
	FaultDeserialization FaultKind = "deserialization"
	FaultInternal        FaultKind = "internal"
)

const (
	metadataStatusCode    = "status_code"
	metadataServiceError  = "service_error"
	metadataTransactionID = "transaction_id"
)

// ServiceError is the error body Watson services return with non-2xx responses.
type ServiceError struct {
	Code            int      `json:"code,omitempty"`
	Error           string   `json:"error,omitempty"`
	CodeDescription string   `json:"code_description,omitempty"`
	Description     string   `json:"description,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}

func (e ServiceError) message() string {
	for _, candidate := range []string{e.Error, e.Description, e.CodeDescription} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

type ErrorMapper func(err error) *goerrors.Error

func DefaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return ensureFaultEnvelope(rich)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "watson: unexpected error").
		WithCode(http.StatusInternalServerError).
		WithTextCode(WatsonErrorInternal)
}

func NewArgumentFault(names ...string) *goerrors.Error {
	fields := make([]goerrors.FieldError, 0, len(names))
	for _, name := range names {
		fields = append(fields, goerrors.FieldError{Field: name, Message: "cannot be blank"})
	}
	return goerrors.NewValidation("watson: required argument missing", fields...).
		WithCode(http.StatusBadRequest).
		WithTextCode(WatsonErrorArgumentRequired)
}

func BadInputFault(message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(WatsonErrorBadInput)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func InternalFault(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(WatsonErrorInternal)
}

// TransportFault builds a transport fault around the innermost cause of err.
func TransportFault(err error, metadata map[string]any) *goerrors.Error {
	cause := Flatten(err)
	message := "watson: transport failure"
	if cause != nil {
		message = fmt.Sprintf("watson: transport failure: %s", cause.Error())
	}
	var fault *goerrors.Error
	if cause != nil {
		fault = goerrors.Wrap(cause, goerrors.CategoryExternal, message)
	} else {
		fault = goerrors.New(message, goerrors.CategoryExternal)
	}
	fault.WithCode(http.StatusBadGateway).WithTextCode(WatsonErrorTransport)
	if len(metadata) > 0 {
		fault.WithMetadata(metadata)
	}
	return fault
}

func ProtocolFault(status int, serviceErr *ServiceError, metadata map[string]any) *goerrors.Error {
	message := fmt.Sprintf("watson: service responded with status %d", status)
	if serviceErr != nil {
		if detail := serviceErr.message(); detail != "" {
			message = fmt.Sprintf("%s: %s", message, detail)
		}
	}
	fault := goerrors.New(message, statusCategory(status)).
		WithCode(status).
		WithTextCode(WatsonErrorProtocol).
		WithMetadata(map[string]any{metadataStatusCode: status})
	if serviceErr != nil {
		fault.WithMetadata(map[string]any{metadataServiceError: *serviceErr})
	}
	if len(metadata) > 0 {
		fault.WithMetadata(metadata)
	}
	return fault
}

func DeserializationFault(err error, metadata map[string]any) *goerrors.Error {
	fault := goerrors.Wrap(err, goerrors.CategoryExternal, "watson: decode response body")
	if fault == nil {
		fault = goerrors.New("watson: decode response body", goerrors.CategoryExternal)
	}
	fault.WithCode(http.StatusBadGateway).WithTextCode(WatsonErrorDeserialization)
	if len(metadata) > 0 {
		fault.WithMetadata(metadata)
	}
	return fault
}

// Flatten collapses wrapped and joined transport errors into a single cause.
// url.Error wrappers are peeled and, for joined errors, the first non-nil
// member wins.
func Flatten(err error) error {
	for err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			err = urlErr.Err
			continue
		}
		joined, ok := err.(interface{ Unwrap() []error })
		if !ok {
			return err
		}
		next := firstError(joined.Unwrap())
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func FaultKindOf(err error) FaultKind {
	if err == nil {
		return FaultNone
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return FaultInternal
	}
	switch rich.TextCode {
	case WatsonErrorArgumentRequired, WatsonErrorBadInput:
		return FaultArgument
	case WatsonErrorTransport:
		return FaultTransport
	case WatsonErrorProtocol:
		return FaultProtocol
	case WatsonErrorDeserialization:
		return FaultDeserialization
	default:
		return FaultInternal
	}
}

func StatusCodeOf(err error) int {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != WatsonErrorProtocol {
		return 0
	}
	if status, ok := rich.Metadata[metadataStatusCode].(int); ok {
		return status
	}
	return rich.Code
}

func ServiceErrorOf(err error) (ServiceError, bool) {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return ServiceError{}, false
	}
	serviceErr, ok := rich.Metadata[metadataServiceError].(ServiceError)
	return serviceErr, ok
}

func ensureFaultEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = faultHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultFaultTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func statusCategory(status int) goerrors.Category {
	switch {
	case status == http.StatusUnauthorized:
		return goerrors.CategoryAuth
	case status == http.StatusForbidden:
		return goerrors.CategoryAuthz
	case status == http.StatusNotFound:
		return goerrors.CategoryNotFound
	case status == http.StatusConflict:
		return goerrors.CategoryConflict
	case status == http.StatusTooManyRequests:
		return goerrors.CategoryRateLimit
	case status >= 400 && status < 500:
		return goerrors.CategoryBadInput
	default:
		return goerrors.CategoryExternal
	}
}

func defaultFaultTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryValidation:
		return WatsonErrorArgumentRequired
	case goerrors.CategoryBadInput:
		return WatsonErrorBadInput
	case goerrors.CategoryExternal:
		return WatsonErrorTransport
	default:
		return WatsonErrorInternal
	}
}

func faultHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
