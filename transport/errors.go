package transport

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-watson/core"
)

func transportError(message string, category goerrors.Category, code int, metadata map[string]any) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// transportWrapError wraps network failures as flattened transport faults and
// everything else in the envelope matching its category.
func transportWrapError(source error, category goerrors.Category, message string, code int, metadata map[string]any) error {
	if source == nil {
		return transportError(message, category, code, metadata)
	}
	if category == goerrors.CategoryExternal {
		return core.TransportFault(source, metadata)
	}
	err := goerrors.Wrap(core.Flatten(source), category, message).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.WatsonErrorBadInput
	case goerrors.CategoryExternal:
		return core.WatsonErrorTransport
	default:
		return core.WatsonErrorInternal
	}
}
