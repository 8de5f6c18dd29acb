package errors

import (
	"fmt"
	"strings"
)

// Represents a required construction input that was absent or unusable
// (nil datasource, empty row signature, etc.)
type InvalidArgumentError struct {
	Argument string // name of the offending argument
	Reason   string // human-readable explanation (optional)
}

func (e *InvalidArgumentError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("invalid argument %q", e.Argument))

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func NewInvalidArgument(argument, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{
		Argument: argument,
		Reason:   reason,
	}
}

// Represents an upstream wiring defect: a component was assembled without a
// capability it cannot operate without. Never retried, never defaulted.
type ConfigurationError struct {
	Component string // component that was misconfigured
	Reason    string // what was missing or wrong
}

func (e *ConfigurationError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("configuration error in %s", e.Component))

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func NewConfiguration(component, reason string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Reason:    reason,
	}
}
