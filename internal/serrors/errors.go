// Package serrors provides custom error types for statline.
// These error types carry a stable code so callers can react to a failure
// class without string matching.
package serrors

import (
	"fmt"
)

// Error is the base interface for all statline errors
type Error interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all statline errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ConfigError represents errors in statusline configuration
type ConfigError struct {
	baseError
	Field string
}

// NewConfigError creates a new configuration error
func NewConfigError(field string, message string, cause error) *ConfigError {
	return &ConfigError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// GenerationError represents errors during script generation
type GenerationError struct {
	baseError
	Stage string
}

// NewGenerationError creates a new generation error
func NewGenerationError(stage string, message string, cause error) *GenerationError {
	return &GenerationError{
		baseError: baseError{
			code:    "GENERATION_ERROR",
			message: message,
			cause:   cause,
		},
		Stage: stage,
	}
}

// OptimizationError represents a failure inside an optimizer pass.
// It always wraps the recovered panic or pass error; the generator treats
// it as a signal to roll back to the unoptimized text.
type OptimizationError struct {
	baseError
	Pass string
}

// NewOptimizationError creates a new optimization error
func NewOptimizationError(pass string, message string, cause error) *OptimizationError {
	return &OptimizationError{
		baseError: baseError{
			code:    "OPTIMIZATION_ERROR",
			message: message,
			cause:   cause,
		},
		Pass: pass,
	}
}

// InstallError represents errors while installing the generated script
type InstallError struct {
	baseError
	Path string
}

// NewInstallError creates a new install error
func NewInstallError(path string, message string, cause error) *InstallError {
	return &InstallError{
		baseError: baseError{
			code:    "INSTALL_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// PreviewError represents errors while executing a generated script preview
type PreviewError struct {
	baseError
	Script string
}

// NewPreviewError creates a new preview error
func NewPreviewError(script string, message string, cause error) *PreviewError {
	return &PreviewError{
		baseError: baseError{
			code:    "PREVIEW_ERROR",
			message: message,
			cause:   cause,
		},
		Script: script,
	}
}
