package errors

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

func newBuilder(category ErrorCategory, message string, cause error) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		unit:     category.defaultUnit(),
		message:  message,
		cause:    cause,
		context:  ErrorContext{},
	}}
}

// WrapError classifies an existing error.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return newBuilder(category, message, err)
}

// WithContext attaches a value, e.g. the path or identifier involved.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context[key] = value
	return b
}

// Ends overrides the unit of work the failure terminates.
func (b *ErrorBuilder) Ends(unit Unit) *ErrorBuilder {
	b.err.unit = unit
	return b
}

// Build returns the error. The builder must not be reused.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	return &e
}

// ValidationError reports missing or malformed required metadata.
// The message is surfaced verbatim as the export's problem message.
func ValidationError(message string) *ErrorBuilder {
	return newBuilder(CategoryValidation, message, nil)
}

// ConfigError reports an unusable configuration or CLI input.
func ConfigError(message string) *ErrorBuilder {
	return newBuilder(CategoryConfig, message, nil)
}

// StructureError reports a node that cannot be attached where it was requested.
func StructureError(message string) *ErrorBuilder {
	return newBuilder(CategoryStructure, message, nil)
}

// FileSystemError reports a failed move, copy or staging operation.
func FileSystemError(message string) *ErrorBuilder {
	return newBuilder(CategoryFileSystem, message, nil)
}

// MetsError reports a METS document that could not be read or written.
func MetsError(message string) *ErrorBuilder {
	return newBuilder(CategoryMets, message, nil)
}

func InternalError(message string) *ErrorBuilder {
	return newBuilder(CategoryInternal, message, nil)
}
