package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLayout      Phase = "layout"      // shape definition
	PhaseReinterpret Phase = "reinterpret" // buffer to record
	PhaseEncode      Phase = "encode"      // record to buffer (caller side)
	PhaseDecode      Phase = "decode"      // text reference to string
	PhaseCompute     Phase = "compute"     // terminal routines
	PhaseHost        Phase = "host"        // host module registration and calls
	PhaseLoad        Phase = "load"        // guest loading
	PhaseRuntime     Phase = "runtime"     // runtime operations
	PhaseConfig      Phase = "config"      // configuration parsing
)

// Kind categorizes the error
type Kind string

const (
	KindBufferTooSmall Kind = "buffer_too_small"
	KindNullReference  Kind = "null_reference"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindUnterminated   Kind = "unterminated"
	KindTypeMismatch   Kind = "type_mismatch"
	KindFieldMissing   Kind = "field_missing"
	KindInvalidSchema  Kind = "invalid_schema"
	KindInvalidData    Kind = "invalid_data"
	KindInvalidInput   Kind = "invalid_input"
	KindUnsupported    Kind = "unsupported"
	KindMissingImport  Kind = "missing_import"
	KindNotFound       Kind = "not_found"
	KindNotInitialized Kind = "not_initialized"
	KindRegistration   Kind = "registration"
	KindInstantiation  Kind = "instantiation"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Shape    string
	Detail   string
	Path     []string
	Required uint32 // minimum buffer length, set for KindBufferTooSmall
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Shape != "" {
		b.WriteString(" in ")
		b.WriteString(e.Shape)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Shape sets the layout shape name
func (b *Builder) Shape(name string) *Builder {
	b.err.Shape = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// BufferTooSmall creates the size negotiation error. Required carries the
// minimum length the caller must supply for shape.
func BufferTooSmall(phase Phase, shape string, required uint32, got int32) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindBufferTooSmall,
		Shape:    shape,
		Required: required,
		Value:    got,
		Detail:   fmt.Sprintf("buffer length %d, need %d", got, required),
	}
}

// NullReference creates a null pointer error
func NullReference(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullReference,
		Path:   path,
		Detail: "null reference",
	}
}

// OutOfBounds creates an error for a range that does not fit in memory
func OutOfBounds(phase Phase, path []string, offset uint64, length uint64, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Value:  offset,
		Detail: fmt.Sprintf("range [%d, %d) exceeds memory size %d", offset, offset+length, size),
	}
}

// Unterminated creates an error for text with no terminator in range
func Unterminated(phase Phase, path []string, ptr uint64, scanned uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnterminated,
		Path:   path,
		Value:  ptr,
		Detail: fmt.Sprintf("no terminator within %d bytes of %#x", scanned, ptr),
	}
}

// TypeMismatch creates an error for a field read with the wrong kind
func TypeMismatch(phase Phase, shape string, path []string, want, got string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Shape:  shape,
		Path:   path,
		Detail: fmt.Sprintf("field is %s, not %s", got, want),
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, shape string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Shape:  shape,
		Path:   []string{fieldName},
		Detail: fmt.Sprintf("field %q not found", fieldName),
	}
}

// InvalidSchema creates a shape definition error
func InvalidSchema(shape string, detail string) *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   KindInvalidSchema,
		Shape:  shape,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotInitialized creates a not-initialized error for missing module/instance
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Registration creates a host registration error
func Registration(namespace, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s#%s", namespace, name),
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a guest loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries kind, regardless of phase.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// RequiredSize extracts the minimum buffer length from a size error.
func RequiredSize(err error) (uint32, bool) {
	var e *Error
	if stderrors.As(err, &e) && e.Kind == KindBufferTooSmall {
		return e.Required, true
	}
	return 0, false
}

// MissingImport represents a single unresolved guest import
type MissingImport struct {
	Module   string // e.g., "bridge"
	Function string // e.g., "hello"
}

// MissingImportsError is returned when a guest imports bridge functions the
// host module does not export
type MissingImportsError struct {
	Imports []MissingImport
}

// NewMissingImportsError creates an error from a list of "module#function" strings
func NewMissingImportsError(imports []string) *MissingImportsError {
	result := &MissingImportsError{
		Imports: make([]MissingImport, 0, len(imports)),
	}
	for _, imp := range imports {
		mod, fn, found := strings.Cut(imp, "#")
		if !found {
			mod, fn = imp, ""
		}
		result.Imports = append(result.Imports, MissingImport{
			Module:   mod,
			Function: fn,
		})
	}
	return result
}

func (e *MissingImportsError) Error() string {
	if len(e.Imports) == 0 {
		return "[load] missing_import: no imports specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "missing %d bridge function(s):", len(e.Imports))
	for _, imp := range e.Imports {
		b.WriteString("\n  - ")
		b.WriteString(imp.Module)
		b.WriteByte('#')
		b.WriteString(imp.Function)
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *MissingImportsError) Is(target error) bool {
	_, ok := target.(*MissingImportsError)
	return ok
}
