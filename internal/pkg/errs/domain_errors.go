package errs

// Error classes shared by every layer. Concrete errors are marked with one of
// these so callers can classify them with Is or KindOf.
var (
	ErrValidation     = New("validation error")
	ErrConflict       = New("conflict")
	ErrNotFound       = New("not found")
	ErrForbidden      = New("forbidden")
	ErrTransientStore = New("store temporarily unavailable")
	ErrDelivery       = New("delivery failed")
)

// Business-rule rejections
var (
	ErrAlreadyApplied   = Define(ErrConflict, "already applied to this opportunity")
	ErrAlreadyProcessed = Define(ErrConflict, "offer has already been responded to")
	ErrInvalidState     = Define(ErrConflict, "operation not allowed in the current application state")
	ErrInvalidRound     = Define(ErrConflict, "invalid round number")
	ErrNotEligible      = Define(ErrConflict, "candidate is not eligible for this opportunity")
)

// classError is a sentinel that belongs to one class. Is matches the sentinel
// itself and its class, never a sibling of the same class.
type classError struct {
	msg   string
	class error
}

func (e *classError) Error() string { return e.msg }

func (e *classError) Is(target error) bool { return target == e.class }

// Define declares a specific sentinel inside one of the classes above.
func Define(class error, msg string) error {
	return &classError{msg: msg, class: class}
}

// ClassOf returns the class a sentinel was defined in, or nil.
func ClassOf(err error) error {
	var ce *classError
	if As(err, &ce) {
		return ce.class
	}
	return nil
}

type Kind string

const (
	KindValidation     Kind = "VALIDATION"
	KindConflict       Kind = "CONFLICT"
	KindNotFound       Kind = "NOT_FOUND"
	KindForbidden      Kind = "FORBIDDEN"
	KindTransientStore Kind = "TRANSIENT_STORE"
	KindDelivery       Kind = "DELIVERY"
	KindInternal       Kind = "INTERNAL"
)

var kindOrder = []struct {
	ref  error
	kind Kind
}{
	{ErrValidation, KindValidation},
	{ErrConflict, KindConflict},
	{ErrNotFound, KindNotFound},
	{ErrForbidden, KindForbidden},
	{ErrTransientStore, KindTransientStore},
	{ErrDelivery, KindDelivery},
}

func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kindOrder {
		if Is(err, k.ref) {
			return k.kind
		}
	}
	return KindInternal
}

func Validation(msg string) error {
	return Mark(New(msg), ErrValidation)
}

// Reason narrows a sentinel to a specific, user-facing message. The result
// matches the sentinel and its class.
func Reason(sentinel error, msg string) error {
	return Mark(New(msg), sentinel)
}

func IsRetryable(err error) bool {
	return Is(err, ErrTransientStore)
}
