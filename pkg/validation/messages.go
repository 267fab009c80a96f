package validation

// Kind identifies the check that produced a failure. The string values double
// as keys of the message table.
type Kind string

const (
	KindRequired  Kind = "required"
	KindEmail     Kind = "email"
	KindPattern   Kind = "pattern"
	KindMinLength Kind = "minlength"
	KindMaxLength Kind = "maxlength"
	KindMin       Kind = "min"
	KindMax       Kind = "max"
	KindCustom    Kind = "custom"
)

// CustomFailureMessage is used when a custom check fails without a message.
const CustomFailureMessage = "Invalid value"

// Messages maps a Kind (as string) to the failure text surfaced for it.
type Messages map[string]string

// DefaultMessages returns a fresh copy of the built-in message table.
func DefaultMessages() Messages {
	return Messages{
		string(KindRequired):  "This field is required",
		string(KindEmail):     "Please enter a valid email address",
		string(KindPattern):   "Please enter a valid value",
		string(KindMinLength): "Value is too short",
		string(KindMaxLength): "Value is too long",
		string(KindMin):       "Value is too small",
		string(KindMax):       "Value is too large",
	}
}

// Merge returns a new table holding m overlaid with overrides. Empty override
// values are ignored so a blank entry cannot erase a default. Neither input is
// modified.
func (m Messages) Merge(overrides map[string]string) Messages {
	out := make(Messages, len(m)+len(overrides))
	for key, value := range m {
		out[key] = value
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// For returns the message registered for kind.
func (m Messages) For(kind Kind) string {
	return m[string(kind)]
}
