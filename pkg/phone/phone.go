package phone

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ValidationError reports why a phone number was rejected. The message is
// safe to hand back to the caller verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid phone number: " + e.Reason
}

// Number is a North American (NANP) phone number in E.164 form, +1NXXNXXXXXX.
// The zero value is empty; every non-empty Number went through ParseNorthAmerican.
type Number struct {
	e164 string
}

// ParseNorthAmerican parses a NANP phone number into E.164 format.
//
// Accepts formats like:
//
//	555-234-5678, (555) 234-5678, 5552345678, +15552345678
func ParseNorthAmerican(input string) (Number, error) {
	var b strings.Builder
	for i := 0; i < len(input); i++ {
		if c := input[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	digits := b.String()

	var ten string
	switch {
	case len(digits) == 11 && digits[0] == '1':
		ten = digits[1:]
	case len(digits) == 10:
		ten = digits
	default:
		return Number{}, &ValidationError{
			Reason: fmt.Sprintf("expected 10-digit NANP number, got %d digits", len(digits)),
		}
	}

	// area code (NPA) and exchange (NXX) must start with 2-9
	if ten[0] == '0' || ten[0] == '1' {
		return Number{}, &ValidationError{Reason: "area code must start with 2-9"}
	}
	if ten[3] == '0' || ten[3] == '1' {
		return Number{}, &ValidationError{Reason: "exchange must start with 2-9"}
	}

	return Number{e164: "+1" + ten}, nil
}

func (n Number) String() string {
	return n.e164
}

func (n Number) IsZero() bool {
	return n.e164 == ""
}

// National renders the number for display, e.g. (555) 234-5678.
func (n Number) National() string {
	if n.IsZero() {
		return ""
	}
	parsed, err := phonenumbers.Parse(n.e164, "US")
	if err != nil {
		return n.e164
	}
	return phonenumbers.Format(parsed, phonenumbers.NATIONAL)
}

// Value stores the canonical string.
func (n Number) Value() (driver.Value, error) {
	return n.e164, nil
}

// Scan re-parses the stored value so a Number read back from the database
// carries the same guarantees as one built by ParseNorthAmerican.
func (n *Number) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*n = Number{}
		return nil
	default:
		return fmt.Errorf("phone: cannot scan %T", src)
	}
	parsed, err := ParseNorthAmerican(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.e164)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseNorthAmerican(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
