package domain

import (
	"regexp"
	"strings"

	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// PhoneCountry records which normalization path accepted a number.
type PhoneCountry string

const (
	PhoneCountryE164 PhoneCountry = "E164"
	PhoneCountryUS   PhoneCountry = "US"
	PhoneCountryBR   PhoneCountry = "BR"
)

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// Phone is a contact number stored in E.164 form.
type Phone struct {
	country PhoneCountry
	e164    string
}

// NewPhone normalizes raw to E.164. Strict E.164 input wins over the US and BR
// shapes, which in turn win over the permissive digits-only guess.
func NewPhone(raw string) (Phone, error) {
	trimmed := strings.TrimSpace(raw)

	if isE164(trimmed) {
		return Phone{country: PhoneCountryE164, e164: trimmed}, nil
	}
	if e164, ok := normalizeUS(trimmed); ok {
		return Phone{country: PhoneCountryUS, e164: e164}, nil
	}
	if e164, ok := normalizeBR(trimmed); ok {
		return Phone{country: PhoneCountryBR, e164: e164}, nil
	}
	if e164, ok := guessE164(trimmed); ok {
		return Phone{country: PhoneCountryE164, e164: e164}, nil
	}
	return Phone{}, invalidPhone()
}

// PhoneFromStored rebuilds a phone persisted as its E.164 form plus the
// country tag NewPhone assigned. Normalization is not re-run, so the tag
// survives; NewPhone on the E.164 form alone would always tag it E164.
func PhoneFromStored(e164 string, country PhoneCountry) (Phone, error) {
	switch country {
	case PhoneCountryE164, PhoneCountryUS, PhoneCountryBR:
	default:
		return Phone{}, invalidPhone()
	}
	p := Phone{country: country, e164: e164}
	if err := p.Validate(); err != nil {
		return Phone{}, err
	}
	return p, nil
}

// Validate re-asserts that the stored number is strict E.164.
func (p Phone) Validate() error {
	if isE164(p.e164) {
		return nil
	}
	return invalidPhone()
}

func (p Phone) String() string {
	return p.e164
}

func (p Phone) Country() PhoneCountry {
	return p.country
}

func invalidPhone() error {
	return apperrors.NewValidation("invalid-phone", "Invalid or unsupported phone format")
}

func isE164(s string) bool {
	return e164Pattern.MatchString(s)
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeUS accepts NPA-NXX-XXXX with an optional leading 1.
func normalizeUS(s string) (string, bool) {
	digits := digitsOnly(s)
	var national string
	switch {
	case len(digits) == 10:
		national = digits
	case len(digits) == 11 && digits[0] == '1':
		national = digits[1:]
	default:
		return "", false
	}
	// NANP: area code and exchange never start with 0 or 1.
	if national[0] < '2' || national[3] < '2' {
		return "", false
	}
	return "+1" + national, true
}

// normalizeBR accepts DDD + 8 digit landline or DDD + 9 digit mobile, with an optional 55 prefix.
func normalizeBR(s string) (string, bool) {
	digits := strings.TrimPrefix(digitsOnly(s), "55")
	if len(digits) != 10 && len(digits) != 11 {
		return "", false
	}
	return "+55" + digits, true
}

func guessE164(s string) (string, bool) {
	digits := digitsOnly(s)
	if len(digits) < 8 || len(digits) > 15 || digits[0] == '0' {
		return "", false
	}
	return "+" + digits, true
}
