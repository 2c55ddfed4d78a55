package domain

import (
	"regexp"

	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

const cpfLength = 11

// TaxIDKind distinguishes Brazilian individual and corporate tax identifiers.
type TaxIDKind string

const (
	TaxIDKindCPF  TaxIDKind = "CPF"
	TaxIDKindCNPJ TaxIDKind = "CNPJ"
)

var (
	cpfPattern  = regexp.MustCompile(`^(\d{3})(\d{3})(\d{3})(\d{2})$`)
	cnpjPattern = regexp.MustCompile(`^(\d{2})(\d{3})(\d{3})(\d{4})(\d{2})$`)
)

// TaxID is a raw CPF or CNPJ digit string. Only the digit-group shape is checked;
// there is no mod-11 checksum verification.
type TaxID struct {
	kind TaxIDKind
	raw  string
}

// NewTaxID tags raw by its length (11 means CPF, anything else CNPJ) and
// validates the shape for that tag.
func NewTaxID(raw string) (TaxID, error) {
	id := classifyTaxID(raw)
	if err := id.Validate(); err != nil {
		return TaxID{}, err
	}
	return id, nil
}

func classifyTaxID(raw string) TaxID {
	if len(raw) == cpfLength {
		return TaxID{kind: TaxIDKindCPF, raw: raw}
	}
	return TaxID{kind: TaxIDKindCNPJ, raw: raw}
}

func (t TaxID) Kind() TaxIDKind {
	return t.kind
}

// Raw returns the undecorated digits.
func (t TaxID) Raw() string {
	return t.raw
}

func (t TaxID) String() string {
	return t.raw
}

// Format returns the punctuated form: XXX.XXX.XXX-XX or XX.XXX.XXX/XXXX-XX.
func (t TaxID) Format() (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	if t.kind == TaxIDKindCPF {
		return cpfPattern.ReplaceAllString(t.raw, "$1.$2.$3-$4"), nil
	}
	return cnpjPattern.ReplaceAllString(t.raw, "$1.$2.$3/$4-$5"), nil
}

func (t TaxID) Validate() error {
	if t.kind == TaxIDKindCPF {
		if cpfPattern.MatchString(t.raw) {
			return nil
		}
		return apperrors.NewValidation("invalid-brazilian-cpf", "Invalid Brazilian CPF")
	}
	if cnpjPattern.MatchString(t.raw) {
		return nil
	}
	return apperrors.NewValidation("invalid-brazilian-cnpj", "Invalid Brazilian CNPJ")
}
