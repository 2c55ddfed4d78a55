package domain

import (
	"strings"

	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// Person is the civil identity behind an account: legal name, the name they
// go by, birth date and tax identifier.
type Person struct {
	LegalName  string
	SocialName Name
	BirthDate  Date
	TaxID      TaxID
}

func NewPerson(legalName string, socialName Name, birthDate Date, taxID TaxID) (Person, error) {
	legalName = strings.TrimSpace(legalName)
	if legalName == "" {
		return Person{}, apperrors.NewValidation("invalid-field", "legal name is required")
	}
	if taxID.Kind() != TaxIDKindCPF {
		return Person{}, apperrors.NewValidation("invalid-brazilian-cpf", "Invalid Brazilian CPF")
	}
	return Person{LegalName: legalName, SocialName: socialName, BirthDate: birthDate, TaxID: taxID}, nil
}
