package request

import (
	"encoding/json"
	"errors"
	"strings"

	"grant_portal/internal/domain/entities"
)

var ErrInvalidFormPayload = errors.New("invalid form payload")

// ApplicationFormRequest is the draft form body. Field names are those of the
// stored form (nom, siret, besoin_equipement, ...).
type ApplicationFormRequest struct {
	entities.ApplicationForm
}

// ToForm returns the form with surrounding whitespace removed from the fields
// used for identification and search.
func (r ApplicationFormRequest) ToForm() entities.ApplicationForm {
	f := r.ApplicationForm
	f.Nom = strings.TrimSpace(f.Nom)
	f.Siret = strings.TrimSpace(f.Siret)
	f.Email = strings.TrimSpace(f.Email)
	f.Telephone = strings.TrimSpace(f.Telephone)
	f.CodePostal = strings.TrimSpace(f.CodePostal)
	f.BesoinEquipement = strings.TrimSpace(f.BesoinEquipement)
	return f
}

// ParseFormField decodes the "form" part of the multipart submission.
func ParseFormField(raw string) (entities.ApplicationForm, error) {
	if strings.TrimSpace(raw) == "" {
		return entities.ApplicationForm{}, ErrInvalidFormPayload
	}
	var r ApplicationFormRequest
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return entities.ApplicationForm{}, errors.Join(ErrInvalidFormPayload, err)
	}
	return r.ToForm(), nil
}

// LandingQuery carries the explicit edit link flag.
type LandingQuery struct {
	Edit bool `form:"edit"`
}
