package entities

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidEquipmentOption = errors.New("invalid besoin_equipement option")

// baseRequiredDocuments are mandatory whatever the project looks like.
var baseRequiredDocuments = []DocumentKey{
	DocIdentity,
	DocDomiciliation,
	DocRIB,
	DocMSA,
	DocFiscal,
	DocPlan,
	DocFoncier,
	DocPAC,
	DocProductions,
	DocBilans,
	DocFinancement,
	DocNote,
	DocNonRecours,
}

// RequiredDocuments returns the mandatory upload list for the given form. The
// quote becomes mandatory only for bespoke equipment.
func RequiredDocuments(form ApplicationForm) []DocumentKey {
	out := make([]DocumentKey, 0, len(baseRequiredDocuments)+1)
	out = append(out, baseRequiredDocuments...)
	if EquipmentNeedsQuote(form.BesoinEquipement) {
		out = append(out, DocDevis)
	}
	return out
}

// ValidateEquipmentOption accepts an empty selection (draft) or a listed option.
func ValidateEquipmentOption(option string) error {
	if option == "" {
		return nil
	}
	for _, o := range EquipmentOptions {
		if o == option {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidEquipmentOption, option)
}

// CompletionInput is everything the tracker looks at.
type CompletionInput struct {
	Form         ApplicationForm
	Uploaded     map[DocumentKey]bool
	HasSignature bool
}

// CompletionReport is the tracker output.
//
// CompletionPercent only counts required documents and drives the progress
// bar; submission additionally needs every label list to be empty.
type CompletionReport struct {
	CompletionPercent     int           `json:"completion_percent"`
	MissingFieldLabels    []string      `json:"missing_field_labels"`
	MissingDocuments      []DocumentKey `json:"missing_documents"`
	MissingDocumentLabels []string      `json:"missing_document_labels"`
	RequiredDocuments     []DocumentKey `json:"required_documents"`
}

func (r CompletionReport) Complete() bool {
	return len(r.MissingFieldLabels) == 0 && len(r.MissingDocuments) == 0
}

// EvaluateCompletion computes the progress percentage and the itemized list of
// what is still missing before submission.
func EvaluateCompletion(in CompletionInput) CompletionReport {
	report := CompletionReport{
		MissingFieldLabels:    []string{},
		MissingDocuments:      []DocumentKey{},
		MissingDocumentLabels: []string{},
	}

	for _, f := range FormFields {
		if f.Required && !f.Satisfied(in.Form) {
			report.MissingFieldLabels = append(report.MissingFieldLabels, f.Label)
		}
	}
	if !in.HasSignature {
		report.MissingFieldLabels = append(report.MissingFieldLabels, SignatureLabel)
	}

	required := RequiredDocuments(in.Form)
	report.RequiredDocuments = required
	uploaded := 0
	for _, key := range required {
		if in.Uploaded[key] {
			uploaded++
			continue
		}
		report.MissingDocuments = append(report.MissingDocuments, key)
		report.MissingDocumentLabels = append(report.MissingDocumentLabels, key.Label())
	}
	report.CompletionPercent = int(math.Round(float64(uploaded) / float64(len(required)) * 100))
	return report
}

// ValidationError is returned when a submission is attempted on an incomplete
// application. Nothing has been written when it is returned.
type ValidationError struct {
	MissingFieldLabels    []string
	MissingDocuments      []DocumentKey
	MissingDocumentLabels []string
}

func NewValidationError(r CompletionReport) *ValidationError {
	return &ValidationError{
		MissingFieldLabels:    r.MissingFieldLabels,
		MissingDocuments:      r.MissingDocuments,
		MissingDocumentLabels: r.MissingDocumentLabels,
	}
}

func (e *ValidationError) Error() string {
	missing := make([]string, 0, len(e.MissingFieldLabels)+len(e.MissingDocumentLabels))
	missing = append(missing, e.MissingFieldLabels...)
	missing = append(missing, e.MissingDocumentLabels...)
	return "application incomplete, missing: " + strings.Join(missing, ", ")
}
