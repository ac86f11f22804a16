package entities

import (
	"errors"
	"testing"
)

func TestEvaluateCompletion_Complete(t *testing.T) {
	r := EvaluateCompletion(completeInput())
	if !r.Complete() {
		t.Fatalf("expected complete, missing fields=%v docs=%v", r.MissingFieldLabels, r.MissingDocuments)
	}
	if r.CompletionPercent != 100 {
		t.Fatalf("expected 100%%, got %d", r.CompletionPercent)
	}
}

func TestEvaluateCompletion_MissingNom(t *testing.T) {
	in := completeInput()
	in.Form.Nom = "   "

	r := EvaluateCompletion(in)
	if r.Complete() {
		t.Fatalf("expected incomplete")
	}
	if len(r.MissingFieldLabels) != 1 || r.MissingFieldLabels[0] != "Nom / raison sociale" {
		t.Fatalf("unexpected missing labels: %v", r.MissingFieldLabels)
	}
	if r.CompletionPercent != 100 {
		t.Fatalf("documents are all there, got %d%%", r.CompletionPercent)
	}
}

func TestEvaluateCompletion_EachRequiredInputBlocks(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*CompletionInput)
		label string
	}{
		{name: "signature", mut: func(in *CompletionInput) { in.HasSignature = false }, label: SignatureLabel},
		{name: "attestation", mut: func(in *CompletionInput) { in.Form.Attestation = false }, label: AttestationLabel},
		{name: "number", mut: func(in *CompletionInput) { in.Form.CoutTotal = nil }, label: "Coût total du projet (€)"},
		{name: "equipment", mut: func(in *CompletionInput) { in.Form.BesoinEquipement = "" }, label: "Besoin en équipement"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := completeInput()
			tc.mut(&in)
			r := EvaluateCompletion(in)
			if r.Complete() {
				t.Fatalf("expected incomplete")
			}
			found := false
			for _, l := range r.MissingFieldLabels {
				if l == tc.label {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %q in %v", tc.label, r.MissingFieldLabels)
			}
		})
	}
}

func TestEvaluateCompletion_OptionalFieldsIgnored(t *testing.T) {
	in := completeInput()
	in.Form.NumeroEDE = ""
	in.Form.Cofinancement = nil
	in.Form.NombreAnimaux = nil
	in.Form.Commentaire = ""
	if r := EvaluateCompletion(in); !r.Complete() {
		t.Fatalf("optional fields must not block: %v", r.MissingFieldLabels)
	}
}

func TestEvaluateCompletion_ZeroNumberIsSatisfied(t *testing.T) {
	in := completeInput()
	in.Form.Autofinancement = ptr(0)
	if r := EvaluateCompletion(in); !r.Complete() {
		t.Fatalf("explicit zero must count as entered: %v", r.MissingFieldLabels)
	}
}

func TestRequiredDocuments_DevisRule(t *testing.T) {
	for i, opt := range EquipmentOptions {
		form := completeForm()
		form.BesoinEquipement = opt
		hasDevis := false
		for _, k := range RequiredDocuments(form) {
			if k == DocDevis {
				hasDevis = true
			}
		}
		want := i == 3 || i == 4
		if hasDevis != want {
			t.Fatalf("option %d (%q): devis required=%v, want %v", i, opt, hasDevis, want)
		}
	}
}

func TestEvaluateCompletion_CustomEquipmentWithoutDevis(t *testing.T) {
	in := completeInput()
	in.Form.BesoinEquipement = EquipmentOptions[3]

	r := EvaluateCompletion(in)
	if r.Complete() {
		t.Fatalf("expected incomplete without devis")
	}
	if len(r.MissingDocuments) != 1 || r.MissingDocuments[0] != DocDevis {
		t.Fatalf("unexpected missing documents: %v", r.MissingDocuments)
	}
	if r.MissingDocumentLabels[0] != "Devis ou estimations des dépenses prévues" {
		t.Fatalf("unexpected label %q", r.MissingDocumentLabels[0])
	}
	if r.CompletionPercent != 93 {
		t.Fatalf("expected 13/14 rounded to 93, got %d", r.CompletionPercent)
	}

	in.Uploaded[DocDevis] = true
	if r := EvaluateCompletion(in); !r.Complete() {
		t.Fatalf("expected complete once devis is attached")
	}
}

func TestEvaluateCompletion_PercentCountsRequiredOnly(t *testing.T) {
	in := completeInput()
	in.Uploaded = map[DocumentKey]bool{DocKbis: true, DocCofinancement: true, DocIdentity: true}
	r := EvaluateCompletion(in)
	if r.CompletionPercent != 8 {
		t.Fatalf("expected 1/13 rounded to 8, got %d", r.CompletionPercent)
	}
	if len(r.MissingDocuments) != 12 {
		t.Fatalf("expected 12 missing documents, got %d", len(r.MissingDocuments))
	}
}

func TestValidateEquipmentOption(t *testing.T) {
	if err := ValidateEquipmentOption(""); err != nil {
		t.Fatalf("empty selection allowed in draft: %v", err)
	}
	if err := ValidateEquipmentOption(EquipmentOptions[2]); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := ValidateEquipmentOption("Forage"); !errors.Is(err, ErrInvalidEquipmentOption) {
		t.Fatalf("expected ErrInvalidEquipmentOption, got %v", err)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := NewValidationError(CompletionReport{
		MissingFieldLabels:    []string{"Nom / raison sociale"},
		MissingDocumentLabels: []string{"RIB professionnel"},
	})
	if err.Error() != "application incomplete, missing: Nom / raison sociale, RIB professionnel" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
