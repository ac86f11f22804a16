package entities

import (
	"errors"
	"fmt"
	"time"
)

// DocumentKey identifies the kind of supporting document an upload satisfies.
type DocumentKey string

const (
	DocIdentity      DocumentKey = "identity"
	DocDomiciliation DocumentKey = "domiciliation"
	DocRIB           DocumentKey = "rib"
	DocKbis          DocumentKey = "kbis"
	DocMSA           DocumentKey = "msa"
	DocFiscal        DocumentKey = "fiscal"
	DocPlan          DocumentKey = "plan"
	DocFoncier       DocumentKey = "foncier"
	DocPAC           DocumentKey = "pac"
	DocProductions   DocumentKey = "productions"
	DocBilans        DocumentKey = "bilans"
	DocFinancement   DocumentKey = "financement"
	DocDevis         DocumentKey = "devis"
	DocNote          DocumentKey = "note"
	DocCofinancement DocumentKey = "cofinancement"
	DocNonRecours    DocumentKey = "nonrecours"
)

var ErrInvalidDocumentKey = errors.New("invalid document key")

// DocumentType describes one entry of the upload checklist.
type DocumentType struct {
	Key   DocumentKey `json:"key"`
	Label string      `json:"label"`
}

// DocumentTypes is the upload checklist in display order.
var DocumentTypes = []DocumentType{
	{Key: DocIdentity, Label: "Pièce d'identité du représentant légal"},
	{Key: DocDomiciliation, Label: "Justificatif de domiciliation"},
	{Key: DocRIB, Label: "RIB professionnel"},
	{Key: DocKbis, Label: "Extrait Kbis (si société agricole)"},
	{Key: DocMSA, Label: "Attestation d'affiliation MSA"},
	{Key: DocFiscal, Label: "Attestation de régularité fiscale"},
	{Key: DocPlan, Label: "Plan ou schéma de l'exploitation"},
	{Key: DocFoncier, Label: "Justificatifs de foncier"},
	{Key: DocPAC, Label: "Dernier relevé PAC"},
	{Key: DocProductions, Label: "Présentation des productions"},
	{Key: DocBilans, Label: "Bilans ou comptes de résultats"},
	{Key: DocFinancement, Label: "Plan de financement prévisionnel"},
	{Key: DocDevis, Label: "Devis ou estimations des dépenses prévues"},
	{Key: DocNote, Label: "Note de présentation du projet"},
	{Key: DocCofinancement, Label: "Attestation(s) de cofinancement éventuel"},
	{Key: DocNonRecours, Label: "Attestation de non-recours à des financements incompatibles"},
}

func ParseDocumentKey(s string) (DocumentKey, error) {
	for _, dt := range DocumentTypes {
		if string(dt.Key) == s {
			return dt.Key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDocumentKey, s)
}

// Label returns the checklist label, or the raw key when unknown.
func (k DocumentKey) Label() string {
	for _, dt := range DocumentTypes {
		if dt.Key == k {
			return dt.Label
		}
	}
	return string(k)
}

// Document is one uploaded file attached to a user's application.
//
// Storage model (DynamoDB):
//   - PK: user_id
//   - SK: id
//
// Uploading twice for the same key adds a second row; nothing is replaced.
type Document struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	DocKey      DocumentKey `json:"doc_key"`
	FilePath    string      `json:"file_path"`
	FileName    string      `json:"file_name"`
	ContentType string      `json:"content_type"`
	SizeBytes   int64       `json:"size_bytes"`
	CreatedAt   time.Time   `json:"created_at"`
}

// DocumentKeySet collects the distinct keys of the given uploads.
func DocumentKeySet(docs []Document) map[DocumentKey]bool {
	out := make(map[DocumentKey]bool, len(docs))
	for _, d := range docs {
		out[d.DocKey] = true
	}
	return out
}
