package entities

import "time"

// Application is the grant application persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: user_id (one application per user)
//   - GSI id-index: id
//   - GSI status-index: status + created_at
//
// Version is bumped on every write and checked on workflow transitions, so a
// reviewer decision never silently overwrites a concurrent one.
type Application struct {
	ID     string            `json:"id"`
	UserID string            `json:"user_id"`
	Status ApplicationStatus `json:"status"`

	Form ApplicationForm `json:"form"`

	RefusalReason         string `json:"refusal_reason,omitempty"`
	MissingElementsReason string `json:"missing_elements_reason,omitempty"`
	ReviewerComment       string `json:"reviewer_comment,omitempty"`
	SignaturePath         string `json:"signature_path,omitempty"`

	Version     int64      `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// NewDraftApplication returns the record created on the first draft save.
func NewDraftApplication(id, userID string, now time.Time) Application {
	return Application{
		ID:        id,
		UserID:    userID,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (a Application) Exists() bool {
	return a.ID != ""
}

// CurrentStatus treats an absent record as a draft.
func (a Application) CurrentStatus() ApplicationStatus {
	if a.Status == "" {
		return StatusDraft
	}
	return a.Status
}

func (a Application) HasSignature() bool {
	return a.SignaturePath != ""
}

// VisibleReason is the reviewer message shown on the applicant status page.
func (a Application) VisibleReason() string {
	switch a.Status {
	case StatusRefused:
		return a.RefusalReason
	case StatusMissingElements:
		return a.MissingElementsReason
	default:
		return ""
	}
}

// ApplicationForm holds every applicant-entered field. Numbers are pointers so
// an untouched input is distinguishable from an explicit zero.
type ApplicationForm struct {
	// Identification of the farm.
	Nom                   string   `json:"nom" dynamodbav:"nom"`
	Siret                 string   `json:"siret" dynamodbav:"siret"`
	FormeJuridique        string   `json:"forme_juridique" dynamodbav:"forme_juridique"`
	RepresentantLegal     string   `json:"representant_legal" dynamodbav:"representant_legal"`
	Adresse               string   `json:"adresse" dynamodbav:"adresse"`
	CodePostal            string   `json:"code_postal" dynamodbav:"code_postal"`
	Commune               string   `json:"commune" dynamodbav:"commune"`
	Telephone             string   `json:"telephone" dynamodbav:"telephone"`
	Email                 string   `json:"email" dynamodbav:"email"`
	NumeroMSA             string   `json:"numero_msa" dynamodbav:"numero_msa"`
	NumeroPacage          string   `json:"numero_pacage" dynamodbav:"numero_pacage"`
	DateInstallation      string   `json:"date_installation" dynamodbav:"date_installation"`
	SurfaceExploitationHa *float64 `json:"surface_exploitation_ha,omitempty" dynamodbav:"surface_exploitation_ha,omitempty"`
	TypeProduction        string   `json:"type_production" dynamodbav:"type_production"`
	NumeroEDE             string   `json:"numero_ede" dynamodbav:"numero_ede"`

	// Water storage project.
	DescriptionProjet            string   `json:"description_projet" dynamodbav:"description_projet"`
	BesoinEquipement             string   `json:"besoin_equipement" dynamodbav:"besoin_equipement"`
	VolumeStockageM3             *float64 `json:"volume_stockage_m3,omitempty" dynamodbav:"volume_stockage_m3,omitempty"`
	SurfaceImpluviumM2           *float64 `json:"surface_impluvium_m2,omitempty" dynamodbav:"surface_impluvium_m2,omitempty"`
	UsageEau                     string   `json:"usage_eau" dynamodbav:"usage_eau"`
	CulturesConcernees           string   `json:"cultures_concernees" dynamodbav:"cultures_concernees"`
	BesoinEauJournalierM3        *float64 `json:"besoin_eau_journalier_m3,omitempty" dynamodbav:"besoin_eau_journalier_m3,omitempty"`
	NombreAnimaux                *float64 `json:"nombre_animaux,omitempty" dynamodbav:"nombre_animaux,omitempty"`
	LocalisationProjet           string   `json:"localisation_projet" dynamodbav:"localisation_projet"`
	Fournisseur                  string   `json:"fournisseur" dynamodbav:"fournisseur"`
	DelaiLivraison               string   `json:"delai_livraison" dynamodbav:"delai_livraison"`
	DateDebutTravaux             string   `json:"date_debut_travaux" dynamodbav:"date_debut_travaux"`
	DateFinTravaux               string   `json:"date_fin_travaux" dynamodbav:"date_fin_travaux"`
	CoutEquipement               *float64 `json:"cout_equipement,omitempty" dynamodbav:"cout_equipement,omitempty"`
	CoutPose                     *float64 `json:"cout_pose,omitempty" dynamodbav:"cout_pose,omitempty"`
	CoutTerrassement             *float64 `json:"cout_terrassement,omitempty" dynamodbav:"cout_terrassement,omitempty"`
	CoutGouttieres               *float64 `json:"cout_gouttieres,omitempty" dynamodbav:"cout_gouttieres,omitempty"`
	CoutPompage                  *float64 `json:"cout_pompage,omitempty" dynamodbav:"cout_pompage,omitempty"`
	CoutMainOeuvre               *float64 `json:"cout_main_oeuvre,omitempty" dynamodbav:"cout_main_oeuvre,omitempty"`
	CoutTotal                    *float64 `json:"cout_total,omitempty" dynamodbav:"cout_total,omitempty"`
	MontantAideDemande           *float64 `json:"montant_aide_demande,omitempty" dynamodbav:"montant_aide_demande,omitempty"`
	Autofinancement              *float64 `json:"autofinancement,omitempty" dynamodbav:"autofinancement,omitempty"`
	Cofinancement                *float64 `json:"cofinancement,omitempty" dynamodbav:"cofinancement,omitempty"`
	DisposeInstallationExistante string   `json:"dispose_installation_existante" dynamodbav:"dispose_installation_existante"`
	Commentaire                  string   `json:"commentaire" dynamodbav:"commentaire"`

	Attestation bool `json:"attestation" dynamodbav:"attestation"`
}
