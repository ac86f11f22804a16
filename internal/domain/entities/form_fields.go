package entities

import "strings"

// FieldKind drives how a required field is judged satisfied.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldBool
)

// FormField is one entry of the application form definition.
type FormField struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool

	text   func(ApplicationForm) string
	number func(ApplicationForm) *float64
	flag   func(ApplicationForm) bool
}

// Satisfied applies the submission rule for one field: trimmed text must be
// non-empty, a number must have been entered and a boolean must be true.
func (f FormField) Satisfied(form ApplicationForm) bool {
	switch f.Kind {
	case FieldText:
		return strings.TrimSpace(f.text(form)) != ""
	case FieldNumber:
		return f.number(form) != nil
	case FieldBool:
		return f.flag(form)
	}
	return false
}

func textField(key, label string, required bool, get func(ApplicationForm) string) FormField {
	return FormField{Key: key, Label: label, Kind: FieldText, Required: required, text: get}
}

func numberField(key, label string, required bool, get func(ApplicationForm) *float64) FormField {
	return FormField{Key: key, Label: label, Kind: FieldNumber, Required: required, number: get}
}

// EquipmentOptions are the values accepted for besoin_equipement. The last two
// describe a bespoke installation that can only be priced with a quote.
var EquipmentOptions = []string{
	"Cuve en plastique opaque",
	"Cuve métallique en acier galvanisé avec pied",
	"Citerne souple",
	"Micro-bassine ou réservoir creusé (sur mesure)",
	"Réservoir de type water-tank (sur mesure)",
}

// EquipmentNeedsQuote reports whether the selected equipment makes the devis
// document mandatory.
func EquipmentNeedsQuote(option string) bool {
	return option == EquipmentOptions[3] || option == EquipmentOptions[4]
}

const (
	AttestationLabel = "Attestation sur l'honneur"
	SignatureLabel   = "Signature"
)

// FormFields is the complete form definition. Optional entries are the fixed
// allow-list of nice-to-have details; everything else is required at submit.
var FormFields = []FormField{
	textField("nom", "Nom / raison sociale", true, func(f ApplicationForm) string { return f.Nom }),
	textField("siret", "Numéro SIRET", true, func(f ApplicationForm) string { return f.Siret }),
	textField("forme_juridique", "Forme juridique", true, func(f ApplicationForm) string { return f.FormeJuridique }),
	textField("representant_legal", "Représentant légal", true, func(f ApplicationForm) string { return f.RepresentantLegal }),
	textField("adresse", "Adresse", true, func(f ApplicationForm) string { return f.Adresse }),
	textField("code_postal", "Code postal", true, func(f ApplicationForm) string { return f.CodePostal }),
	textField("commune", "Commune", true, func(f ApplicationForm) string { return f.Commune }),
	textField("telephone", "Téléphone", true, func(f ApplicationForm) string { return f.Telephone }),
	textField("email", "Adresse e-mail", true, func(f ApplicationForm) string { return f.Email }),
	textField("numero_msa", "Numéro MSA", true, func(f ApplicationForm) string { return f.NumeroMSA }),
	textField("numero_pacage", "Numéro PACAGE", true, func(f ApplicationForm) string { return f.NumeroPacage }),
	textField("date_installation", "Date d'installation", true, func(f ApplicationForm) string { return f.DateInstallation }),
	numberField("surface_exploitation_ha", "Surface de l'exploitation (ha)", true, func(f ApplicationForm) *float64 { return f.SurfaceExploitationHa }),
	textField("type_production", "Type de production", true, func(f ApplicationForm) string { return f.TypeProduction }),
	textField("numero_ede", "Numéro EDE", false, func(f ApplicationForm) string { return f.NumeroEDE }),

	textField("description_projet", "Description du projet", true, func(f ApplicationForm) string { return f.DescriptionProjet }),
	textField("besoin_equipement", "Besoin en équipement", true, func(f ApplicationForm) string { return f.BesoinEquipement }),
	numberField("volume_stockage_m3", "Volume de stockage (m³)", true, func(f ApplicationForm) *float64 { return f.VolumeStockageM3 }),
	numberField("surface_impluvium_m2", "Surface d'impluvium (m²)", true, func(f ApplicationForm) *float64 { return f.SurfaceImpluviumM2 }),
	textField("usage_eau", "Usage de l'eau", true, func(f ApplicationForm) string { return f.UsageEau }),
	textField("cultures_concernees", "Cultures ou élevages concernés", true, func(f ApplicationForm) string { return f.CulturesConcernees }),
	numberField("besoin_eau_journalier_m3", "Besoin en eau journalier (m³)", false, func(f ApplicationForm) *float64 { return f.BesoinEauJournalierM3 }),
	numberField("nombre_animaux", "Nombre d'animaux", false, func(f ApplicationForm) *float64 { return f.NombreAnimaux }),
	textField("localisation_projet", "Localisation du projet", true, func(f ApplicationForm) string { return f.LocalisationProjet }),
	textField("fournisseur", "Fournisseur", true, func(f ApplicationForm) string { return f.Fournisseur }),
	textField("delai_livraison", "Délai de livraison", true, func(f ApplicationForm) string { return f.DelaiLivraison }),
	textField("date_debut_travaux", "Date de début des travaux", true, func(f ApplicationForm) string { return f.DateDebutTravaux }),
	textField("date_fin_travaux", "Date de fin des travaux", true, func(f ApplicationForm) string { return f.DateFinTravaux }),
	numberField("cout_equipement", "Coût de l'équipement (€)", true, func(f ApplicationForm) *float64 { return f.CoutEquipement }),
	numberField("cout_pose", "Coût de la pose (€)", true, func(f ApplicationForm) *float64 { return f.CoutPose }),
	numberField("cout_terrassement", "Coût du terrassement (€)", false, func(f ApplicationForm) *float64 { return f.CoutTerrassement }),
	numberField("cout_gouttieres", "Coût des gouttières et raccordements (€)", false, func(f ApplicationForm) *float64 { return f.CoutGouttieres }),
	numberField("cout_pompage", "Coût du matériel de pompage (€)", false, func(f ApplicationForm) *float64 { return f.CoutPompage }),
	numberField("cout_main_oeuvre", "Coût de la main-d'œuvre (€)", false, func(f ApplicationForm) *float64 { return f.CoutMainOeuvre }),
	numberField("cout_total", "Coût total du projet (€)", true, func(f ApplicationForm) *float64 { return f.CoutTotal }),
	numberField("montant_aide_demande", "Montant de l'aide demandée (€)", true, func(f ApplicationForm) *float64 { return f.MontantAideDemande }),
	numberField("autofinancement", "Autofinancement (€)", true, func(f ApplicationForm) *float64 { return f.Autofinancement }),
	numberField("cofinancement", "Cofinancement (€)", false, func(f ApplicationForm) *float64 { return f.Cofinancement }),
	textField("dispose_installation_existante", "Installation de stockage existante", true, func(f ApplicationForm) string { return f.DisposeInstallationExistante }),
	textField("commentaire", "Commentaire", false, func(f ApplicationForm) string { return f.Commentaire }),

	{Key: "attestation", Label: AttestationLabel, Kind: FieldBool, Required: true, flag: func(f ApplicationForm) bool { return f.Attestation }},
}

// FieldLabel maps a form key to its label; unknown keys map to themselves.
func FieldLabel(key string) string {
	for _, f := range FormFields {
		if f.Key == key {
			return f.Label
		}
	}
	return key
}
