package entities

func ptr(v float64) *float64 { return &v }

func completeForm() ApplicationForm {
	return ApplicationForm{
		Nom:                          "EARL Maoré Vert",
		Siret:                        "12345678900011",
		FormeJuridique:               "EARL",
		RepresentantLegal:            "Ali Madi",
		Adresse:                      "12 rue du Lagon",
		CodePostal:                   "97600",
		Commune:                      "Mamoudzou",
		Telephone:                    "0639000000",
		Email:                        "contact@maore-vert.yt",
		NumeroMSA:                    "MSA-976-001",
		NumeroPacage:                 "976001234",
		DateInstallation:             "2019-04-01",
		SurfaceExploitationHa:        ptr(3.5),
		TypeProduction:               "Maraîchage",
		DescriptionProjet:            "Récupération des eaux pluviales du hangar",
		BesoinEquipement:             EquipmentOptions[0],
		VolumeStockageM3:             ptr(20),
		SurfaceImpluviumM2:           ptr(25),
		UsageEau:                     "Irrigation",
		CulturesConcernees:           "Tomates, salades",
		LocalisationProjet:           "Parcelle AB 12",
		Fournisseur:                  "Agri Mayotte",
		DelaiLivraison:               "4 semaines",
		DateDebutTravaux:             "2025-06-01",
		DateFinTravaux:               "2025-08-15",
		CoutEquipement:               ptr(6000),
		CoutPose:                     ptr(1200),
		CoutTotal:                    ptr(7200),
		MontantAideDemande:           ptr(7000),
		Autofinancement:              ptr(200),
		DisposeInstallationExistante: "non",
		Attestation:                  true,
	}
}

func allBaseDocuments() map[DocumentKey]bool {
	out := map[DocumentKey]bool{}
	for _, k := range baseRequiredDocuments {
		out[k] = true
	}
	return out
}

func completeInput() CompletionInput {
	return CompletionInput{Form: completeForm(), Uploaded: allBaseDocuments(), HasSignature: true}
}
