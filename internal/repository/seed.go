package repository

import "agribot/internal/model"

func advice(s string) *string { return &s }

// DefaultBundle returns the sample knowledge base for Burkina Faso
func DefaultBundle() *model.KnowledgeBundle {
	return &model.KnowledgeBundle{
		Soils: []model.SoilImport{
			{Name: "sablonneux", Description: "Sols légers, pauvres en matière organique, se réchauffent vite mais retiennent peu l'eau."},
			{Name: "argilo-limoneux", Description: "Sols fertiles, bons pour de nombreuses cultures mais sensibles au tassement."},
			{Name: "ferrugineux tropicaux", Description: "Sols dominants au Burkina, souvent pauvres en matière organique."},
		},
		Crops: []model.CropImport{
			{
				Name:        "Maïs",
				Type:        "céréale",
				CycleDays:   90,
				Description: "Céréale de base très cultivée, sensible au manque d'eau au démarrage.",
				SoilTypes:   []string{"ferrugineux tropicaux", "argilo-limoneux"},
				Tips:        []string{"Apport de fumure organique avant le semis", "Buttage au 30e jour"},
				Periods: []model.PeriodRecord{
					{Region: "Centre", MonthStart: 5, MonthEnd: 7, Advice: advice("Semer dès l'installation des pluies, sur sol bien préparé.")},
				},
				Soils: []string{"ferrugineux tropicaux", "argilo-limoneux"},
			},
			{
				Name:        "Sorgho",
				Type:        "céréale",
				CycleDays:   110,
				Description: "Céréale résistante à la sécheresse, adaptée aux zones sèches.",
				SoilTypes:   []string{"ferrugineux tropicaux"},
				Periods: []model.PeriodRecord{
					{Region: "Centre", MonthStart: 6, MonthEnd: 7, Advice: advice("Semer après le maïs, tolère mieux les pauses pluviométriques.")},
				},
				Soils: []string{"ferrugineux tropicaux"},
			},
			{
				Name:        "Mil",
				Type:        "céréale",
				CycleDays:   100,
				Description: "Céréale traditionnelle très résistante, pour sols pauvres.",
				SoilTypes:   []string{"sablonneux"},
				Periods: []model.PeriodRecord{
					{Region: "Nord", MonthStart: 6, MonthEnd: 7, Advice: advice("Privilégier le mil dans les zones très sèches.")},
				},
				Soils: []string{"sablonneux"},
			},
			{
				Name:        "Riz",
				Type:        "céréale",
				CycleDays:   120,
				Description: "Culture de bas-fond demandant beaucoup d'eau.",
				SoilTypes:   []string{"argilo-limoneux"},
				Periods: []model.PeriodRecord{
					{Region: "Bas-fonds", MonthStart: 6, MonthEnd: 7, Advice: advice("Planter dans les bas-fonds ou zones irriguées.")},
				},
				Soils: []string{"argilo-limoneux"},
			},
			{
				Name:        "Niébé",
				Type:        "légumineuse",
				CycleDays:   70,
				Description: "Légumineuse qui fixe l'azote et enrichit le sol.",
				Tips:        []string{"Associer au maïs ou au sorgho"},
				Periods: []model.PeriodRecord{
					{Region: "Centre", MonthStart: 7, MonthEnd: 8, Advice: advice("Peut être associé avec le maïs pour enrichir le sol.")},
				},
			},
			{
				Name:        "Arachide",
				Type:        "légumineuse",
				CycleDays:   110,
				Description: "Culture de rente, apprécie les sols sablo-limoneux.",
				Periods: []model.PeriodRecord{
					{Region: "Centre", MonthStart: 5, MonthEnd: 6, Advice: advice("Semer en début de saison des pluies sur sols légers.")},
				},
			},
			{
				Name:        "Tomate",
				Type:        "maraîchère",
				CycleDays:   80,
				Description: "Culture maraîchère exigeante en eau et en suivi sanitaire.",
				SoilTypes:   []string{"argilo-limoneux"},
				Tips:        []string{"Tuteurer les plants", "Arroser au pied, jamais sur le feuillage"},
				Periods: []model.PeriodRecord{
					{Region: "Périmètre irrigué", MonthStart: 11, MonthEnd: 2, Advice: advice("Culture de saison sèche avec irrigation régulière.")},
				},
				Soils: []string{"argilo-limoneux"},
			},
			{
				Name:        "Oignon",
				Type:        "maraîchère",
				CycleDays:   120,
				Description: "Culture de saison sèche, sensible à l'excès d'eau.",
				SoilTypes:   []string{"sablonneux"},
				Periods: []model.PeriodRecord{
					{Region: "Périmètre irrigué", MonthStart: 11, MonthEnd: 1, Advice: advice("Préférer des sols légers, bien drainés.")},
				},
				Soils: []string{"sablonneux"},
			},
		},
		Diseases: []model.DiseaseImport{
			{
				Name:       "Mildiou",
				Symptoms:   "Feuilles décolorées, duvet blanchâtre à la face inférieure, épis déformés.",
				Treatments: []string{"Semences traitées", "Arracher et brûler les plants atteints", "Rotation des cultures"},
				Crops:      []string{"Mil", "Sorgho"},
			},
			{
				Name:       "Pyriculariose",
				Symptoms:   "Taches grisâtres en losange sur les feuilles, cou de la panicule noirci.",
				Treatments: []string{"Variétés résistantes", "Fractionner l'apport d'azote"},
				Crops:      []string{"Riz"},
			},
			{
				Name:       "Flétrissement bactérien",
				Symptoms:   "Flétrissement brutal des plants sans jaunissement préalable.",
				Treatments: []string{"Rotation longue sans solanacées", "Détruire les plants malades", "Éviter les sols mal drainés"},
				Crops:      []string{"Tomate"},
			},
			{
				Name:       "Cercosporiose",
				Symptoms:   "Taches brunes arrondies entourées d'un halo jaune.",
				Treatments: []string{"Rotation des cultures", "Élimination des résidus de récolte"},
				Crops:      []string{"Arachide", "Niébé"},
			},
		},
		Pests: []model.PestImport{
			{
				Name:     "Chenille légionnaire d'automne",
				Damage:   "Feuilles trouées, cornet rongé, sciure dans le verticille.",
				Controls: []string{"Inspection du cornet deux fois par semaine", "Extrait de neem", "Bacillus thuringiensis"},
				Crops:    []string{"Maïs", "Sorgho"},
			},
			{
				Name:     "Pucerons",
				Damage:   "Feuilles enroulées, miellat collant, transmission de virus.",
				Controls: []string{"Savon noir dilué (15ml/L)", "Coccinelles", "Extrait de neem"},
				Crops:    []string{"Niébé", "Tomate"},
			},
			{
				Name:     "Thrips",
				Damage:   "Feuilles argentées puis desséchées.",
				Controls: []string{"Irrigation par aspersion", "Extrait de neem"},
				Crops:    []string{"Oignon"},
			},
			{
				Name:     "Foreurs de tiges",
				Damage:   "Galeries dans les tiges, plants cassés, épis vides.",
				Controls: []string{"Destruction des résidus de récolte", "Semis précoce"},
				Crops:    []string{"Maïs", "Sorgho", "Mil"},
			},
		},
		Fertilizers: []model.FertilizerImport{
			{
				Name:            "NPK 15-15-15",
				Type:            "Minéral",
				Composition:     "15% azote, 15% phosphore, 15% potassium",
				Description:     "Engrais de fond complet pour céréales et cultures maraîchères.",
				ApplicationMode: "Épandre en bandes au semis puis enfouir légèrement.",
				Precautions:     "Ne pas mettre en contact direct avec les semences.",
				Uses: []model.FertilizerUse{
					{Crop: "Maïs", Stage: "Semis", Dose: "200 kg/ha", Frequency: "1 fois", Method: "En bandes"},
					{Crop: "Tomate", Stage: "Repiquage", Dose: "300 kg/ha", Frequency: "1 fois", Method: "Localisé au pied"},
				},
			},
			{
				Name:            "Urée 46%",
				Type:            "Minéral",
				Composition:     "46% azote",
				Description:     "Engrais azoté de couverture.",
				ApplicationMode: "Apport fractionné sur sol humide, suivi d'un buttage.",
				Precautions:     "Éviter l'épandage avant une forte pluie.",
				Uses: []model.FertilizerUse{
					{Crop: "Maïs", Stage: "Montaison", Dose: "100 kg/ha", Frequency: "2 apports", Method: "Au pied puis buttage"},
					{Crop: "Riz", Stage: "Tallage", Dose: "100 kg/ha", Frequency: "2 apports", Method: "À la volée"},
				},
			},
			{
				Name:            "Compost",
				Type:            "Organique",
				Description:     "Matière organique décomposée qui améliore la structure et la rétention d'eau du sol.",
				ApplicationMode: "Enfouir avant le semis.",
				Uses: []model.FertilizerUse{
					{Crop: "Maïs", Stage: "Avant semis", Dose: "5 t/ha", Frequency: "Chaque saison", Method: "Enfoui au labour"},
					{Crop: "Oignon", Stage: "Avant repiquage", Dose: "10 t/ha", Frequency: "Chaque saison", Method: "Incorporé aux planches"},
				},
			},
		},
	}
}
