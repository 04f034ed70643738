package vocab

import "agribot/internal/model"

// Category names of the static knowledge blocks, in scoring order
const (
	CategoryDiseases   = "maladies"
	CategoryWeather    = "meteo"
	CategoryPests      = "parasites"
	CategoryIrrigation = "irrigation"
	CategorySoil       = "sol"
	CategoryHarvest    = "recolte"
)

// Default returns a fresh copy of the built-in French vocabulary
func Default() *Vocabulary {
	v := &Vocabulary{
		GreetingKeywords: []string{"bonjour", "salut", "coucou", "hello", "hey", "bonsoir"},
		ThanksKeywords:   []string{"merci", "thank", "thanks", "merçi"},
		PlantingKeywords: []string{"planter", "plantation", "semer", "semis", "quand", "période"},
		SoilTypes: []string{
			"sablonneux", "argilo-limoneux", "ferrugineux", "argileux",
			"limoneux", "latéritique", "gravillonnaire",
		},
		Categories: defaultCategories(),
		Crops: []CropAliases{
			{Name: "maïs", Aliases: []string{"mais", "maïs", "maiz", "corn"}},
			{Name: "mil", Aliases: []string{"mil", "millet"}},
			{Name: "sorgho", Aliases: []string{"sorgho", "sorgo"}},
			{Name: "riz", Aliases: []string{"riz", "paddy"}},
			{Name: "tomate", Aliases: []string{"tomate", "tomates"}},
			{Name: "oignon", Aliases: []string{"oignon", "oignons", "ognon"}},
			{Name: "arachide", Aliases: []string{"arachide", "arachides", "cacahuète"}},
			{Name: "niébé", Aliases: []string{"niébé", "niebe", "haricot"}},
			{Name: "coton", Aliases: []string{"coton"}},
			{Name: "sésame", Aliases: []string{"sésame", "sesame"}},
			{Name: "chou", Aliases: []string{"chou", "choux"}},
			{Name: "salade", Aliases: []string{"salade", "laitue"}},
		},
		Cities: []string{
			"Ouagadougou", "Bobo-Dioulasso", "Koudougou", "Ouahigouya", "Banfora",
			"Dedougou", "Fada", "Kaya", "Tenkodogo", "Gaoua",
		},
		UrgencyKeywords:    []string{"urgent", "vite", "rapidement", "aide", "problème", "danger"},
		PolitenessKeywords: []string{"s'il vous plaît", "svp", "merci", "pourriez", "pouvez-vous"},
		MonthNames: []string{
			"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre",
		},
		GreetingText: "Bonjour ! Comment puis-je vous aider avec votre exploitation agricole aujourd'hui ? 🚜",
		FallbackText: "🤔 Je ne suis pas sûr de bien comprendre votre question.\n\n" +
			"**Je peux vous aider sur :**\n" +
			"• 📅 Calendrier de plantation\n" +
			"• 🌿 Maladies des plantes\n" +
			"• 🌤️ Météo et sécheresse\n" +
			"• 🐛 Lutte contre les parasites\n" +
			"• 💧 Irrigation\n" +
			"• 🌱 Amélioration du sol\n" +
			"• 🌾 Récolte\n\n" +
			"Posez-moi une question précise sur l'un de ces sujets.",
		Suggestions: Suggestions{
			Crop: []string{
				"Quelle est la meilleure période pour planter du %s ?",
				"Comment lutter contre les parasites du %s ?",
				"Quel type de sol pour le %s ?",
			},
			Weather: []string{
				"Quelles sont les prévisions pour demain ?",
				"Y a-t-il des risques de sécheresse ?",
			},
			WeatherKeywords: []string{"météo"},
		},
	}
	v.normalize()
	return v
}

func defaultCategories() []model.CategoryBlock {
	return []model.CategoryBlock{
		{
			Name:     CategoryDiseases,
			Intent:   model.IntentDiseaseInquiry,
			Keywords: []string{"maladie", "signes", "symptôme", "feuille", "jaune", "tache", "malade"},
			Response: `🌿 **Signes courants de maladies des plantes:**

• **Feuilles jaunies**: Manque d'azote ou problème d'arrosage
• **Taches brunes/noires**: Infections fongiques
• **Flétrissement**: Maladies vasculaires ou déshydratation
• **Moisissure blanche**: Oïdium (champignon)
• **Déformation des feuilles**: Virus ou carences

💡 **Conseil**: Inspectez régulièrement vos plants et isolez immédiatement les plants malades.`,
			Confidence: 0.92,
			Source:     "agricultural database",
		},
		{
			Name:     CategoryWeather,
			Intent:   model.IntentWeatherInquiry,
			Keywords: []string{"météo", "temps", "pluie", "sécheresse", "prévision", "climat", "température"},
			Response: `🌤️ **Prévisions météorologiques:**

📍 **Ouagadougou, Centre:**
• **Aujourd'hui**: Ensoleillé, 32-35°C
• **Cette semaine**: Temps sec, pas de pluie
• **Tendance**: Période sèche continue

⚠️ **Alerte sécheresse**:
• Irrigation recommandée 2-3x/semaine
• Paillage pour conserver l'humidité
• Surveillance accrue des cultures`,
			Confidence: 0.88,
			Source:     "weather service",
		},
		{
			Name:     CategoryPests,
			Intent:   model.IntentPestInquiry,
			Keywords: []string{"parasite", "insecte", "lutte", "protection", "ravageur", "chenille", "puceron", "criquet"},
			Response: `🐛 **Lutte contre les parasites:**

**Méthodes naturelles:**
• Rotation des cultures (espacer 3-4 ans)
• Plantes répulsives: basilic, œillets d'Inde
• Savon noir dilué (15ml/L)
• Coccinelles contre les pucerons

**Méthodes biologiques:**
• Neem (margousier) - insecticide naturel
• Bacillus thuringiensis (chenilles)

**Prévention:**
• Inspection 2x/semaine
• Élimination plants infectés
• Espacement correct (aération)`,
			Confidence: 0.91,
			Source:     "phytosanitary guide",
		},
		{
			Name:     CategoryIrrigation,
			Intent:   model.IntentIrrigationInquiry,
			Keywords: []string{"eau", "arrosage", "irrigation", "arroser", "goutte", "pompe"},
			Response: `💧 **Gestion de l'irrigation:**

**Besoins en eau (Burkina Faso):**
• Saison sèche: 20-30L/m²/semaine
• Saison des pluies: Selon précipitations

**Techniques recommandées:**
• Goutte-à-goutte: économie 40-60%
• Irrigation matinale (5h-8h)
• Paillage: réduit évaporation de 70%
• Bassins de rétention d'eau

**Fréquence:**
• Légumes: 2-3x/semaine
• Céréales: 1-2x/semaine
• Arbres fruitiers: 1x/semaine`,
			Confidence: 0.92,
			Source:     "irrigation manual",
		},
		{
			Name:     CategorySoil,
			Intent:   model.IntentSoilImprovement,
			Keywords: []string{"sol", "terre", "compost", "engrais", "fertilisant", "ph", "amendement"},
			Response: `🌱 **Gestion et amélioration du sol:**

**Sols du Burkina Faso:**
• Ferrugineux tropicaux (80%)
• Argilo-limoneux (bas-fonds)
• pH: 5.5-7.0

**Amélioration:**
• Compost: 3-5 kg/m² annuellement
• Fumier bien décomposé: 2-4 kg/m²
• Paillage permanent
• Légumineuses (fixation azote)

**Test sol simple:**
• Vinaigre = pétille → sol calcaire
• Ne pétille pas → sol acide`,
			Confidence: 0.90,
			Source:     "soil science",
		},
		{
			Name:     CategoryHarvest,
			Intent:   model.IntentHarvestInquiry,
			Keywords: []string{"récolte", "récolter", "cueillir", "maturité", "rendement", "conservation"},
			Response: `🌾 **Guide de récolte:**

**Signes de maturité:**
• **Maïs**: Soies brunies, grains fermes
• **Sorgho**: Grains durs, panicules courbées
• **Tomates**: Couleur uniforme, légèrement souples
• **Oignons**: Feuillage sec, couché

**Bonnes pratiques:**
• Récolter par temps sec
• Matin ou soir (éviter chaleur)
• Outils propres et désinfectés
• Stockage ventilé et sec

**Conservation:**
• Greniers surélevés (rongeurs)
• Température fraîche
• Inspection régulière`,
			Confidence: 0.89,
			Source:     "post-harvest guide",
		},
	}
}
