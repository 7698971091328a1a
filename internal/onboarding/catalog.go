package onboarding

// Interest is one selectable ecological interest area.
type Interest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Activity is one community activity offered during onboarding. The catalog
// is static reference data, not fetched from the store.
type Activity struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Participants    int      `json:"participants"`
	MaxParticipants int      `json:"max_participants"`
	Difficulty      string   `json:"difficulty"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
}

// Interests is the fixed interest catalog.
var Interests = []Interest{
	{ID: "recycling", Name: "Recyclage & Déchets"},
	{ID: "transport", Name: "Transport Vert"},
	{ID: "energy", Name: "Énergies Renouvelables"},
	{ID: "home", Name: "Maison Écologique"},
	{ID: "food", Name: "Alimentation Durable"},
	{ID: "electric", Name: "Véhicules Électriques"},
	{ID: "efficiency", Name: "Efficacité Énergétique"},
	{ID: "nature", Name: "Protection Nature"},
	{ID: "water", Name: "Gestion de l'Eau"},
	{ID: "air", Name: "Qualité de l'Air"},
	{ID: "biodiversity", Name: "Biodiversité"},
	{ID: "garden", Name: "Jardinage Écologique"},
}

// Activities is the fixed activity catalog.
var Activities = []Activity{
	{
		ID:              "bike-tour",
		Title:           "Balade à vélo écologique",
		Description:     "Découverte des pistes cyclables de la ville",
		Location:        "Centre-ville, Tunis",
		Date:            "Samedi 15 juillet",
		Time:            "09:00 - 12:00",
		Participants:    12,
		MaxParticipants: 20,
		Difficulty:      "Facile",
		Category:        "transport",
		Tags:            []string{"Transport vert", "Sport", "Découverte"},
	},
	{
		ID:              "tree-planting",
		Title:           "Plantation d'arbres communautaire",
		Description:     "Participation à la reforestation urbaine",
		Location:        "Parc Belvédère, Tunis",
		Date:            "Dimanche 16 juillet",
		Time:            "08:00 - 11:00",
		Participants:    25,
		MaxParticipants: 50,
		Difficulty:      "Modéré",
		Category:        "nature",
		Tags:            []string{"Reforestation", "Communauté", "Nature"},
	},
	{
		ID:              "recycling-workshop",
		Title:           "Atelier de recyclage créatif",
		Description:     "Apprenez à transformer vos déchets en objets utiles",
		Location:        "Centre culturel, Sfax",
		Date:            "Mercredi 19 juillet",
		Time:            "14:00 - 17:00",
		Participants:    8,
		MaxParticipants: 15,
		Difficulty:      "Facile",
		Category:        "recycling",
		Tags:            []string{"DIY", "Recyclage", "Créativité"},
	},
	{
		ID:              "organic-cooking",
		Title:           "Cours de cuisine bio locale",
		Description:     "Cuisiner avec des produits locaux et de saison",
		Location:        "Ferme bio, Monastir",
		Date:            "Samedi 22 juillet",
		Time:            "10:00 - 14:00",
		Participants:    6,
		MaxParticipants: 12,
		Difficulty:      "Facile",
		Category:        "food",
		Tags:            []string{"Bio", "Local", "Cuisine"},
	},
	{
		ID:              "urban-garden",
		Title:           "Jardinage urbain participatif",
		Description:     "Création d'un potager communautaire",
		Location:        "Quartier Manouba",
		Date:            "Samedi 29 juillet",
		Time:            "08:00 - 12:00",
		Participants:    15,
		MaxParticipants: 25,
		Difficulty:      "Modéré",
		Category:        "garden",
		Tags:            []string{"Jardinage", "Communauté", "Légumes"},
	},
	{
		ID:              "eco-cleanup",
		Title:           "Nettoyage écologique des plages",
		Description:     "Protection du littoral méditerranéen",
		Location:        "Plage de Hammamet",
		Date:            "Dimanche 30 juillet",
		Time:            "07:00 - 10:00",
		Participants:    30,
		MaxParticipants: 60,
		Difficulty:      "Facile",
		Category:        "nature",
		Tags:            []string{"Nettoyage", "Plage", "Protection"},
	},
}

// PartitionActivities splits the catalog into activities matching the
// selected interests (recommended) and the rest, both in catalog order.
// Recommended renders first.
func PartitionActivities(activities []Activity, interests []string) (recommended, other []Activity) {
	selected := make(map[string]struct{}, len(interests))
	for _, id := range interests {
		selected[id] = struct{}{}
	}
	for _, a := range activities {
		if _, ok := selected[a.Category]; ok {
			recommended = append(recommended, a)
		} else {
			other = append(other, a)
		}
	}
	return recommended, other
}
