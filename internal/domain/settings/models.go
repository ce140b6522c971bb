package settings

import "time"

// Settings is the single configuration blob. Department and position name
// lists are the default vocabulary used to seed the lookup collections.
type Settings struct {
	ID             string    `gorm:"primaryKey" json:"-"`
	CompanyName    string    `json:"companyName"`
	CompanyAddress string    `json:"companyAddress"`
	CompanyPhone   string    `json:"companyPhone"`
	CompanyLogo    string    `json:"companyLogo"`
	Currency       string    `json:"currency"`
	CurrencySymbol string    `json:"currencySymbol"`
	Locale         string    `json:"locale"`
	Departments    []string  `gorm:"serializer:json" json:"departments"`
	Positions      []string  `gorm:"serializer:json" json:"positions"`
	LastBackupAt   *time.Time `json:"lastBackupAt,omitempty"`
	LastDismissedAt *time.Time `json:"lastDismissedAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Update carries a partial settings change; nil fields keep their stored
// value.
type Update struct {
	CompanyName    *string   `json:"companyName"`
	CompanyAddress *string   `json:"companyAddress"`
	CompanyPhone   *string   `json:"companyPhone"`
	CompanyLogo    *string   `json:"companyLogo"`
	Currency       *string   `json:"currency"`
	CurrencySymbol *string   `json:"currencySymbol"`
	Locale         *string   `json:"locale"`
	Departments    *[]string `json:"departments"`
	Positions      *[]string `json:"positions"`
}

var defaultDepartments = []string{
	"Direction", "Ressources Humaines", "Comptabilité", "Marketing",
	"Commercial", "Production", "Logistique", "Informatique",
	"Juridique", "Maintenance", "Qualité", "Autre",
}

var defaultPositions = []string{
	"Directeur Général", "Directeur", "Chef de Département", "Chef d'Équipe",
	"Responsable", "Superviseur", "Technicien", "Agent",
	"Assistant", "Stagiaire", "Consultant", "Autre",
}

func Defaults() Settings {
	return Settings{
		ID:             blobID,
		CompanyName:    "VOTRE ENTREPRISE",
		CompanyAddress: "Adresse de l'entreprise",
		CompanyPhone:   "+261 XX XX XXX XX",
		Currency:       "MGA",
		CurrencySymbol: "Ar",
		Locale:         "fr-MG",
		Departments:    append([]string(nil), defaultDepartments...),
		Positions:      append([]string(nil), defaultPositions...),
	}
}
