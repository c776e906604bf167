package domain

// Company owns jobs. The data layer only reads companies.
type Company struct {
	Handle       string  `json:"handle" gorm:"primaryKey;size:25"`
	Name         string  `json:"name" gorm:"uniqueIndex;not null"`
	Description  string  `json:"description" gorm:"type:text;not null"`
	NumEmployees *int    `json:"numEmployees" gorm:"check:num_employees >= 0"`
	LogoURL      *string `json:"logoUrl" gorm:"column:logo_url"`
	Jobs         []Job   `json:"jobs,omitempty" gorm:"foreignKey:CompanyHandle;references:Handle;constraint:OnDelete:CASCADE"`
}
