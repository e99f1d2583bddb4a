package domain

// Company is a participant in the marketplace. The directory is a static
// fixture; PasswordHash never leaves the process.
type Company struct {
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	Sector       string `json:"sector"`
	Location     string `json:"location"`
	Logo         string `json:"logo"`
	PasswordHash string `json:"-"`
}
