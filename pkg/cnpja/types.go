package cnpja

// Office is the registry projection of a company as returned by
// GET /office/{taxId}. Field names and nesting follow the public API;
// it is never persisted as-is, only mapped into an editable draft.
type Office struct {
	TaxID   string  `json:"taxId"`
	Alias   string  `json:"alias"`
	Founded string  `json:"founded"`
	Company Company `json:"company"`

	Status     Status  `json:"status"`
	StatusDate string  `json:"statusDate"`
	Reason     *Reason `json:"reason,omitempty"`

	Address Address `json:"address"`
	Phones  []Phone `json:"phones"`
	Emails  []Email `json:"emails"`

	MainActivity   Activity `json:"mainActivity"`
	SideActivities []Activity `json:"sideActivities"`

	Registrations []Registration `json:"registrations"`
	Suframa       []Suframa      `json:"suframa"`
}

// Company holds the legal-entity level data shared by all offices.
type Company struct {
	Name    string   `json:"name"`
	Equity  float64  `json:"equity"`
	Nature  Nature   `json:"nature"`
	Size    Size     `json:"size"`
	Simples Optant   `json:"simples"`
	Simei   Optant   `json:"simei"`
	Members []Member `json:"members"`
}

// Status is the registration status. ID is stable across registry
// releases; Text is a human-readable description that varies.
type Status struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// StatusActiveID is the registry code for an active registration.
const StatusActiveID = 2

// Reason describes why a registration left the active status.
type Reason struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Nature is the legal nature of the company.
type Nature struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Size is the company size bracket (porte).
type Size struct {
	ID      int    `json:"id"`
	Acronym string `json:"acronym"`
	Text    string `json:"text"`
}

// Optant is a tax-regime opt-in flag with its effective date.
type Optant struct {
	Optant bool   `json:"optant"`
	Since  string `json:"since,omitempty"`
}

// Member is a person in the company's ownership board (QSA).
type Member struct {
	Since  string `json:"since"`
	Role   Role   `json:"role"`
	Person Person `json:"person"`
}

// Role is the member's role in the company.
type Role struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Person identifies a company member.
type Person struct {
	Name  string `json:"name"`
	TaxID string `json:"taxId"`
	Age   string `json:"age"`
	Type  string `json:"type"`
}

// Address is the office address.
type Address struct {
	Street   string `json:"street"`
	Number   string `json:"number"`
	Details  string `json:"details"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
}

// Phone is a registry contact phone.
type Phone struct {
	Type   string `json:"type"`
	Area   string `json:"area"`
	Number string `json:"number"`
}

// Email is a registry contact email.
type Email struct {
	Ownership string `json:"ownership"`
	Address   string `json:"address"`
	Domain    string `json:"domain"`
}

// Activity is an economic activity (CNAE).
type Activity struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Registration is a state-level registration (inscrição estadual).
type Registration struct {
	State   string `json:"state"`
	Number  string `json:"number"`
	Enabled bool   `json:"enabled"`
	Status  Status `json:"status"`
}

// Suframa is a special-incentive registration.
type Suframa struct {
	Number       string             `json:"number"`
	Since        string             `json:"since"`
	Approved     bool               `json:"approved"`
	ApprovalDate string             `json:"approvalDate"`
	Incentives   []SuframaIncentive `json:"incentives"`
}

// SuframaIncentive is a single tax incentive under a Suframa registration.
type SuframaIncentive struct {
	Tribute string `json:"tribute"`
	Benefit string `json:"benefit"`
}
