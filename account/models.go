// Package account defines the persisted identity records for the two kinds
// of Openhouse users (property seekers and listing agents) and the
// repository that stores them.
package account

import "time"

// Type discriminates the two account variants.
type Type string

const (
	// TypeSeeker is a property seeker account.
	TypeSeeker Type = "seeker"
	// TypeAgent is a listing agent account.
	TypeAgent Type = "agent"
)

// Valid reports whether t is a known account type.
func (t Type) Valid() bool {
	return t == TypeSeeker || t == TypeAgent
}

// VerificationStatus is the review state of an agent's license details.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Budget is a seeker's price range in whole currency units.
type Budget struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Preferences holds a seeker's search preferences.
type Preferences struct {
	Budget        Budget   `json:"budget"`
	Locations     []string `json:"locations"`
	PropertyTypes []string `json:"property_types"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
}

// Account is a persisted seeker or agent identity record. The Type tag
// selects which of the variant-specific field groups is populated; the
// other group stays at its zero values and is omitted from JSON.
//
// ID and Type are assigned at creation and never change. Email is unique
// across both variants.
type Account struct {
	ID        string    `json:"id"`
	Type      Type      `json:"user_type"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Seeker fields.
	Preferences     *Preferences `json:"preferences,omitempty"`
	SavedProperties []string     `json:"saved_properties,omitempty"`
	SearchHistory   []string     `json:"search_history,omitempty"`

	// Agent fields.
	CompanyName        string             `json:"company_name,omitempty"`
	LicenseNumber      string             `json:"license_number,omitempty"`
	Experience         int                `json:"experience,omitempty"`
	Specialization     []string           `json:"specialization,omitempty"`
	Rating             float64            `json:"rating,omitempty"`
	ReviewsCount       int                `json:"reviews_count,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status,omitempty"`
	Properties         []string           `json:"properties,omitempty"`
	Bio                string             `json:"bio,omitempty"`
}

// NewSeeker builds a seeker account with defaulted preferences and empty
// saved-property and search-history lists. CreatedAt and UpdatedAt are both
// set to now.
func NewSeeker(id, email, firstName, lastName, phone string, now time.Time) *Account {
	return &Account{
		ID:        id,
		Type:      TypeSeeker,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
		Preferences: &Preferences{
			Budget:        Budget{Min: 0, Max: 100_000_000},
			Locations:     []string{},
			PropertyTypes: []string{},
			Bedrooms:      1,
			Bathrooms:     1,
		},
		SavedProperties: []string{},
		SearchHistory:   []string{},
	}
}

// AgentDetails carries the agent-specific registration fields.
type AgentDetails struct {
	CompanyName   string
	LicenseNumber string
	Experience    int
	Bio           string
}

// NewAgent builds an agent account with zero rating, zero reviews, pending
// verification, and empty specialization and listing sets. CreatedAt and
// UpdatedAt are both set to now.
func NewAgent(id, email, firstName, lastName, phone string, details AgentDetails, now time.Time) *Account {
	return &Account{
		ID:                 id,
		Type:               TypeAgent,
		Email:              email,
		FirstName:          firstName,
		LastName:           lastName,
		Phone:              phone,
		CreatedAt:          now,
		UpdatedAt:          now,
		CompanyName:        details.CompanyName,
		LicenseNumber:      details.LicenseNumber,
		Experience:         details.Experience,
		Specialization:     []string{},
		Rating:             0,
		ReviewsCount:       0,
		VerificationStatus: VerificationPending,
		Properties:         []string{},
		Bio:                details.Bio,
	}
}

// Clone returns a deep copy of the account so callers cannot mutate
// repository-held state through returned pointers.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Preferences != nil {
		p := *a.Preferences
		p.Locations = append([]string(nil), a.Preferences.Locations...)
		p.PropertyTypes = append([]string(nil), a.Preferences.PropertyTypes...)
		c.Preferences = &p
	}
	c.SavedProperties = append([]string(nil), a.SavedProperties...)
	c.SearchHistory = append([]string(nil), a.SearchHistory...)
	c.Specialization = append([]string(nil), a.Specialization...)
	c.Properties = append([]string(nil), a.Properties...)
	return &c
}

// Patch is a partial account update. Nil fields are left unchanged; slice
// fields replace the whole list when non-nil. The identity fields (ID,
// Type, CreatedAt) are deliberately absent: a merge can never touch them.
type Patch struct {
	Email              *string
	FirstName          *string
	LastName           *string
	Phone              *string
	Avatar             *string
	Preferences        *Preferences
	SavedProperties    []string
	SearchHistory      []string
	CompanyName        *string
	LicenseNumber      *string
	Experience         *int
	Specialization     []string
	Rating             *float64
	ReviewsCount       *int
	VerificationStatus *VerificationStatus
	Properties         []string
	Bio                *string
}

func (p Patch) apply(a *Account) {
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.FirstName != nil {
		a.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Avatar != nil {
		a.Avatar = *p.Avatar
	}
	if p.Preferences != nil {
		pref := *p.Preferences
		a.Preferences = &pref
	}
	if p.SavedProperties != nil {
		a.SavedProperties = append([]string(nil), p.SavedProperties...)
	}
	if p.SearchHistory != nil {
		a.SearchHistory = append([]string(nil), p.SearchHistory...)
	}
	if p.CompanyName != nil {
		a.CompanyName = *p.CompanyName
	}
	if p.LicenseNumber != nil {
		a.LicenseNumber = *p.LicenseNumber
	}
	if p.Experience != nil {
		a.Experience = *p.Experience
	}
	if p.Specialization != nil {
		a.Specialization = append([]string(nil), p.Specialization...)
	}
	if p.Rating != nil {
		a.Rating = *p.Rating
	}
	if p.ReviewsCount != nil {
		a.ReviewsCount = *p.ReviewsCount
	}
	if p.VerificationStatus != nil {
		a.VerificationStatus = *p.VerificationStatus
	}
	if p.Properties != nil {
		a.Properties = append([]string(nil), p.Properties...)
	}
	if p.Bio != nil {
		a.Bio = *p.Bio
	}
}
