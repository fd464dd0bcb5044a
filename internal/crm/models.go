package crm

import "time"

// Deal is a seller-side engagement being brokered.
type Deal struct {
	ID              string    `json:"id"`
	CompanyName     string    `json:"companyName"`
	Revenue         string    `json:"revenue"`
	SDE             *string   `json:"sde,omitempty"`
	ValuationMin    *string   `json:"valuationMin,omitempty"`
	ValuationMax    *string   `json:"valuationMax,omitempty"`
	SDEMultiple     *string   `json:"sdeMultiple,omitempty"`
	RevenueMultiple *string   `json:"revenueMultiple,omitempty"`
	Commission      *string   `json:"commission,omitempty"`
	Stage           string    `json:"stage"`
	Priority        string    `json:"priority"`
	Description     *string   `json:"description,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	NextStepDays    *int      `json:"nextStepDays,omitempty"`
	Touches         int       `json:"touches"`
	AgeInStage      int       `json:"ageInStage"`
	HealthScore     int       `json:"healthScore"`
	Owner           string    `json:"owner"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Contact belongs to either a deal or a buying party, selected by EntityType.
type Contact struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	EntityID   string  `json:"entityId"`
	EntityType string  `json:"entityType"`
}

// BuyingParty is a prospective acquirer.
type BuyingParty struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	TargetAcquisitionMin *int      `json:"targetAcquisitionMin,omitempty"`
	TargetAcquisitionMax *int      `json:"targetAcquisitionMax,omitempty"`
	BudgetMin            *string   `json:"budgetMin,omitempty"`
	BudgetMax            *string   `json:"budgetMax,omitempty"`
	Timeline             *string   `json:"timeline,omitempty"`
	Status               string    `json:"status"`
	Notes                *string   `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// DealBuyerMatch links a deal to an interested buying party.
type DealBuyerMatch struct {
	ID                string    `json:"id"`
	DealID            string    `json:"dealId"`
	BuyingPartyID     string    `json:"buyingPartyId"`
	TargetAcquisition *int      `json:"targetAcquisition,omitempty"`
	Budget            *string   `json:"budget,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Activity is a task, call, email or meeting attached to a deal or buying
// party. ParentActivityID links it under another activity, forming the
// hierarchy that internal/hierarchy traverses.
type Activity struct {
	ID               string     `json:"id"`
	DealID           *string    `json:"dealId,omitempty"`
	BuyingPartyID    *string    `json:"buyingPartyId,omitempty"`
	ParentActivityID *string    `json:"parentActivityId,omitempty"`
	Type             string     `json:"type"`
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	Status           string     `json:"status"`
	AssignedTo       *string    `json:"assignedTo,omitempty"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// Document is a file reference attached to a deal or buying party.
type Document struct {
	ID            string    `json:"id"`
	DealID        *string   `json:"dealId,omitempty"`
	BuyingPartyID *string   `json:"buyingPartyId,omitempty"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	URL           *string   `json:"url,omitempty"`
	DocType       *string   `json:"docType,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Agreement tracks a legal document (NDA, LOI) between a deal and a buying
// party, including its e-signature lifecycle.
type Agreement struct {
	ID            string     `json:"id"`
	DealID        string     `json:"dealId"`
	BuyingPartyID string     `json:"buyingPartyId"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Provider      *string    `json:"provider,omitempty"`
	SentAt        *time.Time `json:"sentAt,omitempty"`
	SignedAt      *time.Time `json:"signedAt,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	Amount        *string    `json:"amount,omitempty"`
	DocumentID    *string    `json:"documentId,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// User is an authenticated API user. Credentials never serialize.
type User struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	ResetToken          *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// BuyerRow is the composite returned by GET /deals/{id}/buyers.
type BuyerRow struct {
	Match   DealBuyerMatch `json:"match"`
	Party   BuyingParty    `json:"party"`
	Contact *Contact       `json:"contact,omitempty"`
}

// PartyMatchRow is the composite returned by GET /buying-parties/{id}/matches.
type PartyMatchRow struct {
	Match DealBuyerMatch `json:"match"`
	Deal  Deal           `json:"deal"`
}

// MeetingSummary is the latest meeting digest for a deal.
type MeetingSummary struct {
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
	Source    *string   `json:"source,omitempty"`
}
