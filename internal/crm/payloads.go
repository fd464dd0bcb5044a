package crm

import "time"

// Create/update payloads. Update structs use pointers throughout so PATCH can
// distinguish "absent" from "set to zero value".

type DealCreate struct {
	CompanyName     string  `json:"companyName" validate:"required"`
	Revenue         string  `json:"revenue" validate:"required"`
	Stage           string  `json:"stage" validate:"required"`
	Priority        string  `json:"priority"`
	Owner           string  `json:"owner" validate:"required"`
	SDE             *string `json:"sde"`
	ValuationMin    *string `json:"valuationMin"`
	ValuationMax    *string `json:"valuationMax"`
	SDEMultiple     *string `json:"sdeMultiple"`
	RevenueMultiple *string `json:"revenueMultiple"`
	Commission      *string `json:"commission"`
	Description     *string `json:"description"`
	Notes           *string `json:"notes"`
	NextStepDays    *int    `json:"nextStepDays"`
	Touches         int     `json:"touches"`
	AgeInStage      int     `json:"ageInStage"`
	HealthScore     *int    `json:"healthScore"`
}

type DealUpdate struct {
	CompanyName     *string `json:"companyName"`
	Revenue         *string `json:"revenue"`
	Stage           *string `json:"stage"`
	Priority        *string `json:"priority"`
	Owner           *string `json:"owner"`
	SDE             *string `json:"sde"`
	ValuationMin    *string `json:"valuationMin"`
	ValuationMax    *string `json:"valuationMax"`
	SDEMultiple     *string `json:"sdeMultiple"`
	RevenueMultiple *string `json:"revenueMultiple"`
	Commission      *string `json:"commission"`
	Description     *string `json:"description"`
	Notes           *string `json:"notes"`
	NextStepDays    *int    `json:"nextStepDays"`
	Touches         *int    `json:"touches"`
	AgeInStage      *int    `json:"ageInStage"`
	HealthScore     *int    `json:"healthScore"`
}

type ContactCreate struct {
	Name       string  `json:"name" validate:"required"`
	Role       string  `json:"role" validate:"required"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone"`
	EntityID   string  `json:"entityId" validate:"required"`
	EntityType string  `json:"entityType" validate:"required,oneof=deal buying_party"`
}

type BuyingPartyCreate struct {
	Name                 string  `json:"name" validate:"required"`
	TargetAcquisitionMin *int    `json:"targetAcquisitionMin"`
	TargetAcquisitionMax *int    `json:"targetAcquisitionMax"`
	BudgetMin            *string `json:"budgetMin"`
	BudgetMax            *string `json:"budgetMax"`
	Timeline             *string `json:"timeline"`
	Status               string  `json:"status"`
	Notes                *string `json:"notes"`
}

type BuyingPartyUpdate struct {
	Name                 *string `json:"name"`
	TargetAcquisitionMin *int    `json:"targetAcquisitionMin"`
	TargetAcquisitionMax *int    `json:"targetAcquisitionMax"`
	BudgetMin            *string `json:"budgetMin"`
	BudgetMax            *string `json:"budgetMax"`
	Timeline             *string `json:"timeline"`
	Status               *string `json:"status"`
	Notes                *string `json:"notes"`
}

type ActivityCreate struct {
	DealID           *string    `json:"dealId"`
	BuyingPartyID    *string    `json:"buyingPartyId"`
	ParentActivityID *string    `json:"parentActivityId"`
	Type             string     `json:"type" validate:"required"`
	Title            string     `json:"title" validate:"required"`
	Description      *string    `json:"description"`
	Status           string     `json:"status"`
	AssignedTo       *string    `json:"assignedTo"`
	DueDate          *time.Time `json:"dueDate"`
}

type ActivityUpdate struct {
	Type             *string    `json:"type"`
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Status           *string    `json:"status"`
	AssignedTo       *string    `json:"assignedTo"`
	ParentActivityID *string    `json:"parentActivityId"`
	DueDate          *time.Time `json:"dueDate"`
	CompletedAt      *time.Time `json:"completedAt"`
}

type DocumentCreate struct {
	DealID        *string `json:"dealId"`
	BuyingPartyID *string `json:"buyingPartyId"`
	Name          string  `json:"name" validate:"required"`
	Status        string  `json:"status"`
	URL           *string `json:"url"`
	DocType       *string `json:"docType"`
}

type MatchCreate struct {
	DealID            string  `json:"dealId" validate:"required"`
	BuyingPartyID     string  `json:"buyingPartyId" validate:"required"`
	TargetAcquisition *int    `json:"targetAcquisition"`
	Budget            *string `json:"budget"`
	Status            string  `json:"status"`
}

type NotesUpdate struct {
	Notes string `json:"notes"`
}
