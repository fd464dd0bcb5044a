package supabase

import (
	"time"

	"github.com/dealdash/dealdash/internal/crm"
)

// Row structs carry the snake_case JSON the PostgREST endpoint speaks.

type dealRow struct {
	ID              string    `json:"id"`
	CompanyName     string    `json:"company_name"`
	Revenue         string    `json:"revenue"`
	SDE             *string   `json:"sde"`
	ValuationMin    *string   `json:"valuation_min"`
	ValuationMax    *string   `json:"valuation_max"`
	SDEMultiple     *string   `json:"sde_multiple"`
	RevenueMultiple *string   `json:"revenue_multiple"`
	Commission      *string   `json:"commission"`
	Stage           string    `json:"stage"`
	Priority        string    `json:"priority"`
	Description     *string   `json:"description"`
	Notes           *string   `json:"notes"`
	NextStepDays    *int      `json:"next_step_days"`
	Touches         int       `json:"touches"`
	AgeInStage      int       `json:"age_in_stage"`
	HealthScore     int       `json:"health_score"`
	Owner           string    `json:"owner"`
	CreatedAt       time.Time `json:"created_at"`
}

func (r dealRow) toModel() crm.Deal {
	return crm.Deal{
		ID: r.ID, CompanyName: r.CompanyName, Revenue: r.Revenue, SDE: r.SDE,
		ValuationMin: r.ValuationMin, ValuationMax: r.ValuationMax,
		SDEMultiple: r.SDEMultiple, RevenueMultiple: r.RevenueMultiple,
		Commission: r.Commission, Stage: r.Stage, Priority: r.Priority,
		Description: r.Description, Notes: r.Notes, NextStepDays: r.NextStepDays,
		Touches: r.Touches, AgeInStage: r.AgeInStage, HealthScore: r.HealthScore,
		Owner: r.Owner, CreatedAt: r.CreatedAt,
	}
}

func dealToRow(d crm.Deal) dealRow {
	return dealRow{
		ID: d.ID, CompanyName: d.CompanyName, Revenue: d.Revenue, SDE: d.SDE,
		ValuationMin: d.ValuationMin, ValuationMax: d.ValuationMax,
		SDEMultiple: d.SDEMultiple, RevenueMultiple: d.RevenueMultiple,
		Commission: d.Commission, Stage: d.Stage, Priority: d.Priority,
		Description: d.Description, Notes: d.Notes, NextStepDays: d.NextStepDays,
		Touches: d.Touches, AgeInStage: d.AgeInStage, HealthScore: d.HealthScore,
		Owner: d.Owner, CreatedAt: d.CreatedAt,
	}
}

type contactRow struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	EntityID   string  `json:"entity_id"`
	EntityType string  `json:"entity_type"`
}

func (r contactRow) toModel() crm.Contact {
	return crm.Contact{
		ID: r.ID, Name: r.Name, Role: r.Role, Email: r.Email, Phone: r.Phone,
		EntityID: r.EntityID, EntityType: r.EntityType,
	}
}

type partyRow struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	TargetAcquisitionMin *int      `json:"target_acquisition_min"`
	TargetAcquisitionMax *int      `json:"target_acquisition_max"`
	BudgetMin            *string   `json:"budget_min"`
	BudgetMax            *string   `json:"budget_max"`
	Timeline             *string   `json:"timeline"`
	Status               string    `json:"status"`
	Notes                *string   `json:"notes"`
	CreatedAt            time.Time `json:"created_at"`
}

func (r partyRow) toModel() crm.BuyingParty {
	return crm.BuyingParty{
		ID: r.ID, Name: r.Name,
		TargetAcquisitionMin: r.TargetAcquisitionMin,
		TargetAcquisitionMax: r.TargetAcquisitionMax,
		BudgetMin: r.BudgetMin, BudgetMax: r.BudgetMax, Timeline: r.Timeline,
		Status: r.Status, Notes: r.Notes, CreatedAt: r.CreatedAt,
	}
}

func partyToRow(p crm.BuyingParty) partyRow {
	return partyRow{
		ID: p.ID, Name: p.Name,
		TargetAcquisitionMin: p.TargetAcquisitionMin,
		TargetAcquisitionMax: p.TargetAcquisitionMax,
		BudgetMin: p.BudgetMin, BudgetMax: p.BudgetMax, Timeline: p.Timeline,
		Status: p.Status, Notes: p.Notes, CreatedAt: p.CreatedAt,
	}
}

type matchRow struct {
	ID                string    `json:"id"`
	DealID            string    `json:"deal_id"`
	BuyingPartyID     string    `json:"buying_party_id"`
	TargetAcquisition *int      `json:"target_acquisition"`
	Budget            *string   `json:"budget"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

func (r matchRow) toModel() crm.DealBuyerMatch {
	return crm.DealBuyerMatch{
		ID: r.ID, DealID: r.DealID, BuyingPartyID: r.BuyingPartyID,
		TargetAcquisition: r.TargetAcquisition, Budget: r.Budget,
		Status: r.Status, CreatedAt: r.CreatedAt,
	}
}

type activityRow struct {
	ID               string     `json:"id"`
	DealID           *string    `json:"deal_id"`
	BuyingPartyID    *string    `json:"buying_party_id"`
	ParentActivityID *string    `json:"parent_activity_id"`
	Type             string     `json:"type"`
	Title            string     `json:"title"`
	Description      *string    `json:"description"`
	Status           string     `json:"status"`
	AssignedTo       *string    `json:"assigned_to"`
	DueDate          *time.Time `json:"due_date"`
	CompletedAt      *time.Time `json:"completed_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (r activityRow) toModel() crm.Activity {
	return crm.Activity{
		ID: r.ID, DealID: r.DealID, BuyingPartyID: r.BuyingPartyID,
		ParentActivityID: r.ParentActivityID, Type: r.Type, Title: r.Title,
		Description: r.Description, Status: r.Status, AssignedTo: r.AssignedTo,
		DueDate: r.DueDate, CompletedAt: r.CompletedAt, CreatedAt: r.CreatedAt,
	}
}

func activityToRow(a crm.Activity) activityRow {
	return activityRow{
		ID: a.ID, DealID: a.DealID, BuyingPartyID: a.BuyingPartyID,
		ParentActivityID: a.ParentActivityID, Type: a.Type, Title: a.Title,
		Description: a.Description, Status: a.Status, AssignedTo: a.AssignedTo,
		DueDate: a.DueDate, CompletedAt: a.CompletedAt, CreatedAt: a.CreatedAt,
	}
}

type documentRow struct {
	ID            string    `json:"id"`
	DealID        *string   `json:"deal_id"`
	BuyingPartyID *string   `json:"buying_party_id"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	URL           *string   `json:"url"`
	DocType       *string   `json:"doc_type"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r documentRow) toModel() crm.Document {
	return crm.Document{
		ID: r.ID, DealID: r.DealID, BuyingPartyID: r.BuyingPartyID,
		Name: r.Name, Status: r.Status, URL: r.URL, DocType: r.DocType,
		CreatedAt: r.CreatedAt,
	}
}

type userRow struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"password_hash"`
	ResetToken          *string    `json:"reset_token"`
	ResetTokenExpiresAt *time.Time `json:"reset_token_expires_at"`
	CreatedAt           time.Time  `json:"created_at"`
}

func (r userRow) toModel() crm.User {
	return crm.User{
		ID: r.ID, Email: r.Email, PasswordHash: r.PasswordHash,
		ResetToken: r.ResetToken, ResetTokenExpiresAt: r.ResetTokenExpiresAt,
		CreatedAt: r.CreatedAt,
	}
}
