package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dealdash/dealdash/internal/crm"
)

// Memory is the map-backed fallback backend. Insertion order is preserved for
// list results so the hierarchy engine sees a stable snapshot order.
type Memory struct {
	mu sync.RWMutex

	deals      map[string]crm.Deal
	contacts   map[string]crm.Contact
	parties    map[string]crm.BuyingParty
	matches    map[string]crm.DealBuyerMatch
	activities map[string]crm.Activity
	documents  map[string]crm.Document
	users      map[string]crm.User

	order map[string]int // creation sequence per record id
	seq   int
}

// NewMemory creates an empty in-memory store. With seed=true it is populated
// with one sample deal, contact, buying party, match, activity and document.
func NewMemory(seed bool) *Memory {
	m := &Memory{
		deals:      make(map[string]crm.Deal),
		contacts:   make(map[string]crm.Contact),
		parties:    make(map[string]crm.BuyingParty),
		matches:    make(map[string]crm.DealBuyerMatch),
		activities: make(map[string]crm.Activity),
		documents:  make(map[string]crm.Document),
		users:      make(map[string]crm.User),
		order:      make(map[string]int),
	}
	if seed {
		m.seed()
	}
	return m
}

func (m *Memory) track(id string) {
	m.seq++
	m.order[id] = m.seq
}

func str(s string) *string { return &s }
func num(i int) *int       { return &i }

func (m *Memory) seed() {
	now := time.Now().UTC()

	dealID := uuid.NewString()
	m.deals[dealID] = crm.Deal{
		ID:              dealID,
		CompanyName:     "TechFlow Industries",
		Revenue:         "2800000",
		SDE:             str("950000"),
		ValuationMin:    str("8500000"),
		ValuationMax:    str("12000000"),
		SDEMultiple:     str("10.5"),
		RevenueMultiple: str("3.8"),
		Commission:      str("3.5"),
		Stage:           "valuation",
		Priority:        "high",
		Description:     str("B2B payment processing with AI fraud detection"),
		Notes:           str("Strong team, recurring revenue model"),
		NextStepDays:    num(3),
		Touches:         12,
		AgeInStage:      14,
		HealthScore:     55,
		Owner:           "Jennifer Walsh",
		CreatedAt:       now,
	}
	m.track(dealID)

	contactID := uuid.NewString()
	m.contacts[contactID] = crm.Contact{
		ID:         contactID,
		Name:       "John Mitchell",
		Role:       "Owner",
		Email:      str("john@techflow.com"),
		Phone:      str("555-0101"),
		EntityID:   dealID,
		EntityType: "deal",
	}
	m.track(contactID)

	partyID := uuid.NewString()
	m.parties[partyID] = crm.BuyingParty{
		ID:                   partyID,
		Name:                 "TechCorp Industries",
		TargetAcquisitionMin: num(60),
		TargetAcquisitionMax: num(80),
		BudgetMin:            str("5000000"),
		BudgetMax:            str("15000000"),
		Timeline:             str("Q2 2024"),
		Status:               "evaluating",
		Notes:                str("Strategic buyer"),
		CreatedAt:            now,
	}
	m.track(partyID)

	matchID := uuid.NewString()
	m.matches[matchID] = crm.DealBuyerMatch{
		ID:                matchID,
		DealID:            dealID,
		BuyingPartyID:     partyID,
		TargetAcquisition: num(70),
		Budget:            str("8000000"),
		Status:            "interested",
		CreatedAt:         now,
	}
	m.track(matchID)

	activityID := uuid.NewString()
	m.activities[activityID] = crm.Activity{
		ID:          activityID,
		DealID:      &dealID,
		Type:        "task",
		Title:       "Follow-up on financial questions",
		Description: str("Send email to CFO requesting clarification on Q4 numbers"),
		Status:      "completed",
		AssignedTo:  str("Jennifer Walsh"),
		CreatedAt:   now,
	}
	m.track(activityID)

	docID := uuid.NewString()
	m.documents[docID] = crm.Document{
		ID:        docID,
		DealID:    &dealID,
		Name:      "Financial Statements 2023",
		Status:    "signed",
		CreatedAt: now,
	}
	m.track(docID)
}

// sortByCreation orders ids by insertion sequence.
func (m *Memory) sortByCreation(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return m.order[ids[i]] < m.order[ids[j]] })
}

// Deals

func (m *Memory) Deals(ctx context.Context) ([]crm.Deal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.deals))
	for id := range m.deals {
		ids = append(ids, id)
	}
	m.sortByCreation(ids)
	out := make([]crm.Deal, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.deals[id])
	}
	return out, nil
}

func (m *Memory) Deal(ctx context.Context, id string) (*crm.Deal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.deals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (m *Memory) CreateDeal(ctx context.Context, in crm.DealCreate) (*crm.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	priority := in.Priority
	if priority == "" {
		priority = "medium"
	}
	health := 85
	if in.HealthScore != nil {
		health = *in.HealthScore
	}
	d := crm.Deal{
		ID:              uuid.NewString(),
		CompanyName:     in.CompanyName,
		Revenue:         in.Revenue,
		SDE:             in.SDE,
		ValuationMin:    in.ValuationMin,
		ValuationMax:    in.ValuationMax,
		SDEMultiple:     in.SDEMultiple,
		RevenueMultiple: in.RevenueMultiple,
		Commission:      in.Commission,
		Stage:           in.Stage,
		Priority:        priority,
		Description:     in.Description,
		Notes:           in.Notes,
		NextStepDays:    in.NextStepDays,
		Touches:         in.Touches,
		AgeInStage:      in.AgeInStage,
		HealthScore:     health,
		Owner:           in.Owner,
		CreatedAt:       time.Now().UTC(),
	}
	m.deals[d.ID] = d
	m.track(d.ID)
	return &d, nil
}

func (m *Memory) UpdateDeal(ctx context.Context, id string, in crm.DealUpdate) (*crm.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deals[id]
	if !ok {
		return nil, ErrNotFound
	}
	d.Apply(in)
	m.deals[id] = d
	return &d, nil
}

func (m *Memory) DeleteDeal(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.deals[id]; !ok {
		return ErrNotFound
	}
	delete(m.deals, id)
	return nil
}

func (m *Memory) UpdateDealNotes(ctx context.Context, id, notes string) (*crm.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deals[id]
	if !ok {
		return nil, ErrNotFound
	}
	d.Notes = &notes
	m.deals[id] = d
	return &d, nil
}

// Contacts

func (m *Memory) Contacts(ctx context.Context) ([]crm.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.contacts))
	for id := range m.contacts {
		ids = append(ids, id)
	}
	m.sortByCreation(ids)
	out := make([]crm.Contact, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.contacts[id])
	}
	return out, nil
}

func (m *Memory) ContactsByEntity(ctx context.Context, entityID, entityType string) ([]crm.Contact, error) {
	all, _ := m.Contacts(ctx)
	out := []crm.Contact{}
	for _, c := range all {
		if c.EntityID == entityID && c.EntityType == entityType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Memory) CreateContact(ctx context.Context, in crm.ContactCreate) (*crm.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := crm.Contact{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Role:       in.Role,
		Email:      in.Email,
		Phone:      in.Phone,
		EntityID:   in.EntityID,
		EntityType: in.EntityType,
	}
	m.contacts[c.ID] = c
	m.track(c.ID)
	return &c, nil
}

func (m *Memory) DeleteContact(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.contacts[id]; !ok {
		return ErrNotFound
	}
	delete(m.contacts, id)
	return nil
}

// Buying parties

func (m *Memory) BuyingParties(ctx context.Context) ([]crm.BuyingParty, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.parties))
	for id := range m.parties {
		ids = append(ids, id)
	}
	m.sortByCreation(ids)
	out := make([]crm.BuyingParty, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.parties[id])
	}
	return out, nil
}

func (m *Memory) BuyingParty(ctx context.Context, id string) (*crm.BuyingParty, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.parties[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *Memory) CreateBuyingParty(ctx context.Context, in crm.BuyingPartyCreate) (*crm.BuyingParty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := in.Status
	if status == "" {
		status = "evaluating"
	}
	p := crm.BuyingParty{
		ID:                   uuid.NewString(),
		Name:                 in.Name,
		TargetAcquisitionMin: in.TargetAcquisitionMin,
		TargetAcquisitionMax: in.TargetAcquisitionMax,
		BudgetMin:            in.BudgetMin,
		BudgetMax:            in.BudgetMax,
		Timeline:             in.Timeline,
		Status:               status,
		Notes:                in.Notes,
		CreatedAt:            time.Now().UTC(),
	}
	m.parties[p.ID] = p
	m.track(p.ID)
	return &p, nil
}

func (m *Memory) UpdateBuyingParty(ctx context.Context, id string, in crm.BuyingPartyUpdate) (*crm.BuyingParty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.parties[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Apply(in)
	m.parties[id] = p
	return &p, nil
}

func (m *Memory) DeleteBuyingParty(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.parties[id]; !ok {
		return ErrNotFound
	}
	delete(m.parties, id)
	return nil
}

func (m *Memory) UpdateBuyingPartyNotes(ctx context.Context, id, notes string) (*crm.BuyingParty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.parties[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Notes = &notes
	m.parties[id] = p
	return &p, nil
}

// Matches

func (m *Memory) DealBuyerMatches(ctx context.Context, dealID string) ([]crm.DealBuyerMatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []crm.DealBuyerMatch{}
	for _, match := range m.matches {
		if match.DealID == dealID {
			out = append(out, match)
		}
	}
	sort.Slice(out, func(i, j int) bool { return m.order[out[i].ID] < m.order[out[j].ID] })
	return out, nil
}

func (m *Memory) BuyingPartyMatches(ctx context.Context, partyID string) ([]crm.DealBuyerMatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []crm.DealBuyerMatch{}
	for _, match := range m.matches {
		if match.BuyingPartyID == partyID {
			out = append(out, match)
		}
	}
	sort.Slice(out, func(i, j int) bool { return m.order[out[i].ID] < m.order[out[j].ID] })
	return out, nil
}

func (m *Memory) CreateDealBuyerMatch(ctx context.Context, in crm.MatchCreate) (*crm.DealBuyerMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := in.Status
	if status == "" {
		status = "interested"
	}
	match := crm.DealBuyerMatch{
		ID:                uuid.NewString(),
		DealID:            in.DealID,
		BuyingPartyID:     in.BuyingPartyID,
		TargetAcquisition: in.TargetAcquisition,
		Budget:            in.Budget,
		Status:            status,
		CreatedAt:         time.Now().UTC(),
	}
	m.matches[match.ID] = match
	m.track(match.ID)
	return &match, nil
}

func (m *Memory) DeleteDealBuyerMatch(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[id]; !ok {
		return ErrNotFound
	}
	delete(m.matches, id)
	return nil
}

// Activities

func (m *Memory) Activities(ctx context.Context) ([]crm.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.activities))
	for id := range m.activities {
		ids = append(ids, id)
	}
	m.sortByCreation(ids)
	out := make([]crm.Activity, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.activities[id])
	}
	return out, nil
}

func (m *Memory) ActivitiesByEntity(ctx context.Context, entityID string) ([]crm.Activity, error) {
	all, _ := m.Activities(ctx)
	out := []crm.Activity{}
	for _, a := range all {
		if (a.DealID != nil && *a.DealID == entityID) || (a.BuyingPartyID != nil && *a.BuyingPartyID == entityID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *Memory) CreateActivity(ctx context.Context, in crm.ActivityCreate) (*crm.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := in.Status
	if status == "" {
		status = "pending"
	}
	a := crm.Activity{
		ID:               uuid.NewString(),
		DealID:           in.DealID,
		BuyingPartyID:    in.BuyingPartyID,
		ParentActivityID: in.ParentActivityID,
		Type:             in.Type,
		Title:            in.Title,
		Description:      in.Description,
		Status:           status,
		AssignedTo:       in.AssignedTo,
		DueDate:          in.DueDate,
		CreatedAt:        time.Now().UTC(),
	}
	m.activities[a.ID] = a
	m.track(a.ID)
	return &a, nil
}

func (m *Memory) UpdateActivity(ctx context.Context, id string, in crm.ActivityUpdate) (*crm.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.activities[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Apply(in)
	m.activities[id] = a
	return &a, nil
}

func (m *Memory) DeleteActivity(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.activities[id]; !ok {
		return ErrNotFound
	}
	delete(m.activities, id)
	return nil
}

// Documents

func (m *Memory) Documents(ctx context.Context) ([]crm.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.documents))
	for id := range m.documents {
		ids = append(ids, id)
	}
	m.sortByCreation(ids)
	out := make([]crm.Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.documents[id])
	}
	return out, nil
}

func (m *Memory) DocumentsByEntity(ctx context.Context, entityID string) ([]crm.Document, error) {
	all, _ := m.Documents(ctx)
	out := []crm.Document{}
	for _, d := range all {
		if (d.DealID != nil && *d.DealID == entityID) || (d.BuyingPartyID != nil && *d.BuyingPartyID == entityID) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *Memory) CreateDocument(ctx context.Context, in crm.DocumentCreate) (*crm.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := in.Status
	if status == "" {
		status = "draft"
	}
	d := crm.Document{
		ID:            uuid.NewString(),
		DealID:        in.DealID,
		BuyingPartyID: in.BuyingPartyID,
		Name:          in.Name,
		Status:        status,
		URL:           in.URL,
		DocType:       in.DocType,
		CreatedAt:     time.Now().UTC(),
	}
	m.documents[d.ID] = d
	m.track(d.ID)
	return &d, nil
}

func (m *Memory) DeleteDocument(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.documents[id]; !ok {
		return ErrNotFound
	}
	delete(m.documents, id)
	return nil
}

// Agreements are not tracked by the memory backend, matching the original
// fallback behavior: the NDA query answers empty rather than failing.
func (m *Memory) BuyersWithSignedNDA(ctx context.Context, dealID string) ([]crm.BuyingParty, error) {
	return []crm.BuyingParty{}, nil
}

// Users

func (m *Memory) CreateUser(ctx context.Context, email, passwordHash string) (*crm.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}
	u := crm.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[u.ID] = u
	m.track(u.ID)
	return &u, nil
}

func (m *Memory) UserByEmail(ctx context.Context, email string) (*crm.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UserByID(ctx context.Context, id string) (*crm.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) UserByResetToken(ctx context.Context, token string) (*crm.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SetResetToken(ctx context.Context, userID string, token *string, expiresAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.ResetToken = token
	u.ResetTokenExpiresAt = expiresAt
	m.users[userID] = u
	return nil
}

func (m *Memory) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiresAt = nil
	m.users[userID] = u
	return nil
}
