package crm

// Apply copies the set fields of a partial update onto the record. Fields the
// caller left absent (nil) are untouched.

func (d *Deal) Apply(in DealUpdate) {
	if in.CompanyName != nil {
		d.CompanyName = *in.CompanyName
	}
	if in.Revenue != nil {
		d.Revenue = *in.Revenue
	}
	if in.Stage != nil {
		d.Stage = *in.Stage
	}
	if in.Priority != nil {
		d.Priority = *in.Priority
	}
	if in.Owner != nil {
		d.Owner = *in.Owner
	}
	if in.SDE != nil {
		d.SDE = in.SDE
	}
	if in.ValuationMin != nil {
		d.ValuationMin = in.ValuationMin
	}
	if in.ValuationMax != nil {
		d.ValuationMax = in.ValuationMax
	}
	if in.SDEMultiple != nil {
		d.SDEMultiple = in.SDEMultiple
	}
	if in.RevenueMultiple != nil {
		d.RevenueMultiple = in.RevenueMultiple
	}
	if in.Commission != nil {
		d.Commission = in.Commission
	}
	if in.Description != nil {
		d.Description = in.Description
	}
	if in.Notes != nil {
		d.Notes = in.Notes
	}
	if in.NextStepDays != nil {
		d.NextStepDays = in.NextStepDays
	}
	if in.Touches != nil {
		d.Touches = *in.Touches
	}
	if in.AgeInStage != nil {
		d.AgeInStage = *in.AgeInStage
	}
	if in.HealthScore != nil {
		d.HealthScore = *in.HealthScore
	}
}

func (p *BuyingParty) Apply(in BuyingPartyUpdate) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.TargetAcquisitionMin != nil {
		p.TargetAcquisitionMin = in.TargetAcquisitionMin
	}
	if in.TargetAcquisitionMax != nil {
		p.TargetAcquisitionMax = in.TargetAcquisitionMax
	}
	if in.BudgetMin != nil {
		p.BudgetMin = in.BudgetMin
	}
	if in.BudgetMax != nil {
		p.BudgetMax = in.BudgetMax
	}
	if in.Timeline != nil {
		p.Timeline = in.Timeline
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Notes != nil {
		p.Notes = in.Notes
	}
}

func (a *Activity) Apply(in ActivityUpdate) {
	if in.Type != nil {
		a.Type = *in.Type
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Description != nil {
		a.Description = in.Description
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.AssignedTo != nil {
		a.AssignedTo = in.AssignedTo
	}
	if in.ParentActivityID != nil {
		a.ParentActivityID = in.ParentActivityID
	}
	if in.DueDate != nil {
		a.DueDate = in.DueDate
	}
	if in.CompletedAt != nil {
		a.CompletedAt = in.CompletedAt
	}
}
