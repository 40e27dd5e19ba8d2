package entity

import "time"

// ActivityValidation tipo de actividad que valida a un contacto.
const ActivityValidation = "Validación de Cliente"

// Tipos registrados automáticamente por el CRM.
const (
	ActivityLeadCreated        = "lead_created"
	ActivityLeadUpdated        = "lead_updated"
	ActivityOpportunityCreated = "opportunity_created"
	ActivityOpportunityUpdated = "opportunity_updated"
)

// Activity interacción registrada por un partner (llamada, reunión, validación, eventos de CRM).
type Activity struct {
	ID                int64
	PartnerID         int64
	ContactID         *int64
	LeadID            *int64
	OpportunityID     *int64
	Type              string
	Subject           string
	Description       string
	ActivityDate      time.Time
	FollowUpDate      *time.Time
	Completed         bool
	ValidationSuccess bool
	CreatedAt         time.Time

	ContactName string // solo lectura
}

// ValidatesContact indica si la actividad dispara la transición unvalidated -> validated.
func (a *Activity) ValidatesContact() bool {
	return a.Type == ActivityValidation && a.Completed && a.ValidationSuccess && a.ContactID != nil
}
