package repository

// Repositories agrupa los puertos atados a una misma conexión o transacción.
type Repositories struct {
	Users         UserRepository
	Roles         RoleRepository
	Partners      PartnerRepository
	Registrations PartnerRegistrationRepository
	Contacts      ContactRepository
	Activities    ActivityRepository
	ClientSubBCS  ClientSubBCSRepository
	PartnerSubBCS PartnerSubBCSRepository
	Apps          UserAppRepository
	Leads         LeadRepository
	Opportunities OpportunityRepository
	Commissions   CommissionRepository
}
