package models

// Role defines the user role
type Role string

const (
	RoleMentor    Role = "mentor"
	RoleCurator   Role = "curator"
	RoleHR        Role = "hr"
	RoleCandidate Role = "candidate"
	RoleIntern    Role = "intern"
)

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMentor, RoleCurator, RoleHR, RoleCandidate, RoleIntern:
		return true
	}
	return false
}

// VacancyStatus defines the lifecycle state of a vacancy.
// Transitions: hidden -> pending -> accepted -> published -> closed,
// with direct closure from any earlier state via deletion.
type VacancyStatus string

const (
	VacancyHidden    VacancyStatus = "hidden"
	VacancyPending   VacancyStatus = "pending"
	VacancyAccepted  VacancyStatus = "accepted"
	VacancyPublished VacancyStatus = "published"
	VacancyClosed    VacancyStatus = "closed"
)

// OfferStatus defines the state of a mentor-vacancy offer
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferActive   OfferStatus = "active"
	OfferDeclined OfferStatus = "declined"
)

// ApplicationStatus defines the state of an intern application.
// unverified/verified are set by the automatic screening at submission
// time; approved/declined are curator actions.
type ApplicationStatus string

const (
	ApplicationUnverified ApplicationStatus = "unverified"
	ApplicationVerified   ApplicationStatus = "verified"
	ApplicationApproved   ApplicationStatus = "approved"
	ApplicationDeclined   ApplicationStatus = "declined"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationUnverified, ApplicationVerified, ApplicationApproved, ApplicationDeclined:
		return true
	}
	return false
}
