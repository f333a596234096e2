package domain

import "github.com/google/uuid"

// Resource is the unit of capacity that cannot be double-booked:
// a staff member, or the provider itself when no staff is involved.
type Resource struct {
	ProviderID uuid.UUID
	StaffID    *uuid.UUID
}

// ProviderResource returns the provider-level resource.
func ProviderResource(providerID uuid.UUID) Resource {
	return Resource{ProviderID: providerID}
}

// StaffResource returns the resource of a staff member.
func StaffResource(providerID, staffID uuid.UUID) Resource {
	return Resource{ProviderID: providerID, StaffID: &staffID}
}

// IsStaff returns true if the resource is a staff member.
func (r Resource) IsStaff() bool {
	return r.StaffID != nil
}

// Key is the value stored in bookings.resource_key.
func (r Resource) Key() string {
	if r.StaffID != nil {
		return "staff:" + r.StaffID.String()
	}
	return "provider:" + r.ProviderID.String()
}

func (r Resource) String() string {
	return r.Key()
}
