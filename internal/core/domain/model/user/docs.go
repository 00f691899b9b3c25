// Package user contains the User aggregate: identity, role, the labeled
// address book and, for riders, the RiderProfile with hub pinning and
// availability.
//
// Availability transitions are driven by the parcel lifecycle:
//
//	u.EnsureAssignableTo(hubID)          // RIDER, same hub, AVAILABLE
//	u.StartDelivery()                    // OUT_FOR_DELIVERY leg begins
//	u.FinishDelivery(otherOutForDelivery) // back to AVAILABLE when idle
package user
