// Package parcel contains the Parcel aggregate and its lifecycle.
//
// A parcel is opened PENDING by its sender, approved or rejected by an
// admin, carried by a pickup rider to the delivery hub and handed over by a
// delivery rider. Every status change is gated by role, by the identity of
// the designated sender or rider and by the current status, and appends one
// TrackingLog entry.
//
// Example:
//
//	if err := p.Transition(actor, parcel.PickedUp, time.Now()); err != nil {
//	    // Forbidden, Unauthorized or invalid status update
//	}
package parcel
