// Package kernel provides the shared value objects of the parcel domain.
//
// The package includes:
//   - UUID: identifier for every aggregate and address
//   - Address: immutable postal address, snapshotted into parcels
//   - Role and Actor: the authenticated caller the core authorizes against
//
// All value objects are immutable, validated at construction and reject
// their zero value through Validate.
package kernel
