// Package services holds domain services: rules that need more than one
// aggregate or an outside source such as a clock.
//
//   - ParcelLifecycle applies hub and rider assignments and status changes to
//     a parcel, keeping rider availability in step.
//   - TrackingIDGenerator issues parcel tracking ids.
package services
