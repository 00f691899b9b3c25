// Package hub contains the Hub aggregate: a physical facility parcels and
// riders are routed through. Hubs are referenced by parcels and riders but
// never owned by them.
package hub

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrNameIsRequired        = errs.NewValueIsRequiredError("name")
	ErrLocationIsRequired    = errs.NewValueIsRequiredError("location")
	ErrContactIsRequired     = errs.NewValueIsRequiredError("contactNumber")
	ErrCoveredAreaIsRequired = errs.NewValueIsRequiredError("coveredArea")
	ErrHubIsNotConstructed   = errors.New("Hub must be created via NewHub constructor")
)

// Hub is a named facility with the list of areas it serves.
// The name is unique across hubs; uniqueness is enforced by storage.
type Hub struct {
	id            kernel.UUID
	name          string
	location      string
	contactNumber string
	coveredAreas  []string
	guard         guard.ConstructorGuard
}

// Changes is a partial update. Nil fields and a nil CoveredAreas slice are left untouched.
type Changes struct {
	Name          *string
	Location      *string
	ContactNumber *string
	CoveredAreas  []string
}

// IsEmpty reports whether the update would change nothing.
func (c Changes) IsEmpty() bool {
	return c.Name == nil && c.Location == nil && c.ContactNumber == nil && c.CoveredAreas == nil
}

func NewHub(id kernel.UUID, name, location, contactNumber string, coveredAreas []string) (*Hub, error) {
	h := &Hub{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		h.setID(id),
		h.setName(name),
		h.setLocation(location),
		h.setContactNumber(contactNumber),
		h.setCoveredAreas(coveredAreas),
	); err != nil {
		return nil, err
	}

	return h, nil
}

// RestoreHub rebuilds a hub loaded from storage.
func RestoreHub(id kernel.UUID, name, location, contactNumber string, coveredAreas []string) (*Hub, error) {
	return NewHub(id, name, location, contactNumber, coveredAreas)
}

func (h *Hub) Validate() error {
	if h == nil {
		return ErrHubIsNotConstructed
	}
	return h.guard.Validate(ErrHubIsNotConstructed)
}

func (h *Hub) ID() kernel.UUID {
	return h.id
}

func (h *Hub) Name() string {
	return h.name
}

func (h *Hub) Location() string {
	return h.location
}

func (h *Hub) ContactNumber() string {
	return h.contactNumber
}

// CoveredAreas returns a copy of the served areas.
func (h *Hub) CoveredAreas() []string {
	out := make([]string, len(h.coveredAreas))
	copy(out, h.coveredAreas)
	return out
}

// Covers reports whether the hub serves the given area, ignoring case.
func (h *Hub) Covers(area string) bool {
	for _, a := range h.coveredAreas {
		if strings.EqualFold(a, strings.TrimSpace(area)) {
			return true
		}
	}
	return false
}

// Apply validates every change first and only then mutates the hub.
func (h *Hub) Apply(c Changes) error {
	next := *h
	var errList []error
	if c.Name != nil {
		errList = append(errList, next.setName(*c.Name))
	}
	if c.Location != nil {
		errList = append(errList, next.setLocation(*c.Location))
	}
	if c.ContactNumber != nil {
		errList = append(errList, next.setContactNumber(*c.ContactNumber))
	}
	if c.CoveredAreas != nil {
		errList = append(errList, next.setCoveredAreas(c.CoveredAreas))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	*h = next
	return nil
}

func (h *Hub) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *Hub) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	h.name = name
	return nil
}

func (h *Hub) setLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return ErrLocationIsRequired
	}
	h.location = location
	return nil
}

func (h *Hub) setContactNumber(contact string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return ErrContactIsRequired
	}
	h.contactNumber = contact
	return nil
}

func (h *Hub) setCoveredAreas(areas []string) error {
	cleaned := make([]string, 0, len(areas))
	for _, a := range areas {
		if a = strings.TrimSpace(a); a != "" {
			cleaned = append(cleaned, a)
		}
	}
	if len(cleaned) == 0 {
		return ErrCoveredAreaIsRequired
	}
	h.coveredAreas = cleaned
	return nil
}
