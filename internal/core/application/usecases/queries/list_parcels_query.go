package queries

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery constructor",
)

// Scope selects whose parcels are listed: the actor's as sender, receiver,
// pickup rider or delivery rider.
type Scope string

const (
	ScopeSent     Scope = "SENT"
	ScopeIncoming Scope = "INCOMING"
	ScopePickup   Scope = "PICKUP"
	ScopeDelivery Scope = "DELIVERY"
)

func (s Scope) column() (string, error) {
	switch s {
	case ScopeSent:
		return "p.sender_id", nil
	case ScopeIncoming:
		return "p.receiver_id", nil
	case ScopePickup:
		return "p.pickup_rider_id", nil
	case ScopeDelivery:
		return "p.delivery_rider_id", nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%q is not a parcel scope", string(s)))
	}
}

// RiderOnly reports whether the scope lists a rider's work queue.
func (s Scope) RiderOnly() bool {
	return s == ScopePickup || s == ScopeDelivery
}

// sortColumns maps the sortable API names to columns.
var sortColumns = map[string]string{
	"createdAt":   "p.created_at",
	"updatedAt":   "p.updated_at",
	"trackingId":  "p.tracking_id",
	"status":      "p.status",
	"priority":    "p.priority",
	"deliveryFee": "p.delivery_fee",
	"weight":      "p.weight",
}

const defaultSort = "-createdAt"

// fieldColumns maps the projectable API names to select expressions.
var fieldColumns = map[string][]string{
	"trackingId":  {"p.tracking_id"},
	"status":      {"p.status"},
	"priority":    {"p.priority"},
	"deliveryFee": {"p.delivery_fee"},
	"weight":      {"p.weight"},
	"distance":    {"p.distance"},
	"remarks":     {"p.remarks"},
	"createdAt":   {"p.created_at"},
	"updatedAt":   {"p.updated_at"},
	"sender":      {"s.name AS sender_name", "s.phone AS sender_phone"},
	"receiver":    {"r.name AS receiver_name", "r.phone AS receiver_phone"},
	"parcelType":  {"f.parcel_type"},
}

// Fields lists every projectable field in response order.
var Fields = []string{
	"trackingId", "status", "priority", "parcelType", "deliveryFee", "weight", "distance",
	"remarks", "sender", "receiver", "createdAt", "updatedAt",
}

// ListOptions are the raw list parameters as they arrive from a caller.
// Empty values mean "not set".
type ListOptions struct {
	Search   string
	Status   string
	Priority string
	Sort     string
	Fields   []string
	Page     int
	Limit    int
}

// ListParcelsQuery pages through the parcels the actor is involved in.
type ListParcelsQuery struct {
	actor    kernel.Actor
	scope    Scope
	search   string
	status   *parcel.Status
	priority *parcel.Priority
	order    string
	fields   []string
	page     Page

	guard guard.ConstructorGuard
}

func NewListParcelsQuery(actor kernel.Actor, scope Scope, opts ListOptions) (ListParcelsQuery, error) {
	q := ListParcelsQuery{
		actor:  actor,
		scope:  scope,
		search: strings.TrimSpace(opts.Search),
		guard:  guard.NewConstructorGuard(),
	}

	_, scopeErr := scope.column()
	page, pageErr := newPage(opts.Page, opts.Limit)
	q.page = page

	if err := errors.Join(
		actor.Validate(),
		scopeErr,
		pageErr,
		q.setStatus(opts.Status),
		q.setPriority(opts.Priority),
		q.setOrder(opts.Sort),
		q.setFields(opts.Fields),
	); err != nil {
		return ListParcelsQuery{}, err
	}

	return q, nil
}

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

func (q ListParcelsQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListParcelsQuery) Scope() Scope {
	return q.scope
}

// Fields returns the projected API field names in response order.
func (q ListParcelsQuery) Fields() []string {
	return slices.Clone(q.fields)
}

func (q ListParcelsQuery) Page() Page {
	return q.page
}

func (q *ListParcelsQuery) setStatus(s string) error {
	if s == "" {
		return nil
	}
	status, err := parcel.ParseStatus(strings.ToUpper(s))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	q.status = &status
	return nil
}

func (q *ListParcelsQuery) setPriority(s string) error {
	if s == "" {
		return nil
	}
	priority, err := parcel.ParsePriority(strings.ToUpper(s))
	if err != nil {
		return err
	}
	q.priority = &priority
	return nil
}

func (q *ListParcelsQuery) setOrder(sort string) error {
	if sort == "" {
		sort = defaultSort
	}

	direction := "ASC"
	name := sort
	if rest, ok := strings.CutPrefix(sort, "-"); ok {
		direction = "DESC"
		name = rest
	}

	column, ok := sortColumns[name]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("sort", fmt.Errorf("cannot sort by %q", name))
	}

	q.order = column + " " + direction
	return nil
}

func (q *ListParcelsQuery) setFields(requested []string) error {
	if len(requested) == 0 {
		q.fields = slices.Clone(Fields)
		return nil
	}

	for _, f := range requested {
		if _, ok := fieldColumns[f]; !ok {
			return errs.NewValueIsInvalidErrorWithCause("fields", fmt.Errorf("%q is not a parcel field", f))
		}
	}

	fields := make([]string, 0, len(requested))
	for _, f := range Fields {
		if slices.Contains(requested, f) {
			fields = append(fields, f)
		}
	}
	q.fields = fields
	return nil
}

func (q ListParcelsQuery) columns() []string {
	columns := []string{"p.id"}
	for _, f := range q.fields {
		columns = append(columns, fieldColumns[f]...)
	}
	return columns
}
