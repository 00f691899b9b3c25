package queries

import (
	"context"
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrListHubsQueryIsNotConstructed = errors.New(
	"ListHubsQuery must be created via NewListHubsQuery constructor",
)

// ListHubsQuery pages through hubs, optionally filtered by name or location.
type ListHubsQuery struct {
	search string
	page   Page

	guard guard.ConstructorGuard
}

func NewListHubsQuery(search string, page, limit int) (ListHubsQuery, error) {
	p, err := newPage(page, limit)
	if err != nil {
		return ListHubsQuery{}, err
	}

	return ListHubsQuery{
		search: strings.TrimSpace(search),
		page:   p,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListHubsQuery) Validate() error {
	return q.guard.Validate(ErrListHubsQueryIsNotConstructed)
}

type HubView struct {
	ID            kernel.UUID
	Name          string
	Location      string
	ContactNumber string
	CoveredAreas  []string
}

type ListHubsQueryResponse struct {
	Data []HubView
	Meta Meta
}

type hubRow struct {
	ID            uuid.UUID
	Name          string
	Location      string
	ContactNumber string
	CoveredAreas  pq.StringArray
}

func (r hubRow) toView() (HubView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return HubView{}, err
	}
	return HubView{
		ID:            id,
		Name:          r.Name,
		Location:      r.Location,
		ContactNumber: r.ContactNumber,
		CoveredAreas:  []string(r.CoveredAreas),
	}, nil
}

type ListHubsQueryHandler struct {
	db *gorm.DB
}

func NewListHubsQueryHandler(db *gorm.DB) ListHubsQueryHandler {
	return ListHubsQueryHandler{db: db}
}

func (h ListHubsQueryHandler) Handle(ctx context.Context, query ListHubsQuery) (ListHubsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListHubsQueryResponse{}, err
	}

	base := h.db.WithContext(ctx).Table("hubs")
	if query.search != "" {
		pattern := likePattern(query.search)
		base = base.Where("(name ILIKE ? OR location ILIKE ?)", pattern, pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ListHubsQueryResponse{}, err
	}

	rows := make([]hubRow, 0)
	err := base.
		Select("id", "name", "location", "contact_number", "covered_areas").
		Order("name").
		Limit(query.page.Limit).
		Offset(query.page.offset()).
		Scan(&rows).Error
	if err != nil {
		return ListHubsQueryResponse{}, err
	}

	hubs := make([]HubView, 0, len(rows))
	for _, row := range rows {
		view, viewErr := row.toView()
		if viewErr != nil {
			return ListHubsQueryResponse{}, viewErr
		}
		hubs = append(hubs, view)
	}

	return ListHubsQueryResponse{Data: hubs, Meta: newMeta(query.page, total)}, nil
}
