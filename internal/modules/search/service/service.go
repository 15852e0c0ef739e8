package service

import (
	"html"
	"strings"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/pkg/apperror"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
)

const (
	IndexChildren = "children"
	IndexParents  = "parents"
	IndexPickups  = "pickups"

	defaultLimit = 20
	maxLimit     = 100
)

// Indexer keeps the search index in step with registry writes. Failures are
// logged and never returned.
type Indexer interface {
	IndexChild(child *entity.Child)
	IndexParent(parent *entity.Parent)
	IndexPickup(pickup *entity.AuthorizedPickup)
	Remove(index string, id uuid.UUID)
}

type SearchService interface {
	Indexer
	Search(query, kind string, limit int64) (*meilisearch.SearchResponse, error)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

// NewMeiliSearchService returns a service that indexes nothing and answers
// searches with 503 when client is nil.
func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if client != nil {
		s.initIndexes()
	}
	return s
}

func (s *meiliSearchService) initIndexes() {
	searchable := map[string][]string{
		IndexChildren: {"first_name", "last_name", "allergies", "medical_conditions"},
		IndexParents:  {"first_name", "last_name", "email", "phone_primary"},
		IndexPickups:  {"name", "relationship_type", "phone"},
	}
	for index, attrs := range searchable {
		attrs := attrs
		if _, err := s.client.Index(index).UpdateSearchableAttributes(&attrs); err != nil {
			log.Warn().Err(err).Str("index", index).Msg("failed to update searchable attributes")
		}

		filterable := []any{"is_active"}
		if index == IndexPickups {
			filterable = append(filterable, "child_id")
		}
		if _, err := s.client.Index(index).UpdateFilterableAttributes(&filterable); err != nil {
			log.Warn().Err(err).Str("index", index).Msg("failed to update filterable attributes")
		}
	}
	log.Info().Msg("meilisearch indexes initialized")
}

type childDoc struct {
	ID                string `json:"id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	DateOfBirth       string `json:"date_of_birth"`
	Allergies         string `json:"allergies"`
	MedicalConditions string `json:"medical_conditions"`
	IsActive          bool   `json:"is_active"`
}

type parentDoc struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PhonePrimary string `json:"phone_primary"`
}

type pickupDoc struct {
	ID               string `json:"id"`
	ChildID          string `json:"child_id"`
	Name             string `json:"name"`
	RelationshipType string `json:"relationship_type"`
	Phone            string `json:"phone"`
	IsActive         bool   `json:"is_active"`
}

func (s *meiliSearchService) clean(text string) string {
	cleaned := html.UnescapeString(s.sanitizer.Sanitize(text))
	return strings.Join(strings.Fields(cleaned), " ")
}

func (s *meiliSearchService) cleanPtr(text *string) string {
	if text == nil {
		return ""
	}
	return s.clean(*text)
}

func (s *meiliSearchService) add(index, id string, doc any) {
	if s.client == nil {
		return
	}
	task, err := s.client.Index(index).AddDocuments(doc, strPtr("id"))
	if err != nil {
		log.Warn().Err(err).Str("index", index).Str("id", id).Msg("failed to index document")
		return
	}
	log.Debug().Str("index", index).Str("id", id).Int64("task_uid", task.TaskUID).Msg("document indexed")
}

func (s *meiliSearchService) IndexChild(child *entity.Child) {
	s.add(IndexChildren, child.ID.String(), []childDoc{{
		ID:                child.ID.String(),
		FirstName:         s.clean(child.FirstName),
		LastName:          s.clean(child.LastName),
		DateOfBirth:       child.DateOfBirth.String(),
		Allergies:         s.cleanPtr(child.Allergies),
		MedicalConditions: s.cleanPtr(child.MedicalConditions),
		IsActive:          child.IsActive,
	}})
}

func (s *meiliSearchService) IndexParent(parent *entity.Parent) {
	s.add(IndexParents, parent.ID.String(), []parentDoc{{
		ID:           parent.ID.String(),
		FirstName:    s.clean(parent.FirstName),
		LastName:     s.clean(parent.LastName),
		Email:        s.cleanPtr(parent.Email),
		PhonePrimary: s.clean(parent.PhonePrimary),
	}})
}

func (s *meiliSearchService) IndexPickup(pickup *entity.AuthorizedPickup) {
	s.add(IndexPickups, pickup.ID.String(), []pickupDoc{{
		ID:               pickup.ID.String(),
		ChildID:          pickup.ChildID.String(),
		Name:             s.clean(pickup.Name),
		RelationshipType: s.clean(pickup.RelationshipType),
		Phone:            s.clean(pickup.Phone),
		IsActive:         pickup.IsActive,
	}})
}

func (s *meiliSearchService) Remove(index string, id uuid.UUID) {
	if s.client == nil {
		return
	}
	if _, err := s.client.Index(index).DeleteDocument(id.String()); err != nil {
		log.Warn().Err(err).Str("index", index).Str("id", id.String()).Msg("failed to remove document from index")
	}
}

func (s *meiliSearchService) Search(query, kind string, limit int64) (*meilisearch.SearchResponse, error) {
	if s.client == nil {
		return nil, apperror.Unavailable("Search is not configured", nil)
	}

	index, err := indexFor(kind)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	res, err := s.client.Index(index).Search(query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, apperror.Unavailable("Search is temporarily unavailable", err)
	}
	return res, nil
}

func indexFor(kind string) (string, error) {
	switch kind {
	case "", IndexChildren:
		return IndexChildren, nil
	case IndexParents:
		return IndexParents, nil
	case IndexPickups:
		return IndexPickups, nil
	}
	return "", apperror.BadRequest("Invalid search type. Must be one of: children, parents, pickups")
}

func strPtr(s string) *string {
	return &s
}
