package service

import (
	"net/http"
	"testing"

	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUnconfiguredSearch(t *testing.T) {
	svc := NewMeiliSearchService(nil)

	_, err := svc.Search("maya", IndexChildren, 10)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.MapErrorToStatus(err))

	assert.NotPanics(t, func() {
		svc.IndexChild(&entity.Child{FirstName: "Maya", LastName: "Chen"})
		svc.Remove(IndexChildren, uuid.New())
	})
}

func TestIndexFor(t *testing.T) {
	index, err := indexFor("")
	assert.NoError(t, err)
	assert.Equal(t, IndexChildren, index)

	index, err = indexFor("pickups")
	assert.NoError(t, err)
	assert.Equal(t, IndexPickups, index)

	_, err = indexFor("staff")
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestCleanStripsMarkup(t *testing.T) {
	s := NewMeiliSearchService(nil).(*meiliSearchService)
	assert.Equal(t, "Peanuts & tree nuts", s.clean("<b>Peanuts</b>   &amp; tree\n nuts"))
}
