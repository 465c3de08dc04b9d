package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
)

func TestNewGetParcelQuery_ValidInput(t *testing.T) {
	parcelID := kernel.NewUUID()
	requester := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleUser}

	query, err := queries.NewGetParcelQuery(parcelID, requester)
	require.NoError(t, err)
	assert.Equal(t, parcelID, query.ParcelID())
	assert.Equal(t, requester, query.Requester())
}

func TestNewGetParcelQuery_InvalidParcelID(t *testing.T) {
	requester := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleUser}

	_, err := queries.NewGetParcelQuery(kernel.UUID{}, requester)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewGetParcelQuery_InvalidRequester(t *testing.T) {
	badActor := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleUnknown}

	_, err := queries.NewGetParcelQuery(kernel.NewUUID(), badActor)
	require.Error(t, err)
}

func TestGetParcelQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetParcelQuery

	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetParcelQueryIsNotConstructed)
}
