package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPendingAssignmentsQuery_Valid(t *testing.T) {
	query := queries.NewGetPendingAssignmentsQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetPendingAssignmentsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPendingAssignmentsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingAssignmentsQueryIsNotConstructed)
}
