package response

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/projectblurimedia/Veggie-Tracker/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessWithPaginationRoundsPagesUp(t *testing.T) {
	res := SuccessWithPagination(http.StatusOK, []string{"a"}, pagination.New(2, 20), 41)

	require.NotNil(t, res.Pagination)
	assert.Equal(t, int64(3), res.Pagination.TotalPages)
	assert.Equal(t, 2, res.Pagination.Page)
	assert.Equal(t, "success", res.Status)
}

func TestErrorOmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(Error(http.StatusNotFound, "Order not found"))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Order not found", body["error"])
	assert.NotContains(t, body, "data")
	assert.NotContains(t, body, "pagination")
}
