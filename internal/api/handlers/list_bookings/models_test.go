package list_bookings

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	q := url.Values{
		"status":           {"Done"},
		"kam":              {"Rina"},
		"dateFrom":         {"2024-06-01"},
		"dateTo":           {"2024-06-30"},
		"search":           {"acme"},
		"includeCancelled": {"true"},
		"page":             {"3"},
		"pageSize":         {"50"},
	}

	req, err := ToServiceRequest(q)

	require.NoError(t, err)
	assert.Equal(t, "Done", req.Status)
	assert.Equal(t, "Rina", req.KAMName)
	assert.Equal(t, "2024-06-01", req.DateFrom)
	assert.Equal(t, "2024-06-30", req.DateTo)
	assert.Equal(t, "acme", req.Search)
	assert.True(t, req.IncludeCancelled)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 50, req.PageSize)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	for _, q := range []url.Values{
		{"page": {"two"}},
		{"pageSize": {"-1"}},
		{"includeCancelled": {"maybe"}},
	} {
		_, err := ToServiceRequest(q)
		assert.Error(t, err, q.Encode())
	}
}
