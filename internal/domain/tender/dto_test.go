package tender

import (
	"testing"
	"time"

	"github.com/etenderhq/etender-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateRequest {
	return CreateRequest{
		Name:          "Office renovation",
		Description:   "Full renovation of floor 3",
		StartDate:     "2026-03-01T09:00:00Z",
		EndDate:       "2026-03-10T17:00:00Z",
		InvitedEmails: []string{"alice@example.com"},
	}
}

func TestCreateRequest_Validate(t *testing.T) {
	t.Run("valid request parses dates", func(t *testing.T) {
		req := validCreateRequest()
		require.NoError(t, req.Validate())
		assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), req.ParsedStartDate())
		assert.Equal(t, time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC), req.ParsedEndDate())
	})

	t.Run("missing required fields", func(t *testing.T) {
		req := CreateRequest{}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		fields := make(map[string]bool)
		for _, ve := range errs {
			fields[ve.Field] = true
		}
		assert.True(t, fields["name"])
		assert.True(t, fields["description"])
		assert.True(t, fields["startDate"])
		assert.True(t, fields["endDate"])
	})

	t.Run("malformed dates rejected", func(t *testing.T) {
		req := validCreateRequest()
		req.StartDate = "03/01/2026"
		assert.Error(t, req.Validate())
	})

	t.Run("end before start rejected", func(t *testing.T) {
		req := validCreateRequest()
		req.StartDate = "2026-03-10T17:00:00Z"
		req.EndDate = "2026-03-01T09:00:00Z"
		assert.Error(t, req.Validate())
	})

	t.Run("end equal to start accepted", func(t *testing.T) {
		req := validCreateRequest()
		req.StartDate = "2026-03-01T09:00:00Z"
		req.EndDate = "2026-03-01T09:00:00Z"
		assert.NoError(t, req.Validate())
	})

	t.Run("status must be draft or published", func(t *testing.T) {
		req := validCreateRequest()
		req.Status = "awarded"
		assert.Error(t, req.Validate())

		req = validCreateRequest()
		req.Status = "published"
		assert.NoError(t, req.Validate())
	})
}

func TestUpdateRequest_Validate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("empty request is valid", func(t *testing.T) {
		req := UpdateRequest{}
		assert.NoError(t, req.Validate())
		assert.Nil(t, req.ParsedStartDate())
		assert.Nil(t, req.ParsedEndDate())
	})

	t.Run("supplied name must not be blank", func(t *testing.T) {
		req := UpdateRequest{Name: strPtr("  ")}
		assert.Error(t, req.Validate())
	})

	t.Run("supplied dates are parsed", func(t *testing.T) {
		req := UpdateRequest{StartDate: strPtr("2026-04-01T00:00:00Z")}
		require.NoError(t, req.Validate())
		require.NotNil(t, req.ParsedStartDate())
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *req.ParsedStartDate())
	})

	t.Run("awarded is not a settable status", func(t *testing.T) {
		req := UpdateRequest{Status: strPtr("awarded")}
		assert.Error(t, req.Validate())
	})
}

func TestNewResponse_DerivesDisplayStatus(t *testing.T) {
	tender := windowTender()
	resp := NewResponse(tender, windowStart.Add(time.Hour))
	assert.Equal(t, DisplayActive, resp.DisplayStatus)
	assert.Equal(t, StatusPublished, resp.Status)

	resp = NewResponse(tender, windowEnd.Add(time.Hour))
	assert.Equal(t, DisplayClosed, resp.DisplayStatus)
}
