package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jazyl/booking-service/internal/httperr"
)

func TestStatusClassification(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, StatusNoShow.IsActive())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

func TestTransitionRules(t *testing.T) {
	cases := []struct {
		name  string
		check func(Status) error
		from  Status
		ok    bool
	}{
		{"confirm pending", CanConfirm, StatusPending, true},
		{"confirm confirmed", CanConfirm, StatusConfirmed, false},
		{"confirm cancelled", CanConfirm, StatusCancelled, false},

		{"cancel pending", CanCancel, StatusPending, true},
		{"cancel confirmed", CanCancel, StatusConfirmed, true},
		{"cancel cancelled", CanCancel, StatusCancelled, false},
		{"cancel completed", CanCancel, StatusCompleted, false},

		{"complete confirmed", CanComplete, StatusConfirmed, true},
		{"complete pending", CanComplete, StatusPending, false},
		{"complete no_show", CanComplete, StatusNoShow, false},

		{"no-show pending", CanMarkNoShow, StatusPending, true},
		{"no-show confirmed", CanMarkNoShow, StatusConfirmed, true},
		{"no-show cancelled", CanMarkNoShow, StatusCancelled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check(tc.from)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, httperr.CodeInvalidTransition, httperr.BusinessCode(err))
			}
		})
	}
}
