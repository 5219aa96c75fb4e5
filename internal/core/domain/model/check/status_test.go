package check_test

import (
	"testing"

	"checkcore/internal/core/domain/model/check"
	"checkcore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, check.Open.Validate())
	require.NoError(t, check.Closed.Validate())
	require.NoError(t, check.Voided.Validate())
	require.ErrorIs(t, check.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, check.Status(42).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Open", check.Open.String())
	assert.Equal(t, "Closed", check.Closed.String())
	assert.Equal(t, "Voided", check.Voided.String())
	assert.Equal(t, "Unknown", check.Status(42).String())
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    check.Status
		apply   func(check.Status) (check.Status, error)
		want    check.Status
		wantErr bool
	}{
		{"open closes", check.Open, check.Status.Close, check.Closed, false},
		{"closed cannot close", check.Closed, check.Status.Close, 0, true},
		{"closed reopens", check.Closed, check.Status.Reopen, check.Open, false},
		{"open cannot reopen", check.Open, check.Status.Reopen, 0, true},
		{"voided cannot reopen", check.Voided, check.Status.Reopen, 0, true},
		{"open voids", check.Open, check.Status.Void, check.Voided, false},
		{"closed cannot void", check.Closed, check.Status.Void, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.apply(tc.from)
			if tc.wantErr {
				require.ErrorIs(t, err, errs.ErrPreconditionFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOrderType_Validate(t *testing.T) {
	require.NoError(t, check.TakeOut.Validate())
	require.ErrorIs(t, check.OrderType("").Validate(), errs.ErrValueIsRequired)
	require.ErrorIs(t, check.OrderType("drive_thru_robot").Validate(), errs.ErrValueIsInvalid)
}
