//go:build unit

package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		id     int64
		siteID int64
		role   Role
		errIs  error
	}{
		{name: "success: operator", id: 10, siteID: 3, role: RoleOperator},
		{name: "error: id is 0", id: 0, siteID: 3, role: RoleOperator, errIs: ErrInvalidOperatorID},
		{name: "error: negative site id", id: 10, siteID: -1, role: RoleOperator, errIs: ErrInvalidSiteID},
		{name: "error: unknown role", id: 10, siteID: 3, role: Role("guest"), errIs: ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := New(tt.id, tt.siteID, tt.role)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, op)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, op.ID())
			assert.Equal(t, tt.siteID, op.SiteID())
			assert.Equal(t, tt.role, op.Role())
		})
	}
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleOperator))
	assert.True(t, RoleOperator.AtLeast(RoleOperator))
	assert.False(t, RoleViewer.AtLeast(RoleOperator))
	assert.False(t, Role("unknown").AtLeast(RoleViewer))
	assert.False(t, RoleAdmin.AtLeast(Role("unknown")))
}

func TestOperator_CanSubmit(t *testing.T) {
	viewer, err := New(1, 1, RoleViewer)
	require.NoError(t, err)
	admin, err := New(2, 1, RoleAdmin)
	require.NoError(t, err)

	assert.False(t, viewer.CanSubmit())
	assert.True(t, admin.CanSubmit())
}
