package models

import (
	"testing"

	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/stretchr/testify/assert"
)

func TestResolveOrgScope(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		home       string
		requested  string
		wantFilter string
		wantAll    bool
		wantKind   utils.ErrorKind
	}{
		{"data entry pinned to home", RoleDataEntry, "GRA", "", "GRA", false, ""},
		{"reviewer cannot pick another org", RoleReviewer, "GRA", "NCA", "GRA", false, ""},
		{"non-admin ALL is forbidden", RoleApprover, "GRA", "ALL", "", false, utils.ErrorKindForbidden},
		{"admin default is everything", RoleAdmin, "MOF", "", "", true, ""},
		{"admin ALL is everything", RoleAdmin, "MOF", "ALL", "", true, ""},
		{"admin may narrow to one org", RoleAdmin, "MOF", "NCA", "NCA", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := ResolveOrgScope(tt.role, tt.home, tt.requested)
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, utils.KindOf(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantAll, scope.IsAll)
			assert.Equal(t, tt.wantFilter, scope.Filter())
		})
	}
}

func TestOrgScopeFilter(t *testing.T) {
	assert.Empty(t, OrgScope{IsAll: true}.Filter())
	assert.Equal(t, "GRA", OrgScope{Organization: "GRA"}.Filter())
}
