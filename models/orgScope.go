package models

import "bitbucket.org/gfmis/budget_backend/utils"

// OrgScope is the effective organization filter for a request. An empty
// Organization with IsAll set means "no filter" (every organization).
type OrgScope struct {
	Organization string
	IsAll        bool
}

// Filter returns the organization to restrict queries to, empty for none.
func (s OrgScope) Filter() string {
	if s.IsAll {
		return ""
	}
	return s.Organization
}

// ResolveOrgScope derives the scope from the caller's role and home
// organization plus the requested organization parameter.
//
// Non-admins are always pinned to their home organization; asking for the
// ALL sentinel is a Forbidden error rather than a silent narrowing. Admins
// get everything when the parameter is absent or ALL, otherwise exactly the
// requested organization.
func ResolveOrgScope(role Role, homeOrganization string, requested string) (OrgScope, error) {
	if role != RoleAdmin {
		if requested == AllOrganizations {
			return OrgScope{}, utils.NewForbiddenError("you are not allowed to access all organizations")
		}
		return OrgScope{Organization: homeOrganization}, nil
	}

	if requested == "" || requested == AllOrganizations {
		return OrgScope{IsAll: true}, nil
	}

	return OrgScope{Organization: requested}, nil
}
