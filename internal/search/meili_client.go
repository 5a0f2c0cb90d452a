package search

import "fmt"

// FilterRoleID builds a Meilisearch filter expression matching a single
// catalog role id.
func FilterRoleID(roleID int) string {
	return fmt.Sprintf("role_id = %d", roleID)
}

// FilterAreaID builds a filter expression for roles scoped to areaID.
func FilterAreaID(areaID int) string {
	return fmt.Sprintf("area_ids = %d", areaID)
}

// FilterProfileID builds a filter expression for roles reachable under
// profileID.
func FilterProfileID(profileID int) string {
	return fmt.Sprintf("profile_ids = %d", profileID)
}
