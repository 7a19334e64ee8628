package utils

// HasAnyRole reports whether any of the member's roles appears in the
// wanted set. Either slice may be empty.
func HasAnyRole(memberRoles, wanted []string) bool {
	for _, wantedID := range wanted {
		for _, roleID := range memberRoles {
			if roleID == wantedID {
				return true
			}
		}
	}
	return false
}
