package v1

import (
	"fmt"
	"slices"

	"gorm.io/gorm"
)

// nameFilters applies substring matching for the name filter and search
// term. An explicitly empty name parameter matches resources with an
// empty name, which the dashboard uses to find profiles that have not
// finished onboarding.
func nameFilters(db, query *gorm.DB, setFields []string, name, search string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where("email LIKE ?", fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}
