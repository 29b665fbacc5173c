package domain

import "strings"

// AdminList is the configured set of admin emails. Membership, not the
// stored isAdmin flag, decides who is an admin.
type AdminList struct {
	emails map[string]struct{}
}

func NewAdminList(emails ...string) AdminList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = NormalizeEmail(e)
		if e == "" {
			continue
		}
		set[e] = struct{}{}
	}
	return AdminList{emails: set}
}

// ParseAdminList splits a comma separated list, as found in AUTH_ADMIN_EMAILS.
func ParseAdminList(csv string) AdminList {
	return NewAdminList(strings.Split(csv, ",")...)
}

func (l AdminList) Contains(email string) bool {
	_, ok := l.emails[NormalizeEmail(email)]
	return ok
}

func (l AdminList) Len() int { return len(l.emails) }
