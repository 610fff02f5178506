package access

import "ai-tutor-be/internal/entity"

// RoleResolver is the single place that decides a user's capability level.
type RoleResolver interface {
	RoleOf(user *entity.User) entity.Role
}

// AllowList grants the admin role to an exact, case-sensitive set of emails.
type AllowList struct {
	emails map[string]struct{}
}

func NewAllowList(emails []string) *AllowList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return &AllowList{emails: set}
}

func (a *AllowList) RoleOf(user *entity.User) entity.Role {
	if user == nil {
		return entity.RoleUser
	}
	if _, ok := a.emails[user.Email]; ok {
		return entity.RoleAdmin
	}
	return entity.RoleUser
}
