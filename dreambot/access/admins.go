package access

import "github.com/disgoorg/snowflake/v2"

// Admins is the set of users allowed to run restricted commands.
type Admins map[snowflake.ID]struct{}

func NewAdmins(ids ...snowflake.ID) Admins {
	a := make(Admins, len(ids))
	for _, id := range ids {
		if id != 0 {
			a[id] = struct{}{}
		}
	}
	return a
}

func (a Admins) IsAdmin(id snowflake.ID) bool {
	_, ok := a[id]
	return ok
}
