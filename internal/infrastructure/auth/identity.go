// Package auth classifies callers from identity-provider claims. There are
// exactly two capability levels: editors may mutate, everyone else reads.
package auth

type Identity struct {
	Subject string
	Email   string
	Groups  []string
}

// Anonymous is the zero-capability identity used when no valid token is
// presented. It is a viewer, never an error.
func Anonymous() Identity {
	return Identity{}
}

// Name returns the value stamped on createdBy/updatedBy.
func (i Identity) Name() string {
	if i.Email != "" {
		return i.Email
	}
	return i.Subject
}

func (i Identity) InGroup(group string) bool {
	for _, g := range i.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// NormalizeGroups flattens a groups claim into a slice of strings. The
// identity provider may emit the claim as a single string, a list, or omit
// it entirely; absence and unrecognized shapes yield an empty slice.
func NormalizeGroups(claim any) []string {
	switch v := claim.(type) {
	case nil:
		return []string{}
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	case []string:
		return v
	case []any:
		groups := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				groups = append(groups, s)
			}
		}
		return groups
	default:
		return []string{}
	}
}
