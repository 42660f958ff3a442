package match

import (
	"marquee/internal/directory"
	"marquee/internal/entitykey"
	"marquee/internal/venues"
)

// Lookup maps every derivable entity key to a local venue id.
type Lookup map[string]string

// BuildLookup derives keys from the given venues at all three specificity
// levels. Full keys are inserted first and are never overwritten by the
// fallback levels, so two venues sharing a name in different places keep
// their own full-key mappings while the first claims the ambiguous
// name-only slot.
func BuildLookup(local []venues.Venue) Lookup {
	lookup := make(Lookup, len(local)*2)

	for _, v := range local {
		if key := entitykey.FullKey(v.Name, v.Place); key != "" {
			if _, occupied := lookup[key]; !occupied {
				lookup[key] = v.ID
			}
		}
	}
	for _, v := range local {
		if key := entitykey.NameKey(v.Name); key != "" {
			if _, occupied := lookup[key]; !occupied {
				lookup[key] = v.ID
			}
		}
	}
	for _, v := range local {
		if key := entitykey.NameWithoutPlaceKey(v.Name, v.Place); key != "" {
			if _, occupied := lookup[key]; !occupied {
				lookup[key] = v.ID
			}
		}
	}

	return lookup
}

// Resolve tries the candidate's keys from most to least specific and returns
// the first local venue id hit. A false result means the candidate is
// unknown locally and a creation action may be offered.
func (l Lookup) Resolve(candidate directory.Candidate) (string, bool) {
	for _, key := range []string{
		entitykey.FullKey(candidate.Name, candidate.Place),
		entitykey.NameKey(candidate.Name),
		entitykey.NameWithoutPlaceKey(candidate.Name, candidate.Place),
	} {
		if key == "" {
			continue
		}
		if id, ok := l[key]; ok {
			return id, true
		}
	}
	return "", false
}
