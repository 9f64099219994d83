package board

// candidate is a partial job record recovered from one of the page's
// independent data sources. Empty strings mean "this source had nothing".
type candidate struct {
	id             string
	title          string
	department     string
	team           string
	location       string
	employmentType string
	publishedDate  string
	compensation   string
	description    string
}

// mergeCandidates composes partial records left to right: for every
// field the first candidate with a non-empty value wins. Nil candidates
// are skipped. Precedence is therefore the argument order.
func mergeCandidates(cands ...*candidate) candidate {
	pick := func(get func(*candidate) string) string {
		for _, c := range cands {
			if c == nil {
				continue
			}
			if v := get(c); v != "" {
				return v
			}
		}
		return ""
	}

	return candidate{
		id:             pick(func(c *candidate) string { return c.id }),
		title:          pick(func(c *candidate) string { return c.title }),
		department:     pick(func(c *candidate) string { return c.department }),
		team:           pick(func(c *candidate) string { return c.team }),
		location:       pick(func(c *candidate) string { return c.location }),
		employmentType: pick(func(c *candidate) string { return c.employmentType }),
		publishedDate:  pick(func(c *candidate) string { return c.publishedDate }),
		compensation:   pick(func(c *candidate) string { return c.compensation }),
		description:    pick(func(c *candidate) string { return c.description }),
	}
}
