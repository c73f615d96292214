package dedup

// Entry is a distinct normalized label and how many times it occurred.
type Entry struct {
	Label string
	Count int
}

// Collapse merges identical labels. Returns entries in first-occurrence
// order; empty labels are dropped.
func Collapse(labels []string) []Entry {
	if len(labels) == 0 {
		return nil
	}

	index := make(map[string]int, len(labels))
	var order []Entry
	for _, l := range labels {
		if l == "" {
			continue
		}
		if i, ok := index[l]; ok {
			order[i].Count++
			continue
		}
		index[l] = len(order)
		order = append(order, Entry{Label: l, Count: 1})
	}
	return order
}

// Unique returns the distinct labels in first-occurrence order.
func Unique(labels []string) []string {
	entries := Collapse(labels)
	if entries == nil {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}
