package achievements

// Evaluate returns, in catalogue order, the ids not in unlocked whose
// requirement History meets. It never returns an id present in unlocked, so
// re-running with the union of previous results returns nothing new.
func Evaluate(h History, unlocked map[ID]bool) []ID {
	var result []ID
	for _, def := range catalog {
		if unlocked[def.ID] {
			continue
		}
		if Qualifies(def, h) {
			result = append(result, def.ID)
		}
	}
	return result
}

// Qualifies reports whether h meets def's requirement.
func Qualifies(def Definition, h History) bool {
	return h.Value(def.Metric).GreaterThanOrEqual(def.Requirement)
}
