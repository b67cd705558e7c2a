package reconcile

// Picker deduplicates raw version records into canonical version strings.
type Picker struct {
	// CanonicalPlatform is the build variant preferred as a version's representative.
	// Records with an empty platform are canonical too.
	CanonicalPlatform string
}

// PickRecords returns the representative record of every distinct version number in
// first-seen order. Canonical records are moved to the front of their version's candidate
// list and platform-specific ones appended, so a canonical build always represents the
// version and platform-specific builds only win, in arrival order, when no canonical one
// exists.
func (p Picker) PickRecords(records []VersionRecord) []VersionRecord {
	var order []string
	candidates := make(map[string][]VersionRecord, len(records))

	for _, rec := range records {
		list, seen := candidates[rec.Version]
		if !seen {
			order = append(order, rec.Version)
		}
		if p.isCanonical(rec) {
			list = append([]VersionRecord{rec}, list...)
		} else {
			list = append(list, rec)
		}
		candidates[rec.Version] = list
	}

	picked := make([]VersionRecord, 0, len(order))
	for _, version := range order {
		picked = append(picked, candidates[version][0])
	}
	return picked
}

// Pick returns the string form of every representative record.
func (p Picker) Pick(records []VersionRecord) []string {
	reps := p.PickRecords(records)
	picked := make([]string, 0, len(reps))
	for _, rec := range reps {
		picked = append(picked, rec.Format(p.CanonicalPlatform))
	}
	return picked
}

func (p Picker) isCanonical(rec VersionRecord) bool {
	return rec.Platform == "" || rec.Platform == p.CanonicalPlatform
}
