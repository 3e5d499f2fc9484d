package pipeline

// Dedup collapses multiple versions of a logical event to one canonical
// record per event_id. The winner is the row with the highest event_version;
// version ties break on the latest event_ts (byte-wise compare); remaining
// ties keep the earliest occurrence in input order. Survivors are returned in
// first-seen order of their event_id, which keeps the whole stage a pure
// function of the input sequence.
func Dedup(events []Event) []Event {
	if len(events) == 0 {
		return nil
	}

	slot := make(map[string]int, len(events)) // event_id -> index into out
	out := make([]Event, 0, len(events))

	for _, e := range events {
		i, seen := slot[e.ID]
		if !seen {
			slot[e.ID] = len(out)
			out = append(out, e)
			continue
		}
		cur := out[i]
		if e.Version > cur.Version || (e.Version == cur.Version && e.TS > cur.TS) {
			out[i] = e
		}
	}
	return out
}
