// internal/chart/join.go
package chart

// Frame is the outcome of joining a new bar set against the one on screen.
// Bars are matched by record ID, so a bar that only moved is an update, not
// an exit followed by an enter.
type Frame struct {
	Enter       []Bar        `json:"enter"`
	Update      []Bar        `json:"update"`
	Exit        []Bar        `json:"exit"`
	Transitions []Transition `json:"transitions"`
}

// Join reconciles prev with next. Entering bars grow from a zero-height bar
// on the baseline; updated bars move from their previous geometry. Exiting
// bars are removed without a transition.
func Join(prev, next []Bar, baseline float64) Frame {
	seen := make(map[int]Bar, len(prev))
	for _, b := range prev {
		seen[b.ID] = b
	}

	var f Frame
	matched := make(map[int]struct{}, len(next))
	for _, b := range next {
		old, ok := seen[b.ID]
		if ok {
			matched[b.ID] = struct{}{}
			f.Update = append(f.Update, b)
			f.Transitions = append(f.Transitions, Transition{
				ID:       b.ID,
				From:     old.Geometry,
				To:       b.Geometry,
				FromFill: old.Fill,
				ToFill:   b.Fill,
				Duration: MoveDuration,
			})
			continue
		}
		f.Enter = append(f.Enter, b)
		f.Transitions = append(f.Transitions, Transition{
			ID:       b.ID,
			From:     Geometry{X: b.X, Y: baseline, Width: b.Width},
			To:       b.Geometry,
			FromFill: b.Fill,
			ToFill:   b.Fill,
			Duration: MoveDuration,
		})
	}
	for _, b := range prev {
		if _, ok := matched[b.ID]; !ok {
			f.Exit = append(f.Exit, b)
		}
	}
	return f
}
