package dfxp

// Cue is one caption entry. Times are in seconds; End is nil when the
// paragraph carries neither end nor dur.
type Cue struct {
	Begin float64  `json:"begin"`
	End   *float64 `json:"end,omitempty"`
	Text  string   `json:"text"`
}

// EndTime returns the end offset and whether one is present.
func (c Cue) EndTime() (float64, bool) {
	if c.End == nil {
		return 0, false
	}
	return *c.End, true
}

// Duration returns End-Begin, or zero when the cue has no end.
func (c Cue) Duration() float64 {
	end, ok := c.EndTime()
	if !ok {
		return 0
	}
	return end - c.Begin
}
