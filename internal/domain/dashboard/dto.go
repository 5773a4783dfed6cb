package dashboard

// OverviewResponse is the admin overview for the current day. Insight
// is cosmetic text from the AI collaborator; an empty string means it
// was unavailable. ChannelState reflects the realtime topic state.
type OverviewResponse struct {
	Date           string `json:"date"`
	TotalEmployees int64  `json:"total_employees"`
	Present        int    `json:"present"`
	Late           int    `json:"late"`
	HalfDay        int    `json:"half_day"`
	AbsentSoFar    int    `json:"absent_so_far"`
	Insight        string `json:"insight,omitempty"`
	ChannelState   string `json:"channel_state"`
}
