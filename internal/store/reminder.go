package store

// Reminder is a one-shot notification owned by the user who created
// it. Instants are unix milliseconds, matching what the trigger time
// arithmetic works in
type Reminder struct {
	ID          string   `json:"id"`
	UserID      string   `json:"userId"`
	Mentions    []string `json:"mentions,omitempty"`
	Everyone    bool     `json:"everyone,omitempty"`
	ChannelID   string   `json:"channelId"`
	Description string   `json:"description"`
	TriggerAt   int64    `json:"triggerAt"`
	CreatedAt   int64    `json:"createdAt"`
}

// DefaultReminders is the default content of the reminders document
func DefaultReminders() []Reminder {
	return []Reminder{}
}
