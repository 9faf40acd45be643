package models

type ChatEvent struct {
	MessageID   string `json:"messageId"`
	AuthorID    string `json:"authorId"`
	AuthorName  string `json:"authorName"`
	AuthorIsBot bool   `json:"authorIsBot"`
	ChannelID   string `json:"channelId"`
	Text        string `json:"text"`
}

// TimedSubmission is the manual Mini command payload.
type TimedSubmission struct {
	UserID   string `json:"userId" validate:"required"`
	Username string `json:"username" validate:"required"`
	Date     string `json:"date"`
	Time     string `json:"time" validate:"required"`
}
