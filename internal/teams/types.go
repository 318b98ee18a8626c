package teams

// Activity is the Bot Framework webhook envelope. Only the fields the bot
// reads are mapped.
type Activity struct {
	Type         string `json:"type"`
	ID           string `json:"id"`
	Timestamp    string `json:"timestamp"`
	ServiceURL   string `json:"serviceUrl"`
	ChannelID    string `json:"channelId"`
	From         Party  `json:"from"`
	Conversation Party  `json:"conversation"`
	Recipient    Party  `json:"recipient"`
	Text         string `json:"text"`
}

// Party identifies a user, bot or conversation.
type Party struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// response is the outbound reply activity posted back to the service URL.
type response struct {
	Type         string `json:"type"`
	From         Party  `json:"from"`
	Conversation Party  `json:"conversation"`
	Recipient    Party  `json:"recipient"`
	Text         string `json:"text"`
	ReplyToID    string `json:"replyToId"`
}
