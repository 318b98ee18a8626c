package hangouts

// Event is the Hangouts Chat webhook envelope. Only the fields the bot
// reads are mapped.
type Event struct {
	EventTime string  `json:"eventTime"`
	Type      string  `json:"type"`
	Token     string  `json:"token"`
	Message   Message `json:"message"`
	Space     Space   `json:"space"`
	User      Sender  `json:"user"`
}

// Sender describes the chat user that triggered the event.
type Sender struct {
	AvatarURL   string `json:"avatarUrl"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Type        string `json:"type"`
}

// Message carries the inbound text.
type Message struct {
	CreateTime string `json:"createTime"`
	Name       string `json:"name"`
	Text       string `json:"text"`
	Sender     Sender `json:"sender"`
}

// Space identifies the room or DM the event originated in.
type Space struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ResponseMessage is the synchronous webhook reply: plain text or cards.
type ResponseMessage struct {
	Text  string `json:"text,omitempty"`
	Cards []Card `json:"cards,omitempty"`
}

// Card groups sections in the Hangouts card format.
type Card struct {
	Sections []Section `json:"sections"`
}

// Section is a labeled group of widgets.
type Section struct {
	Header  string   `json:"header"`
	Widgets []Widget `json:"widgets"`
}

// Widget is the Hangouts widget variant; exactly one field is set.
type Widget struct {
	KeyValue *KeyValue `json:"keyValue,omitempty"`
	Image    *Image    `json:"image,omitempty"`
}

// KeyValue renders a labeled value.
type KeyValue struct {
	TopLabel string `json:"topLabel"`
	Content  string `json:"content"`
}

// Image renders an externally hosted image.
type Image struct {
	ImageURL string `json:"imageUrl"`
}
