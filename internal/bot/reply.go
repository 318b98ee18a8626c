package bot

// Reply is the platform-neutral outcome of executing one command: either
// plain text or a list of labeled sections. Adapters render it into each
// platform's wire format.
type Reply struct {
	Text     string
	Sections []Section
}

// Section groups rows under a header.
type Section struct {
	Header string
	Rows   []Row
}

// Row is a tagged variant: exactly one of KeyValue or Image is set.
type Row struct {
	KeyValue *KeyValue
	Image    *Image
}

// KeyValue is a labeled value row.
type KeyValue struct {
	Label string
	Value string
}

// Image references an externally hosted image.
type Image struct {
	URL string
}

// TextReply wraps a plain text answer.
func TextReply(text string) Reply {
	return Reply{Text: text}
}

// KV builds a key/value row.
func KV(label, value string) Row {
	return Row{KeyValue: &KeyValue{Label: label, Value: value}}
}

// Img builds an image row.
func Img(url string) Row {
	return Row{Image: &Image{URL: url}}
}
