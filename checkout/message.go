package checkout

// Status classifies the single banner shown after a save attempt.
type Status string

const (
	StatusInfo     Status = "info"
	StatusSuccess  Status = "success"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Message is what the shopper sees.
type Message struct {
	Status  Status `json:"type"`
	Content string `json:"content"`
}

func newMessage(status Status, content string) *Message {
	return &Message{Status: status, Content: content}
}
