package models

// Response is an inbound message event emitted by a messaging service.
type Response struct {
	// From is the sender's phone number as extracted from the transport,
	// digits only.
	From string
	// ChatID is the transport-level thread identifier replies are addressed
	// to (a JID for whatsmeow, a "whatsapp:+..." address for Twilio).
	ChatID string
	// PushName is the sender's display name when the transport carries one.
	PushName string
	// Body is the message text.
	Body string
	// Time is the unix timestamp of the message.
	Time int64
}
