package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// Message is a text and markup captured by FakeContext
type Message struct {
	Text   string
	Markup *tele.ReplyMarkup
}

// FakeContext is a tele.Context that records what handlers send. Methods
// other than the overridden ones panic through the nil embedded Context.
type FakeContext struct {
	tele.Context

	From     *tele.User
	Input    string
	Press    *tele.Callback
	EditErr  error
	Sent     []Message
	Edited   []Message
	Answered []*tele.CallbackResponse

	history []Message
}

// NewFakeContext creates a context for a text message
func NewFakeContext(userID int64, text string) *FakeContext {
	return &FakeContext{From: &tele.User{ID: userID}, Input: text}
}

// NewFakeCallback creates a context for an inline button press
func NewFakeCallback(userID int64, unique, data string) *FakeContext {
	return &FakeContext{
		From:  &tele.User{ID: userID},
		Press: &tele.Callback{ID: "cb", Unique: unique, Data: data},
	}
}

func (f *FakeContext) Sender() *tele.User {
	return f.From
}

func (f *FakeContext) Text() string {
	return f.Input
}

func (f *FakeContext) Callback() *tele.Callback {
	return f.Press
}

func (f *FakeContext) Send(what interface{}, opts ...interface{}) error {
	msg := capture(what, opts)
	f.Sent = append(f.Sent, msg)
	f.history = append(f.history, msg)
	return nil
}

func (f *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if f.EditErr != nil {
		return f.EditErr
	}
	msg := capture(what, opts)
	f.Edited = append(f.Edited, msg)
	f.history = append(f.history, msg)
	return nil
}

func (f *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		f.Answered = append(f.Answered, &tele.CallbackResponse{})
		return nil
	}
	f.Answered = append(f.Answered, resp[0])
	return nil
}

// Last returns the latest sent or edited message
func (f *FakeContext) Last() Message {
	if len(f.history) == 0 {
		return Message{}
	}
	return f.history[len(f.history)-1]
}

func capture(what interface{}, opts []interface{}) Message {
	msg := Message{}
	if text, ok := what.(string); ok {
		msg.Text = text
	}
	for _, opt := range opts {
		if markup, ok := opt.(*tele.ReplyMarkup); ok {
			msg.Markup = markup
		}
	}
	return msg
}
