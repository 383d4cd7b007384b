package notify

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackNotifier posts task events to a Slack channel.
type SlackNotifier struct {
	client    slackClient
	channelID string
}

// SlackOpts holds parameters for creating a SlackNotifier.
type SlackOpts struct {
	BotToken  string // xoxb-... Slack bot token
	ChannelID string // channel to post to
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// NewSlack creates a SlackNotifier.
func NewSlack(opts SlackOpts) (*SlackNotifier, error) {
	if opts.Client == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("notify: slack bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("notify: slack channel is required")
	}

	n := &SlackNotifier{channelID: opts.ChannelID}
	if opts.Client != nil {
		n.client = opts.Client
	} else {
		n.client = slackapi.New(opts.BotToken)
	}
	return n, nil
}

// Notify implements Notifier. Events are rendered as a single attachment
// with a color hint per action.
func (n *SlackNotifier) Notify(ctx context.Context, ev Event) error {
	att := slackapi.Attachment{
		Title:    eventTitle(ev),
		Text:     ev.Detail,
		Color:    slackColor(ev.Action),
		Fallback: eventTitle(ev),
	}

	_, _, err := n.client.PostMessage(n.channelID,
		slackapi.MsgOptionAttachments(att),
	)
	if err != nil {
		return fmt.Errorf("notify: slack post: %w", err)
	}
	return nil
}

// eventTitle renders the headline for an event.
func eventTitle(ev Event) string {
	switch ev.Action {
	case ActionCreated:
		return fmt.Sprintf("Task #%d created: %s", ev.TaskID, ev.TaskTitle)
	case ActionStatus:
		return fmt.Sprintf("Task #%d status changed: %s", ev.TaskID, ev.TaskTitle)
	case ActionAssigned:
		return fmt.Sprintf("Task #%d reassigned: %s", ev.TaskID, ev.TaskTitle)
	}
	return fmt.Sprintf("Task #%d updated: %s", ev.TaskID, ev.TaskTitle)
}

// slackColor picks a sidebar color hint for an action.
func slackColor(action string) string {
	switch action {
	case ActionCreated:
		return "#439fe0"
	case ActionStatus:
		return "#36a64f"
	case ActionAssigned:
		return "#daa038"
	}
	return ""
}
