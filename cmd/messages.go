package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/campusconnect/internal/formatter"
	"github.com/desertthunder/campusconnect/internal/inbox"
	"github.com/desertthunder/campusconnect/internal/shared"
	"github.com/desertthunder/campusconnect/internal/ui"
	"github.com/urfave/cli/v3"
)

// MessageSend sends a direct message, optionally about a job.
func (r *Runner) MessageSend(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	msg, err := store.Messages.Create(cmd.String("from"), cmd.String("to"), cmd.String("text"), cmd.String("job"))
	if err != nil {
		return err
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(msg, pretty)
	}
	r.writePlain("✓ Message sent\n")
	return nil
}

// MessageThread opens the conversation between --user and --with, marking incoming messages read.
func (r *Runner) MessageThread(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.open(); err != nil {
		return err
	}

	userID, otherID := cmd.String("user"), cmd.String("with")
	thread, err := r.inbox.Open(userID, otherID)
	if err != nil {
		return err
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(thread, pretty)
	}

	counterpart, err := r.store.Users.Get(otherID)
	if err != nil {
		return err
	}
	title := inbox.Conversation{CounterpartID: otherID, Counterpart: counterpart}.Title()

	r.writePlainHeader(title)
	if len(thread) == 0 {
		r.writePlain("No messages yet.\n")
		return nil
	}
	for _, msg := range thread {
		who := title
		if msg.FromID == userID {
			who = "You"
		}
		r.writePlain("[%s] %s: %s\n", msg.CreatedAt.Local().Format("Jan 2 15:04"), who, msg.Text)
	}
	return nil
}

// Inbox lists a user's conversations, most recent first.
func (r *Runner) Inbox(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.open(); err != nil {
		return err
	}

	userID := cmd.StringArg("user")
	if userID == "" {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	conversations, err := r.inbox.ConversationsFor(userID)
	if err != nil {
		return err
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(conversations, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Inbox %s", ui.UnreadBadge(inbox.UnreadTotal(conversations))))
	return formatter.WriteConversations(r.output, conversations)
}

func messageCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "message",
		Aliases: []string{"msg"},
		Usage:   "Send and read direct messages",
		Commands: []*cli.Command{
			{
				Name:  "send",
				Usage: "Send a message",
				Flags: withOutputFlags(
					&cli.StringFlag{Name: "from", Usage: "Sender user ID", Required: true},
					&cli.StringFlag{Name: "to", Usage: "Recipient user ID", Required: true},
					&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: "Message body", Required: true},
					&cli.StringFlag{Name: "job", Usage: "Job the message is about"},
				),
				Action: r.MessageSend,
			},
			{
				Name:  "thread",
				Usage: "Read the conversation with another user",
				Flags: withOutputFlags(
					&cli.StringFlag{Name: "user", Usage: "Your user ID", Required: true},
					&cli.StringFlag{Name: "with", Usage: "The other user's ID", Required: true},
				),
				Action: r.MessageThread,
			},
		},
	}
}

func inboxCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "inbox",
		Usage:     "List conversations with unread counts",
		Arguments: []cli.Argument{&cli.StringArg{Name: "user"}},
		Flags:     outputFlags(),
		Action:    r.Inbox,
	}
}
