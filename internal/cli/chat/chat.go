package chat

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/qingka/internal/assistant"
	"github.com/julianstephens/qingka/internal/cli"
	"github.com/julianstephens/qingka/internal/knowledge"
	"github.com/julianstephens/qingka/internal/models"
)

type ChatCmd struct {
	History ChatHistoryCmd `cmd:"" help:"Show the assistant conversation." default:"1"`
	Log     ChatLogCmd     `cmd:"" help:"Record a message in the conversation."`
	Clear   ChatClearCmd   `cmd:"" help:"Forget the conversation."`
	Context ChatContextCmd `cmd:"" help:"Print the user-context block sent with each question."`
}

type ChatHistoryCmd struct {
	JSON bool `help:"Print messages as JSON."`
}

func (c *ChatHistoryCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	history, err := ctx.Assistant.History(userID)
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(history, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if len(history) == 0 {
		ctx.Println("No conversation yet.")
		return nil
	}
	for _, m := range history {
		speaker := "我"
		if m.Role == models.RoleAssistant {
			speaker = "小青"
		}
		ctx.Printf("[%s] %s: %s\n", m.Timestamp.Local().Format("01-02 15:04"), speaker, m.Content)
		for _, s := range m.Sources {
			ctx.Printf("    ↳ %s <%s>\n", s.Title, s.URI)
		}
	}
	return nil
}

type ChatLogCmd struct {
	Content string `arg:"" help:"Message text."`
	Role    string `help:"Who said it." enum:"user,assistant" default:"user"`
}

func (c *ChatLogCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	role := models.ChatRole(c.Role)
	if role == "" {
		role = models.RoleUser
	}
	msg, err := ctx.Assistant.Append(userID, models.ChatMessage{Role: role, Content: c.Content})
	if err != nil {
		return err
	}
	ctx.Printf("✓ Recorded %s message %s\n", msg.Role, msg.ID)
	return nil
}

type ChatClearCmd struct{}

func (c *ChatClearCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	if err := ctx.Assistant.Clear(userID); err != nil {
		return err
	}
	ctx.Println("✓ Conversation cleared")
	return nil
}

type ChatContextCmd struct {
	Category string `help:"Knowledge category id (see 'qingka know list'), or general." default:"general"`
}

func (c *ChatContextCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	category, err := knowledge.AssistantCategory(c.Category)
	if err != nil {
		return err
	}
	p, err := ctx.Profiles.Load(userID)
	if err != nil {
		return err
	}
	history, err := ctx.Assistant.History(userID)
	if err != nil {
		return err
	}
	ctx.Println(assistant.Context(p, history, category))
	return nil
}
