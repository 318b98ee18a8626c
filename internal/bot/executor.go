package bot

import (
	"context"
	"fmt"

	"github.com/nanotip/nanotip/internal/account"
	"github.com/nanotip/nanotip/internal/command"
	"github.com/nanotip/nanotip/internal/node"
)

const helpText = "Available commands: `!balance` `!deposit` `!tip receiver_email amount` `!withdraw wallet_address`"

// Sender identifies who issued a command.
type Sender struct {
	Identity    string
	DisplayName string
}

// Executor maps typed commands onto account and node operations, collapsing
// every failure into a user-facing reply. Nothing here retries and nothing
// escapes as an error.
type Executor struct {
	parser     *command.Parser
	accounts   *account.Service
	node       node.Client
	qrTemplate string
}

// NewExecutor builds a command executor.
func NewExecutor(parser *command.Parser, accounts *account.Service, nodeClient node.Client, qrTemplate string) *Executor {
	return &Executor{
		parser:     parser,
		accounts:   accounts,
		node:       nodeClient,
		qrTemplate: qrTemplate,
	}
}

// HandleText parses raw message text and executes the resulting command.
// Malformed arguments answer with the parse error verbatim; they never
// reach the node.
func (e *Executor) HandleText(ctx context.Context, sender Sender, text string) Reply {
	cmd, err := e.parser.Parse(text)
	if err != nil {
		return TextReply(err.Error())
	}
	return e.Execute(ctx, sender, cmd)
}

// Execute runs one typed command and produces its reply.
func (e *Executor) Execute(ctx context.Context, sender Sender, cmd command.Command) Reply {
	switch cmd.Kind {
	case command.Help:
		return TextReply(helpText)
	case command.Balance:
		return e.balance(ctx, sender)
	case command.Deposit:
		return e.deposit(ctx, sender)
	case command.Tip:
		return e.tip(ctx, sender, cmd)
	case command.Withdraw:
		// Parsed but never executed.
		return TextReply("Not implemented yet")
	default:
		return TextReply(fmt.Sprintf("Did not quite catch that, *%s*, type `!help` for help", sender.DisplayName))
	}
}

func (e *Executor) balance(ctx context.Context, sender Sender) Reply {
	acc, err := e.accounts.Resolve(ctx, sender.Identity)
	if err != nil {
		return TextReply("There was an error fetching the account")
	}

	bal, err := e.node.Balance(ctx, acc.Address)
	if err != nil {
		return TextReply("There was an error fetching the balance")
	}

	current, err := RawToDisplay(bal.Balance)
	if err != nil {
		return TextReply("There was an error converting the balance")
	}
	pending, err := RawToDisplay(bal.Pending)
	if err != nil {
		return TextReply("There was an error converting the balance")
	}

	return Reply{Sections: []Section{{
		Header: "Balance",
		Rows: []Row{
			KV("Current", current+" NANO"),
			KV("Pending", pending+" NANO"),
		},
	}}}
}

func (e *Executor) deposit(ctx context.Context, sender Sender) Reply {
	acc, err := e.accounts.Resolve(ctx, sender.Identity)
	if err != nil {
		return TextReply("There was an error fetching the account")
	}

	return Reply{Sections: []Section{
		{
			Header: "Deposit",
			Rows: []Row{
				KV("To", sender.Identity),
				KV("Wallet", acc.Address),
			},
		},
		{
			Header: "Scan QR Code using Nano mobile wallet",
			Rows:   []Row{Img(fmt.Sprintf(e.qrTemplate, acc.Address))},
		},
	}}
}

func (e *Executor) tip(ctx context.Context, sender Sender, cmd command.Command) Reply {
	receiver, err := e.accounts.Resolve(ctx, cmd.Receiver)
	if err != nil {
		return TextReply("There was an error fetching the receiver account")
	}

	source, err := e.accounts.Resolve(ctx, sender.Identity)
	if err != nil {
		return TextReply("There was an error fetching the sender account")
	}

	if err := e.node.Send(ctx, source.Wallet, source.Address, receiver.Address, cmd.Amount); err != nil {
		return TextReply("There was an error sending the tip")
	}

	return Reply{Sections: []Section{{
		Header: "Tip sent!",
		Rows: []Row{
			KV("From", sender.Identity),
			KV("To", cmd.Receiver),
			KV("Wallet", receiver.Address),
			KV("Amount", cmd.Amount),
		},
	}}}
}
