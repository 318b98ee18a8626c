package command

import (
	"fmt"
	"regexp"
	"strings"
)

const anyDomainEmailPattern = `(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,6}$`

// amounts are positive base-10 integers: no sign, no leading zero, no dot.
var amountRE = regexp.MustCompile(`^[1-9][0-9]*$`)

// ParseError describes a malformed command argument. Its message is shown
// to the user verbatim and names the argument that failed.
type ParseError struct {
	Argument string
	Reason   string
}

func (e *ParseError) Error() string {
	return e.Reason
}

// Parser converts raw inbound chat text into typed commands.
type Parser struct {
	mention string
	emailRE *regexp.Regexp
}

// NewParser builds a parser that strips the given bot mention. When
// emailDomain is non-empty, tip receivers are restricted to that domain.
func NewParser(mention, emailDomain string) *Parser {
	pattern := anyDomainEmailPattern
	if emailDomain != "" {
		pattern = `(?i)^[A-Z0-9._%+-]+@` + regexp.QuoteMeta(emailDomain) + `$`
	}
	return &Parser{
		mention: mention,
		emailRE: regexp.MustCompile(pattern),
	}
}

// Parse maps message text to a Command. Unknown or empty text resolves to
// Unrecognized; only malformed tip arguments produce an error.
func (p *Parser) Parse(text string) (Command, error) {
	fields := strings.Fields(p.stripMention(text))
	if len(fields) == 0 {
		return Command{Kind: Unrecognized}, nil
	}

	switch fields[0] {
	case "!help":
		return Command{Kind: Help}, nil
	case "!balance":
		return Command{Kind: Balance}, nil
	case "!deposit":
		return Command{Kind: Deposit}, nil
	case "!tip":
		return p.parseTip(fields[1:])
	case "!withdraw":
		cmd := Command{Kind: Withdraw}
		if len(fields) > 1 {
			cmd.Address = fields[1]
		}
		return cmd, nil
	default:
		return Command{Kind: Unrecognized}, nil
	}
}

func (p *Parser) parseTip(args []string) (Command, error) {
	if len(args) < 1 {
		return Command{}, &ParseError{Argument: "email", Reason: "No receiver email supplied"}
	}
	email := args[0]
	if !p.emailRE.MatchString(email) {
		return Command{}, &ParseError{
			Argument: "email",
			Reason:   fmt.Sprintf("Could not parse the email address `%s`", email),
		}
	}

	if len(args) < 2 {
		return Command{}, &ParseError{Argument: "amount", Reason: "No amount supplied"}
	}
	amount := args[1]
	if !amountRE.MatchString(amount) {
		return Command{}, &ParseError{
			Argument: "amount",
			Reason:   fmt.Sprintf("Could not parse the amount `%s`, use a positive whole number", amount),
		}
	}

	return Command{Kind: Tip, Receiver: email, Amount: amount}, nil
}

// stripMention removes the configured bot mention when the message starts
// with it; otherwise the text passes through unmodified.
func (p *Parser) stripMention(text string) string {
	trimmed := strings.TrimSpace(text)
	if p.mention != "" && strings.HasPrefix(trimmed, p.mention) {
		return trimmed[len(p.mention):]
	}
	return trimmed
}
