package command

// Kind discriminates the closed set of recognized chat commands.
type Kind int

const (
	Unrecognized Kind = iota
	Help
	Balance
	Deposit
	Tip
	Withdraw
)

// Command is the typed form of one inbound chat message. Receiver and
// Amount are set for Tip; Amount keeps the user's original decimal digits
// so the transfer loses no precision. Address is set for Withdraw.
type Command struct {
	Kind     Kind
	Receiver string
	Amount   string
	Address  string
}
