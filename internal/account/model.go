package account

// Account binds a chat identity to its custodial ledger account. The key
// material and wallet id are secrets held only in the local store; the
// remote node is the source of truth for balances. Records are immutable
// after creation.
type Account struct {
	Address  string
	Public   string
	Private  string
	Wallet   string
	Identity string
}
