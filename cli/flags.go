package cli

const (
	FlagHome = "home"
	FlagAddr = "addr"
)
