package core

// WaitTime bounds per-request database work and graceful shutdown, in seconds.
const WaitTime = 10

type OrderParams struct {
	Port int
}
