package pow

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveSeal(err error, attempts uint64, started time.Time)
	}
)

const (
	defaultWindow uint64 = 4096

	// ctx is polled once per ctxCheckInterval hash evaluations.
	ctxCheckInterval = 1024
)
