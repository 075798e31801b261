package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RowKey carries the 1-based input row currently being processed, so
// nested adapter logs can be tied back to it.
const RowKey ctxKey = "row"

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	row, _ := ctx.Value(RowKey).(int)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("row=%d op=%s dur=%dms err=%v", row, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("row=%d op=%s dur=%dms", row, name, dur.Milliseconds())
	}
}
