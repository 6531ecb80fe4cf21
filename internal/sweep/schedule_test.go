package sweep

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

/* TestScheduler_Register verifies expression validation at registration time. */
func TestScheduler_Register(t *testing.T) {
	scheduler := NewScheduler(slog.New(slog.DiscardHandler))

	assert.NoError(t, scheduler.Register("0 4 * * 0", "weekly-sweep", func() {}))
	assert.Error(t, scheduler.Register("not a cron expression", "broken", func() {}))
}
