package ui

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/yllada/nordvpn-indicator/common"
)

// housekeeping runs periodic background chores while the indicator is up.
type housekeeping struct {
	scheduler gocron.Scheduler
}

// startHousekeeping schedules every task at interval and starts the scheduler.
func startHousekeeping(interval time.Duration, tasks ...func()) (*housekeeping, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	for _, task := range tasks {
		if _, err := scheduler.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(task),
		); err != nil {
			_ = scheduler.Shutdown()
			return nil, fmt.Errorf("failed to create housekeeping job: %w", err)
		}
	}

	scheduler.Start()
	common.LogDebug("Housekeeping started (%d jobs every %v)", len(tasks), interval)
	return &housekeeping{scheduler: scheduler}, nil
}

// Stop shuts the scheduler down and waits for running jobs.
func (h *housekeeping) Stop() {
	if h == nil {
		return
	}
	if err := h.scheduler.Shutdown(); err != nil {
		common.LogWarn("Failed to stop housekeeping: %v", err)
	}
}
