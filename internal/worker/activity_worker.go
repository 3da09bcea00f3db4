package worker

import (
	"github.com/spec-kit/leave-portal/internal/service"
)

// StartActivityWorker registers activity event handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
