package background

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"stowage/internal/caching"
	"stowage/internal/jobs"
)

// JobScheduler owns the periodic background work: receiving anomaly scans and
// reference cache invalidation. The job set is fixed at construction.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	monitor    *jobs.ReceivingMonitor
	cacheSvc   caching.CacheService
	jobsByName map[string]gocron.Job
}

func NewJobScheduler(monitor *jobs.ReceivingMonitor, cacheSvc caching.CacheService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		monitor:    monitor,
		cacheSvc:   cacheSvc,
		jobsByName: make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	scanJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.runAnomalyScan, context.Background()),
		gocron.WithName("receiving-anomaly-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create anomaly scan job: %v", err)
	} else {
		js.jobsByName["receiving-anomaly-scan"] = scanJob
	}

	cacheJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.invalidateReferenceCache, context.Background()),
		gocron.WithName("reference-cache-invalidation"),
	)
	if err != nil {
		log.Printf("Failed to create cache invalidation job: %v", err)
	} else {
		js.jobsByName["reference-cache-invalidation"] = cacheJob
	}

	log.Printf("Registered %d background jobs", len(js.jobsByName))
}

func (js *JobScheduler) runAnomalyScan(ctx context.Context) error {
	if err := js.monitor.ScheduledScan(ctx); err != nil {
		log.Printf("Receiving anomaly scan failed: %v", err)
		return err
	}
	return nil
}

// invalidateReferenceCache drops cached items and locations so master data
// edits made outside this service become visible within a day.
func (js *JobScheduler) invalidateReferenceCache(ctx context.Context) error {
	if js.cacheSvc == nil {
		return nil
	}
	if err := js.cacheSvc.InvalidateAll(ctx); err != nil {
		log.Printf("Reference cache invalidation failed: %v", err)
		return err
	}
	log.Println("Reference cache invalidated")
	return nil
}

// GetJobStatus reports the registered jobs.
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	names := make([]string, 0, len(js.jobsByName))
	for name := range js.jobsByName {
		names = append(names, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.jobsByName),
		"jobs":       names,
	}
}
