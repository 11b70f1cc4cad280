package services

import (
	"errors"
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/esantostaype/task-automation-sub001/internal/models"
	"github.com/esantostaype/task-automation-sub001/internal/repository"
	"github.com/esantostaype/task-automation-sub001/internal/scheduling"
)

// ExternalTask is a task record fetched from an external tracker.
type ExternalTask struct {
	ExternalID     string
	Name           string
	Status         string
	TypeID         uint64
	CategoryID     uint64
	BrandID        uint64
	Priority       models.TaskPriority
	CustomDuration *float64
}

// TaskSource fetches task records from an external system.
type TaskSource interface {
	FetchTasks() ([]ExternalTask, error)
}

// SyncReport summarizes one import run.
type SyncReport struct {
	Created  int
	Updated  int
	Excluded int
	Failed   int
}

// SyncService periodically imports tasks from an external source and keeps
// their statuses in step with the local queue.
type SyncService struct {
	taskRepo    repository.TaskRepository
	taskService *TaskService
	source      TaskSource
	cron        *cron.Cron
}

// NewSyncService creates a new SyncService. source may be nil, in which case
// the periodic tick is a noop.
func NewSyncService(taskRepo repository.TaskRepository, taskService *TaskService, source TaskSource) *SyncService {
	return &SyncService{
		taskRepo:    taskRepo,
		taskService: taskService,
		source:      source,
		cron:        cron.New(),
	}
}

// Start schedules the periodic sync. spec is a cron expression, for example
// "@every 10m".
func (s *SyncService) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.Tick); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the periodic sync and waits for a running tick to finish.
func (s *SyncService) Stop() {
	<-s.cron.Stop().Done()
}

// Tick runs one sync pass against the configured source.
func (s *SyncService) Tick() {
	if s.source == nil {
		return
	}
	records, err := s.source.FetchTasks()
	if err != nil {
		log.Printf("sync: fetch failed: %v", err)
		return
	}
	report, err := s.ImportTasks(records)
	if err != nil {
		log.Printf("sync: import failed: %v", err)
		return
	}
	log.Printf("sync: created=%d updated=%d excluded=%d failed=%d",
		report.Created, report.Updated, report.Excluded, report.Failed)
}

// ImportTasks reconciles external records with local tasks. Records whose raw
// status maps to no local status are excluded. Known tasks get their status
// updated; unknown ones are created through the normal assignment flow, except
// already-completed records, which never enter a queue.
func (s *SyncService) ImportTasks(records []ExternalTask) (SyncReport, error) {
	var report SyncReport
	for _, rec := range records {
		status, ok := scheduling.MapExternalStatus(rec.Status)
		if !ok {
			report.Excluded++
			continue
		}

		existing, err := s.taskRepo.FindByExternalID(rec.ExternalID)
		switch {
		case err == nil:
			if existing.Status == status {
				continue
			}
			if _, err := s.taskService.UpdateStatus(existing.ID, status); err != nil {
				log.Printf("sync: update %q failed: %v", rec.ExternalID, err)
				report.Failed++
				continue
			}
			report.Updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			if status == models.TaskStatusComplete {
				report.Excluded++
				continue
			}
			externalID := rec.ExternalID
			_, _, err := s.taskService.CreateTask(CreateTaskInput{
				Name:           rec.Name,
				TypeID:         rec.TypeID,
				CategoryID:     rec.CategoryID,
				BrandID:        rec.BrandID,
				Priority:       rec.Priority,
				CustomDuration: rec.CustomDuration,
				ExternalID:     &externalID,
			})
			if err != nil {
				log.Printf("sync: create %q failed: %v", rec.ExternalID, err)
				report.Failed++
				continue
			}
			if status != models.TaskStatusToDo {
				created, ferr := s.taskRepo.FindByExternalID(rec.ExternalID)
				if ferr == nil {
					if _, uerr := s.taskService.UpdateStatus(created.ID, status); uerr != nil {
						log.Printf("sync: set status for %q failed: %v", rec.ExternalID, uerr)
					}
				}
			}
			report.Created++
		default:
			return report, err
		}
	}
	return report, nil
}
