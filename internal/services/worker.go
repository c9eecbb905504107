package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hirelens/resume-parser/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID uuid.UUID)
}

type worker struct {
	jobRepo          repositories.ParseJobRepository
	evaluatorService EvaluatorService
	jobQueue         chan uuid.UUID
	concurrency      int
	pollInterval     time.Duration
	wg               sync.WaitGroup
	stopChan         chan struct{}
}

func NewWorker(
	jobRepo repositories.ParseJobRepository,
	evaluatorService EvaluatorService,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	return &worker{
		jobRepo:          jobRepo,
		evaluatorService: evaluatorService,
		jobQueue:         make(chan uuid.UUID, 100),
		concurrency:      concurrency,
		pollInterval:     pollInterval,
		stopChan:         make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	// Start worker goroutines
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Start polling for pending jobs
	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(jobID uuid.UUID) {
	select {
	case w.jobQueue <- jobID:
		log.Printf("📥 Job %s enqueued\n", jobID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", jobID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case jobID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing job %s\n", workerID, jobID)
			// Process the parse job
			if err := w.evaluatorService.ProcessJob(ctx, jobID); err != nil {
				log.Printf("❌ Worker #%d failed to process job %s: %v\n", workerID, jobID, err)
			} else {
				log.Printf("✅ Worker #%d completed job %s\n", workerID, jobID)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log.Println("🔄 Starting pending jobs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			// Find pending jobs
			pendingJobs, err := w.jobRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending jobs: %v\n", err)
				continue
			}

			if len(pendingJobs) > 0 {
				log.Printf("📋 Found %d pending jobs\n", len(pendingJobs))
			}

			// Enqueue pending jobs
			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
