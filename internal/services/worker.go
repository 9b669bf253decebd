package services

import (
	"context"
	"log"
	"sync"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// Worker runs analyses on a fixed number of goroutines so the server never has
// more than that many requests to the AI service in flight.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	Submit(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisResult, error)
}

type analysisJob struct {
	ctx            context.Context
	resumeText     string
	jobDescription string
	reply          chan analysisReply
}

type analysisReply struct {
	result *models.AnalysisResult
	err    error
}

type worker struct {
	analyzer    ResumeAnalyzer
	jobQueue    chan analysisJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	cancel      context.CancelFunc
}

func NewWorker(analyzer ResumeAnalyzer, concurrency, queueSize int) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &worker{
		analyzer:    analyzer,
		jobQueue:    make(chan analysisJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker. In-flight analyses are cancelled when ctx ends or
// Stop is called.
func (w *worker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. It aborts in-flight analyses, and jobs still waiting
// in the queue fail with ErrWorkerStopped.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
		if w.cancel != nil {
			w.cancel()
		}
		w.wg.Wait()
		w.drain()
		log.Println("✅ Worker stopped")
	})
}

// Submit implements Worker. It blocks until the analysis finishes, ctx is
// done or the worker stops. Invalid input is rejected without queueing.
func (w *worker) Submit(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisResult, error) {
	if err := ValidateAnalysisInput(resumeText, jobDescription); err != nil {
		return nil, err
	}

	job := analysisJob{
		ctx:            ctx,
		resumeText:     resumeText,
		jobDescription: jobDescription,
		reply:          make(chan analysisReply, 1),
	}

	select {
	case <-w.stopChan:
		return nil, ErrWorkerStopped
	default:
	}

	select {
	case w.jobQueue <- job:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-w.stopChan:
		return nil, ErrWorkerStopped
	}

	select {
	case reply := <-job.reply:
		return reply.result, reply.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-w.stopChan:
		select {
		case reply := <-job.reply:
			return reply.result, reply.err
		default:
			return nil, ErrWorkerStopped
		}
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case job := <-w.jobQueue:
			w.run(ctx, workerID, job)
		}
	}
}

func (w *worker) run(ctx context.Context, workerID int, job analysisJob) {
	if err := job.ctx.Err(); err != nil {
		job.reply <- analysisReply{err: err}
		return
	}

	// Cancel the outbound request when either the caller or the worker goes away.
	jobCtx, cancel := context.WithCancel(job.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	log.Printf("👷 Worker #%d processing analysis\n", workerID)
	result, err := w.analyzer.Analyze(jobCtx, job.resumeText, job.jobDescription)
	if err != nil {
		log.Printf("❌ Worker #%d analysis failed: %v\n", workerID, err)
	} else {
		log.Printf("✅ Worker #%d completed analysis (score %d)\n", workerID, result.MatchScore)
	}

	job.reply <- analysisReply{result: result, err: err}
}

func (w *worker) drain() {
	for {
		select {
		case job := <-w.jobQueue:
			job.reply <- analysisReply{err: ErrWorkerStopped}
		default:
			return
		}
	}
}
