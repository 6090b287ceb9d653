package fbspinner

import (
	"context"
	"errors"
	"image"
	"sync"
)

type frameJob struct {
	index int
	file  string
}

func (s *Spinner) findFrames(ctx context.Context, files []string) (<-chan frameJob, <-chan error, error) {
	out := make(chan frameJob)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i, file := range files {
			select {
			case out <- frameJob{index: i, file: file}:
			case <-ctx.Done():
				errc <- errors.New("frame search cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

// frameWorker decodes each frame into its slot in frames. Every worker
// writes to different indices so no locking is needed.
func (s *Spinner) frameWorker(ctx context.Context, in <-chan frameJob, frames []image.Image) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for job := range in {
			if ctx.Err() != nil {
				continue
			}

			m, err := decodeFile(job.file)
			if err != nil {
				errc <- err
				return
			}

			s.logger.Debugf("Decoded frame %d from %q, %v", job.index, job.file, m.Bounds())
			frames[job.index] = m
		}
	}()
	return errc, nil
}

func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	var first error
	for err := range errc {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// loadFrames decodes files concurrently using the given number of workers,
// returning the frames in the same order as files.
func (s *Spinner) loadFrames(ctx context.Context, files []string, workers int) ([]image.Image, error) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	if workers < 1 {
		workers = 1
	}

	frames := make([]image.Image, len(files))

	var errcList []<-chan error

	jobs, errc, err := s.findFrames(ctx, files)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := s.frameWorker(ctx, jobs, frames)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(cancelFunc, errcList...); err != nil {
		return nil, err
	}

	return frames, nil
}
