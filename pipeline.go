package untile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	imageio "github.com/bodgit/untile/image"
	"github.com/bodgit/untile/tile"
)

// DefaultWorkers is the number of images restored concurrently by Scan.
const DefaultWorkers = 10

func (u *Untile) findImages(ctx context.Context, base, skip string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Don't pick up images already restored
			if info.Mode().IsDir() && file == skip {
				return filepath.SkipDir
			}

			if !info.Mode().IsRegular() || !imageio.IsImage(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (u *Untile) restore(file, dst string, o *imageio.Options) error {
	sha, err := sha1File(file)
	if err != nil {
		return err
	}

	e, err := u.db.FindBySHA1(sha)
	if err != nil {
		return err
	}
	if e == nil {
		u.logger.Printf("No match for \"%s\", with SHA-1 \"%s\"\n", file, sha)
		return nil
	}

	m, err := imageio.Load(file)
	if err != nil {
		return err
	}

	r, err := tile.Rearrange(m, e.Size, e.Ordering)
	if err != nil {
		return err
	}

	// Decode only formats are restored as PNG
	if !imageio.CanSave(dst) {
		dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + ".png"
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	if err := imageio.Save(r, dst, o); err != nil {
		return err
	}
	u.logger.Printf("Restored \"%s\" to \"%s\"\n", file, dst)

	return nil
}

func (u *Untile) imageWorker(ctx context.Context, in <-chan string, base, out string, o *imageio.Options) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for {
			select {
			case file, ok := <-in:
				if !ok {
					return
				}

				rel, err := filepath.Rel(base, file)
				if err != nil {
					errc <- err
					return
				}

				if err := u.restore(file, filepath.Join(out, rel), o); err != nil {
					errc <- err
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error from any stage. That error
// cancels the remaining stages, which are drained before returning so no
// image is still being written afterwards.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
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
			defer wg.Done()
			for err := range c {
				out <- err
			}
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and restores every image found in the catalog, writing
// each one under out at the same relative path. Images are saved according
// to o, which may be nil.
func (u *Untile) Scan(path, out string, workers int, o *imageio.Options) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	out, err = filepath.Abs(out)
	if err != nil {
		return err
	}

	if out == dir {
		return errors.New("output directory must differ from the scanned directory")
	}

	if workers < 1 {
		workers = DefaultWorkers
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := u.findImages(ctx, dir, out)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := u.imageWorker(ctx, files, dir, out, o)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
