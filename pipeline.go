package rawimg

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const scanWorkers = 10

// Matcher pairs a preset database with a logger and scans directory trees
// for files whose checksums match a stored preset.
type Matcher struct {
	db     *PresetDB
	logger *log.Logger
}

// NewMatcher returns a Matcher using the given database and logger.
func NewMatcher(db *PresetDB, logger *log.Logger) *Matcher {
	return &Matcher{
		db:     db,
		logger: logger,
	}
}

// Match is one file recognized during a scan together with the preset that
// decodes it.
type Match struct {
	File    string
	Preset  string
	Request *Request
}

func (m *Matcher) findFiles(ctx context.Context, base string) (<-chan string, <-chan error) {
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
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
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
	return out, errc
}

func (m *Matcher) checksumWorker(in <-chan string, out chan<- Match, wg *sync.WaitGroup) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer wg.Done()
		defer close(errc)
		for file := range in {
			crc, err := ChecksumFile(file)
			if err != nil {
				errc <- err
				return
			}

			name, req, err := m.db.FindByCRC(crc)
			if err != nil {
				errc <- err
				return
			}
			if req == nil {
				m.logger.Printf("No match for \"%s\", with CRC \"%s\"\n", file, crc)
				continue
			}

			m.logger.Printf("\"%s\" matches preset \"%s\" (%dx%d %s %s)\n", file, name, req.Width, req.Height, req.Format, req.Layout)
			out <- Match{File: file, Preset: name, Request: req}
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
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

// Scan walks the directory tree rooted at path, checksums every regular
// file and returns the ones matching a preset, sorted by file path.
func (m *Matcher) Scan(path string) ([]Match, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc := m.findFiles(ctx, dir)
	errcList = append(errcList, errc)

	out := make(chan Match)
	var wg sync.WaitGroup
	wg.Add(scanWorkers)
	for i := 0; i < scanWorkers; i++ {
		errcList = append(errcList, m.checksumWorker(files, out, &wg))
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	var matches []Match
	done := make(chan struct{})
	go func() {
		defer close(done)
		for match := range out {
			matches = append(matches, match)
		}
	}()

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}
	<-done

	sort.Slice(matches, func(i, j int) bool { return matches[i].File < matches[j].File })

	return matches, nil
}
