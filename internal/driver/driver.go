// Package driver is the parallel traversal engine (spec.md §4.6/§4.7): one
// task per directory, cycle-safe symlink following via a concurrent
// (device, inode) set, optional same-filesystem confinement, and batched
// results shipped over a channel. Grounded on the teacher's recursive
// walkCfg worker shape and, for the concurrency primitives, on
// ivoronin-dupedog's scanner.go fan-out/fan-in design — generalized from
// a hand-rolled semaphore+WaitGroup to golang.org/x/sync's
// semaphore.Weighted and errgroup.Group, and from opencoff-go-walk's
// symlink/mount-point handling in walk.go.
package driver

import (
	"context"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"gofind/internal/config"
	"gofind/internal/entry"
	"gofind/internal/finderr"
	"gofind/internal/predicate"
	"gofind/internal/rawdir"
)

const (
	// parallelismFactor multiplies GOMAXPROCS for the default worker
	// count, matching the teacher's own CPU-count-derived concurrency.
	parallelismFactor = 2

	resultBatchSize  = 256
	resultChanBuffer = 64
)

type seenKey struct {
	dev uint64
	ino uint64
}

// Driver runs one traversal. It is single-use: construct with New and
// call Run exactly once.
type Driver struct {
	cfg   config.SearchConfig
	chain *predicate.Chain

	sem *semaphore.Weighted

	visited sync.Map // seenKey -> struct{}{}

	errMu sync.Mutex
	errs  []error

	rootDevice     uint64
	haveRootDevice bool
}

// New builds a Driver for cfg, using chain to decide which entries are
// emitted.
func New(cfg config.SearchConfig, chain *predicate.Chain) *Driver {
	threads := cfg.ThreadCount
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0) * parallelismFactor
	}
	return &Driver{
		cfg:   cfg,
		chain: chain,
		sem:   semaphore.NewWeighted(int64(threads)),
	}
}

// Run traverses cfg.Root and streams matching entries in batches on the
// returned channel, which is closed once traversal (including every
// recursive child) completes. Call Errs after the channel is drained to
// retrieve accumulated errors.
func (d *Driver) Run(ctx context.Context) <-chan []*entry.Entry {
	out := make(chan []*entry.Entry, resultChanBuffer)

	go func() {
		defer close(out)

		rootFi, err := os.Lstat(d.cfg.Root)
		if err != nil {
			d.addErr(finderr.New(finderr.KindInvalidPath, d.cfg.Root, err))
			return
		}
		if !rootFi.IsDir() {
			d.addErr(finderr.New(finderr.KindInvalidPath, d.cfg.Root, nil))
			return
		}

		dev, ino := fileIdentity(rootFi, d.cfg.Root)
		d.rootDevice, d.haveRootDevice = dev, true
		d.visited.Store(seenKey{dev, ino}, struct{}{})

		root, err := entry.FromOSPath(d.cfg.Root, entry.Directory, ino, 0)
		if err != nil {
			d.addErr(err)
			return
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return d.walkDir(gctx, g, out, root)
		})
		_ = g.Wait()
	}()

	return out
}

// Errs returns every error accumulated during the traversal. Only
// meaningful after Run's channel has been drained and closed.
func (d *Driver) Errs() []error {
	d.errMu.Lock()
	defer d.errMu.Unlock()
	return append([]error(nil), d.errs...)
}

func (d *Driver) addErr(err error) {
	if err == nil {
		return
	}
	d.errMu.Lock()
	d.errs = append(d.errs, err)
	d.errMu.Unlock()
}

// walkDir enumerates dir's children, filters and batches matches onto
// out, and schedules traversible children as further errgroup tasks
// gated by the shared semaphore.
func (d *Driver) walkDir(ctx context.Context, g *errgroup.Group, out chan<- []*entry.Entry, dir *entry.Entry) error {
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	it, err := rawdir.NewIterator(dir.Path(), dir.Depth())
	if err != nil {
		d.sem.Release(1)
		d.addErr(err)
		return nil
	}

	var batch []*entry.Entry
	var children []*entry.Entry

	for {
		e, nextErr := it.Next()
		if nextErr != nil {
			d.addErr(nextErr)
			break
		}
		if e == nil {
			break
		}
		if d.cfg.HideHidden && e.IsHidden() {
			continue
		}

		traversible, terr := e.IsTraversible()
		if terr != nil {
			d.addErr(terr)
			traversible = false
		}

		if traversible {
			descend, crossesFilesystem := d.descendDecision(e)
			if crossesFilesystem {
				// spec invariant: under same-filesystem confinement no
				// entry off the root's device is ever emitted, keep_dirs
				// notwithstanding.
				continue
			}
			if descend {
				children = append(children, e)
			}
			if d.cfg.KeepDirs {
				if keep, perr := d.chain.Evaluate(e); perr != nil {
					d.addErr(perr)
				} else if keep {
					batch = appendBatch(out, batch, e)
				}
			}
			continue
		}

		keep, perr := d.chain.Evaluate(e)
		if perr != nil {
			d.addErr(perr)
			continue
		}
		if keep {
			batch = appendBatch(out, batch, e)
		}
	}
	_ = it.Close()
	d.sem.Release(1)

	if len(batch) > 0 {
		out <- batch
	}

	for _, child := range children {
		child := child
		g.Go(func() error {
			return d.walkDir(ctx, g, out, child)
		})
	}
	return nil
}

func appendBatch(out chan<- []*entry.Entry, batch []*entry.Entry, e *entry.Entry) []*entry.Entry {
	batch = append(batch, e)
	if len(batch) >= resultBatchSize {
		out <- batch
		return nil
	}
	return batch
}

// descendDecision reports whether the driver should recurse into a
// traversible entry (within the depth limit, permitted by the
// follow-symlinks setting, and not already visited via a symlink cycle)
// and, separately, whether the entry (for a symlink, the directory it
// leads to) lies off the root's device under same-filesystem confinement. The latter is reported independently
// of descend so the caller can apply it as a hard emit-veto rather than
// just a recursion stop: max-depth and unfollowed-symlink entries are
// still eligible for keep_dirs emission, but an entry on the wrong
// filesystem never is.
func (d *Driver) descendDecision(e *entry.Entry) (descend, crossesFilesystem bool) {
	if d.cfg.MaxDepth != nil && e.Depth() >= *d.cfg.MaxDepth {
		return false, false
	}
	if e.IsSymlink() && !d.cfg.FollowSymlinks {
		return false, false
	}

	// A plain directory can't introduce a traversal cycle on its own, so
	// the stat+visited-set cost below is only paid when it's actually
	// needed: following a symlink, or confining the walk to one device.
	if !e.IsSymlink() && !d.cfg.SameFilesystem {
		return true, false
	}

	// A followed symlink is stat'ed through to its target, so the cycle key
	// and the device check describe the directory it leads to.
	stat := os.Lstat
	if e.IsSymlink() {
		stat = os.Stat
	}
	fi, err := stat(e.Path())
	if err != nil {
		d.addErr(finderr.IO(e.Path(), err))
		return false, false
	}
	dev, ino := fileIdentity(fi, e.Path())

	if d.cfg.SameFilesystem && d.haveRootDevice && dev != d.rootDevice {
		return false, true
	}

	if !e.IsSymlink() {
		return true, false
	}

	key := seenKey{dev, ino}
	if _, loaded := d.visited.LoadOrStore(key, struct{}{}); loaded {
		return false, false
	}
	return true, false
}
