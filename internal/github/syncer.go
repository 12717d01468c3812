package github

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// How long to wait after the last mutation before pushing, so a burst
// of commands produces one commit instead of many
const debounceWindow = 2 * time.Minute

// Loader produces the current snapshot of a document
type Loader func() ([]byte, error)

type pending struct {
	timer  *time.Timer
	load   Loader
	commit string
}

// Syncer debounces mirror pushes per document. Repeated Schedule
// calls for the same file within the window coalesce into one push
// carrying the latest state at fire time
type Syncer struct {
	mirror  *Mirror
	window  time.Duration
	mutex   sync.Mutex
	pending map[string]*pending
}

func NewSyncer(mirror *Mirror) *Syncer {
	return &Syncer{mirror: mirror, window: debounceWindow, pending: map[string]*pending{}}
}

// Schedule (re)arms the debounced push of a document. The loader runs
// when the window expires, so the push always carries the state at
// that moment, not the state at call time
func (syncer *Syncer) Schedule(filename string, load Loader, commit string) {

	if !syncer.mirror.Enabled() {
		log.Debug().Msg("Remote mirror is not configured, skipping sync")
		return
	}

	syncer.mutex.Lock()
	defer syncer.mutex.Unlock()

	if entry, ok := syncer.pending[filename]; ok {
		entry.timer.Stop()
	}
	entry := &pending{load: load, commit: commit}
	entry.timer = time.AfterFunc(syncer.window, func() {
		syncer.mutex.Lock()
		delete(syncer.pending, filename)
		syncer.mutex.Unlock()
		syncer.push(filename, load, commit)
	})
	syncer.pending[filename] = entry
	log.Debug().Msg(fmt.Sprintf("Mirror sync of %s scheduled in %s", filename, syncer.window))
}

// Flush pushes every pending document immediately. Used at shutdown
// so a mutation made just before exit is not lost from the mirror
func (syncer *Syncer) Flush() {

	syncer.mutex.Lock()
	entries := map[string]*pending{}
	for filename, entry := range syncer.pending {
		entry.timer.Stop()
		entries[filename] = entry
	}
	syncer.pending = map[string]*pending{}
	syncer.mutex.Unlock()

	for filename, entry := range entries {
		syncer.push(filename, entry.load, entry.commit)
	}
}

// Pending returns the number of documents waiting for their window
func (syncer *Syncer) Pending() int {
	syncer.mutex.Lock()
	defer syncer.mutex.Unlock()
	return len(syncer.pending)
}

// push performs the sync. Failures are logged and swallowed: the
// mirror is best effort and must never block local operation
func (syncer *Syncer) push(filename string, load Loader, commit string) {

	content, err := load()
	if err != nil {
		log.Warn().Msg(fmt.Sprintf("Could not load %s for mirror sync: %v", filename, err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := syncer.mirror.Push(ctx, filename, content, commit); err != nil {
		log.Warn().Msg(fmt.Sprintf("Mirror sync of %s failed: %v", filename, err))
		return
	}
	log.Info().Msg(fmt.Sprintf("Mirror sync of %s completed", filename))
}
