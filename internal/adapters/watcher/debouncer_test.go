package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spvbuild/internal/adapters/watcher"
)

type callRecorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *callRecorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, paths)
}

func (r *callRecorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func TestDebouncer_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &callRecorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/project/shaders/shader2D.vert")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/project/shaders/shader2D.vert"}}, rec.snapshot())
	})
}

func TestDebouncer_BurstCoalesced(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &callRecorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/project/shaders/shader3D.frag")
		time.Sleep(60 * time.Millisecond)
		d.Add("/project/shaders/shader2D.vert")
		time.Sleep(60 * time.Millisecond)
		d.Add("/project/shaders/shader3D.frag")

		// Still inside the window restarted by the last Add.
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		calls := rec.snapshot()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/project/shaders/shader2D.vert", "/project/shaders/shader3D.frag"}, calls[0])
	})
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &callRecorder{}
		d := watcher.NewDebouncer(50*time.Millisecond, rec.record)

		d.Add("a")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("b")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"a"}, {"b"}}, rec.snapshot())
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &callRecorder{}
		d := watcher.NewDebouncer(50*time.Millisecond, rec.record)

		d.Add("a")
		d.Stop()
		d.Add("b")

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add("a")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		d.Add("b")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
	})
}
