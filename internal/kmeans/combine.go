package kmeans

import "sync"

// Combiner merges worker-local partial accumulators into a global one.
type Combiner interface {
	// Combine merges a complete partial result. It may be called
	// concurrently from several workers.
	Combine(partial *Accumulator)
	// Flush completes any deferred merging. It is called once, after every
	// worker has returned from Combine.
	Flush()
}

// MutexCombiner merges each partial under a single lock, so lock traffic is
// one acquisition per worker rather than one per point.
type MutexCombiner struct {
	mu     sync.Mutex
	global *Accumulator
}

// NewMutexCombiner creates a combiner merging into global.
func NewMutexCombiner(global *Accumulator) *MutexCombiner {
	return &MutexCombiner{global: global}
}

// Combine implements Combiner.
func (m *MutexCombiner) Combine(partial *Accumulator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.global.Merge(partial)
}

// Flush implements Combiner.
func (m *MutexCombiner) Flush() {}

// TreeCombiner collects partials and merges them pairwise in Flush.
// Partials are held by reference and must stay untouched until Flush.
type TreeCombiner struct {
	mu       sync.Mutex
	global   *Accumulator
	partials []*Accumulator
}

// NewTreeCombiner creates a combiner merging into global.
func NewTreeCombiner(global *Accumulator) *TreeCombiner {
	return &TreeCombiner{global: global}
}

// Combine implements Combiner.
func (t *TreeCombiner) Combine(partial *Accumulator) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.partials = append(t.partials, partial)
}

// Flush implements Combiner.
func (t *TreeCombiner) Flush() {
	if len(t.partials) == 0 {
		return
	}
	t.global.Merge(TreeReduce(t.partials))
	t.partials = t.partials[:0]
}

// TreeReduce merges partials pairwise, level by level, and returns the
// root. Levels are merged in parallel. The first element of each pair is
// overwritten.
func TreeReduce(partials []*Accumulator) *Accumulator {
	level := partials
	for len(level) > 1 {
		next := make([]*Accumulator, (len(level)+1)/2)
		var wg sync.WaitGroup
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next[i/2] = level[i]
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				level[i].Merge(level[i+1])
				next[i/2] = level[i]
			}()
		}
		wg.Wait()
		level = next
	}
	return level[0]
}
