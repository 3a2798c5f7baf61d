package raster

import "sync"

// Pool lets callers reuse large scratch buffers to reduce GC pressure when
// the filter runs once per tile at video or export rates. A nil *Pool is
// valid and falls back to plain allocation.
type Pool struct {
	buffers sync.Pool
}

// Get returns a zeroed buffer of the requested dimensions, reusing a pooled
// allocation when one of matching size is available.
func (p *Pool) Get(width, height int) (*Buffer, error) {
	if p == nil {
		return NewBuffer(width, height)
	}
	if v := p.buffers.Get(); v != nil {
		buf := v.(*Buffer)
		if buf.Width == width && buf.Height == height {
			buf.Zero()
			return buf, nil
		}
	}
	return NewBuffer(width, height)
}

// Put returns a buffer to the pool for reuse. The buffer must not be used
// by the caller afterwards.
func (p *Pool) Put(buf *Buffer) {
	if p == nil || buf == nil {
		return
	}
	p.buffers.Put(buf)
}
