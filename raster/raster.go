// Package raster - dense float32 raster buffers and region geometry for
// pixel-processing pipelines.
//
// A Buffer stores width×height pixels with 4 contiguous float32 channels per
// pixel (3 color + 1 padding/alpha), row-major. All the solver stages in this
// module read and write Buffers of identical dimensions; the host owns the
// input/output Buffers across the call boundary, the solver owns its scratch
// Buffers for the duration of one invocation.
package raster

import (
	"github.com/pkg/errors"
)

// Channels is the number of float32 values stored per pixel.
// Three color channels plus one padding/alpha channel, so a pixel is a
// 16-byte block and stride math stays trivially vectorizable.
const Channels = 4

// Buffer is a dense, contiguous, row-major float32 raster.
type Buffer struct {
	// Pix holds Width*Height*Channels float32 values.
	Pix []float32
	// Width is the number of pixels per row.
	Width int
	// Height is the number of rows.
	Height int
}

// NewBuffer allocates a zeroed raster of the given dimensions.
//
// Arguments:
// - width: Pixels per row. Must be >= 1.
// - height: Number of rows. Must be >= 1.
//
// Returns:
// - The allocated buffer, or an error for non-positive dimensions.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("raster: invalid dimensions %dx%d", width, height)
	}
	return &Buffer{
		Pix:    make([]float32, width*height*Channels),
		Width:  width,
		Height: height,
	}, nil
}

// Index returns the offset of pixel (x, y) in Pix.
// Coordinates are not bounds-checked; callers clamp first.
func (b *Buffer) Index(x, y int) int {
	return (y*b.Width + x) * Channels
}

// SameSize reports whether two buffers share identical dimensions.
func (b *Buffer) SameSize(other *Buffer) bool {
	return other != nil && b.Width == other.Width && b.Height == other.Height
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]float32, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Pix: pix, Width: b.Width, Height: b.Height}
}

// Zero resets every sample to 0. Used to (re)initialize reconstruction
// accumulators between solver passes.
func (b *Buffer) Zero() {
	for i := range b.Pix {
		b.Pix[i] = 0
	}
}

// CopyFrom overwrites the buffer with the contents of src.
// Both buffers must share dimensions.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if !b.SameSize(src) {
		return errors.New("raster: size mismatch in CopyFrom")
	}
	copy(b.Pix, src.Pix)
	return nil
}

// Mask is a one-byte-per-pixel opacity mask. A non-zero entry means the
// pixel takes part in processing; a nil Mask means "process every pixel".
type Mask []uint8

// NewMask allocates an all-false mask for a width×height raster.
func NewMask(width, height int) Mask {
	return make(Mask, width*height)
}

// ROI describes the region of interest handed over by the host pipeline:
// the processed region's dimensions and the scale factors relating it to
// full-resolution processing. Effect strength is rescaled by the solver so
// a preview at 50% zoom matches the full-resolution export.
type ROI struct {
	// Width and Height of the processed region in pixels.
	Width  int
	Height int
	// Scale is the ratio of this region to native resolution (1 = native,
	// 0.5 = half-size preview).
	Scale float32
	// FullScale is the pipeline's native processing scale, normally 1.
	FullScale float32
}

// Zoom returns the effective downscaling ratio of the region, never below 1.
func (r ROI) Zoom() float32 {
	scale := r.Scale
	if scale <= 0 {
		scale = 1
	}
	full := r.FullScale
	if full <= 0 {
		full = 1
	}
	zoom := full / scale
	if zoom < 1 {
		return 1
	}
	return zoom
}

// Validate checks the ROI geometry against the buffers it describes.
func (r ROI) Validate(in, out *Buffer) error {
	if in == nil || out == nil {
		return errors.New("raster: nil buffer")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return errors.Errorf("raster: invalid ROI %dx%d", r.Width, r.Height)
	}
	if in.Width != r.Width || in.Height != r.Height {
		return errors.Errorf("raster: input buffer %dx%d does not match ROI %dx%d",
			in.Width, in.Height, r.Width, r.Height)
	}
	if out.Width != r.Width || out.Height != r.Height {
		return errors.Errorf("raster: output buffer %dx%d does not match ROI %dx%d",
			out.Width, out.Height, r.Width, r.Height)
	}
	return nil
}

// ClampCoord clamps a coordinate to [0, max-1]. Out-of-bounds stencil taps
// replicate the edge pixel; the solver never wraps or zero-pads.
func ClampCoord(coord, max int) int {
	if coord < 0 {
		return 0
	}
	if coord >= max {
		return max - 1
	}
	return coord
}
