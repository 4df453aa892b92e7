// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vscene/tess"
)

// minBufferSize keeps small scenes from regrowing every frame.
const minBufferSize = 64 << 10

// meshBuffers are vertex and index buffers reused across frames and grown
// to the next power of two when a frame does not fit.
type meshBuffers struct {
	vertBuf  hal.Buffer
	vertSize uint64
	idxBuf   hal.Buffer
	idxSize  uint64
}

// upload writes m into the buffers, growing them first if needed. It
// reports whether a buffer was reallocated.
func (mb *meshBuffers) upload(device hal.Device, queue hal.Queue, m *tess.Mesh, scratch []byte) (grown bool, _ []byte, _ error) {
	vertBytes := uint64(len(m.Vertices)) * tess.VertexSize
	idxBytes := uint64(len(m.Indices)) * 4

	if vertBytes > mb.vertSize || idxBytes > mb.idxSize {
		// In-flight frames may still read the old buffers.
		if err := device.WaitIdle(); err != nil {
			return false, scratch, fmt.Errorf("gpu: wait idle before grow: %w", err)
		}
		grown = true
	}
	if vertBytes > mb.vertSize {
		size := growSize(vertBytes)
		buf, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: "vscene_vertices",
			Size:  size,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return false, scratch, fmt.Errorf("gpu: create vertex buffer: %w", err)
		}
		if mb.vertBuf != nil {
			device.DestroyBuffer(mb.vertBuf)
		}
		mb.vertBuf, mb.vertSize = buf, size
	}
	if idxBytes > mb.idxSize {
		size := growSize(idxBytes)
		buf, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: "vscene_indices",
			Size:  size,
			Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return false, scratch, fmt.Errorf("gpu: create index buffer: %w", err)
		}
		if mb.idxBuf != nil {
			device.DestroyBuffer(mb.idxBuf)
		}
		mb.idxBuf, mb.idxSize = buf, size
	}

	scratch = encodeVertices(scratch[:0], m.Vertices)
	if err := queue.WriteBuffer(mb.vertBuf, 0, scratch); err != nil {
		return grown, scratch, fmt.Errorf("gpu: write vertices: %w", err)
	}
	scratch = encodeIndices(scratch[:0], m.Indices)
	if err := queue.WriteBuffer(mb.idxBuf, 0, scratch); err != nil {
		return grown, scratch, fmt.Errorf("gpu: write indices: %w", err)
	}
	return grown, scratch, nil
}

func (mb *meshBuffers) destroy(device hal.Device) {
	if mb.vertBuf != nil {
		device.DestroyBuffer(mb.vertBuf)
		mb.vertBuf, mb.vertSize = nil, 0
	}
	if mb.idxBuf != nil {
		device.DestroyBuffer(mb.idxBuf)
		mb.idxBuf, mb.idxSize = nil, 0
	}
}

func growSize(n uint64) uint64 {
	size := uint64(minBufferSize)
	for size < n {
		size <<= 1
	}
	return size
}

// encodeVertices appends vertices in the GPU layout: x, y, r, g, b, a as
// little-endian float32.
func encodeVertices(dst []byte, vs []tess.Vertex) []byte {
	for _, v := range vs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Position[0]))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Position[1]))
		for _, c := range v.Color {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(c))
		}
	}
	return dst
}

func encodeIndices(dst []byte, idx []uint32) []byte {
	for _, i := range idx {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}
