// Copyright 2026 The swrast Authors. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// glbHeader is a GLB container header: magic, version, total length.
type glbHeader [3]uint32

const (
	headerMagic = iota
	headerVersion
	headerLength
)

// glbChunk is a GLB chunk header: length, type. The payload follows.
type glbChunk [2]uint32

const (
	chunkLength = iota
	chunkType
)

const (
	magic    = 0x46546c67 // glbHeader[headerMagic].
	typeJSON = 0x4e4f534a // glbChunk[chunkType] for the JSON chunk.
	typeBIN  = 0x004e4942 // glbChunk[chunkType] for the binary chunk.
)

// IsGLB returns whether r refers to a binary glTF (version 2). It
// assumes r is positioned at the start of the blob.
func IsGLB(r io.Reader) bool {
	var h glbHeader
	err := binary.Read(r, binary.LittleEndian, h[:])
	return err == nil && h[headerMagic] == magic && h[headerVersion] == 2
}

// SeekJSON seeks into r until it finds the beginning of the JSON
// chunk's payload, returning the chunk's length. whence is
// io.SeekStart when r refers to an unread GLB blob, or io.SeekCurrent
// when r is already positioned at the start of the JSON chunk header.
func SeekJSON(r io.Reader, whence int) (n int, err error) {
	switch whence {
	case io.SeekStart:
		if !IsGLB(r) {
			return 0, errors.New(prefix + "not a GLB blob")
		}
	case io.SeekCurrent:
	default:
		return 0, errors.New(prefix + "invalid whence value")
	}
	var c glbChunk
	if err := binary.Read(r, binary.LittleEndian, c[:]); err != nil {
		return 0, err
	}
	if c[chunkLength] == 0 || c[chunkType] != typeJSON {
		return 0, errors.New(prefix + "invalid GLB chunk")
	}
	return int(c[chunkLength]), nil
}

// SeekBIN seeks into r until it finds the beginning of the binary
// chunk's payload, returning the chunk's length (which may be zero).
// The BIN chunk is optional; an io.EOF return indicates its absence.
// whence is io.SeekStart when r refers to an unread GLB blob, or
// io.SeekCurrent when r is already positioned at the start of the BIN
// chunk header.
func SeekBIN(r io.Reader, whence int) (n int, err error) {
	if whence == io.SeekStart {
		jsonLen, err := SeekJSON(r, whence)
		if err != nil {
			return 0, err
		}
		if s, ok := r.(io.Seeker); ok {
			if _, err := s.Seek(int64(jsonLen), io.SeekCurrent); err != nil {
				return 0, err
			}
		} else if _, err := io.CopyN(io.Discard, r, int64(jsonLen)); err != nil {
			return 0, err
		}
	} else if whence != io.SeekCurrent {
		return 0, errors.New(prefix + "invalid whence value")
	}
	var c glbChunk
	if err := binary.Read(r, binary.LittleEndian, c[:]); err != nil {
		return 0, err
	}
	if c[chunkType] != typeBIN {
		return 0, errors.New(prefix + "invalid GLB chunk")
	}
	return int(c[chunkLength]), nil
}

// Pack writes to w a GLB blob assembling gltf and bin as JSON and BIN
// chunks, respectively. If len(bin) is 0, the BIN chunk is omitted.
func Pack(w io.Writer, gltf *GLTF, bin []byte) error {
	h := glbHeader{headerMagic: magic, headerVersion: 2}

	var buf bytes.Buffer
	if err := Encode(&buf, gltf); err != nil {
		return err
	}
	// Encoding produces compacted JSON, but appends a trailing newline.
	jn := buf.Len() - 1
	buf.Truncate(jn)
	if pad := jn % 4; pad != 0 {
		for ; pad != 4; pad++ {
			buf.WriteByte(0x20)
		}
		jn = buf.Len()
	}
	jc := glbChunk{chunkLength: uint32(jn), chunkType: typeJSON}

	if len(bin) == 0 {
		if uint64(20+jn) > uint64(^uint32(0)-3) {
			return errors.New(prefix + "GLB length overflow")
		}
		h[headerLength] = 12 + 8 + jc[chunkLength]
		for _, v := range []any{h[:], jc[:]} {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return err
			}
		}
		_, err := w.Write(buf.Bytes())
		return err
	}

	bn := len(bin)
	pad := bn % 4
	if pad == 0 {
		pad = 4
	}
	bc := glbChunk{chunkLength: uint32(bn + 4 - pad), chunkType: typeBIN}
	if uint64(32+jn+bn-pad) > uint64(^uint32(0)-3) {
		return errors.New(prefix + "GLB length overflow")
	}
	h[headerLength] = 12 + 8 + jc[chunkLength] + 8 + bc[chunkLength]
	if err := binary.Write(w, binary.LittleEndian, h[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, jc[:]); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, bc[:]); err != nil {
		return err
	}
	if _, err := w.Write(bin); err != nil {
		return err
	}
	_, err := w.Write(make([]byte, 4-pad))
	return err
}

// Unpack reads a GLB blob from r, decoding its JSON chunk into a new
// GLTF and copying its optional BIN chunk into a new byte slice. The
// slice holds the whole chunk, including any zero padding Pack added
// to reach a multiple of 4 bytes.
func Unpack(r io.Reader) (doc *GLTF, bin []byte, err error) {
	n, err := SeekJSON(r, io.SeekStart)
	if err != nil {
		return nil, nil, err
	}
	doc, err = Decode(io.LimitReader(r, int64(n)))
	if err != nil {
		return nil, nil, err
	}
	n, err = SeekBIN(r, io.SeekCurrent)
	if err != nil {
		if err == io.EOF {
			return doc, nil, nil
		}
		return nil, nil, err
	}
	bin = make([]byte, n)
	if _, err := io.ReadFull(r, bin); err != nil {
		return nil, nil, err
	}
	return doc, bin, nil
}
