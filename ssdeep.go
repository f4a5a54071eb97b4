// MIT License
//
// portions Copyright (c) 2017 Lukas Rist
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package lnkparse

import (
	"fmt"

	"github.com/go-errors/errors"
)

const (
	rollingWindow uint32 = 7
	blockMin             = 3
	spamSumLength        = 64
	minFileSize          = 4096
	hashPrime     uint32 = 0x01000193
	hashInit      uint32 = 0x28021967
	b64String            = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
)

var (
	errNotEnoughData = errors.Errorf("not enough data for a fuzzy hash")
	errBlockTooSmall = errors.Errorf("fuzzy hash block size fell below %d", blockMin)
)

type rollingHash struct {
	window [rollingWindow]byte
	h1     uint32
	h2     uint32
	h3     uint32
	n      uint32
}

func (r *rollingHash) sum() uint32 {
	return r.h1 + r.h2 + r.h3
}

func (r *rollingHash) roll(c byte) {
	r.h2 -= r.h1
	r.h2 += rollingWindow * uint32(c)
	r.h1 += uint32(c)
	r.h1 -= uint32(r.window[r.n])
	r.window[r.n] = c
	r.n++
	if r.n == rollingWindow {
		r.n = 0
	}
	r.h3 <<= 5
	r.h3 ^= uint32(c)
}

// fuzzyHasher accumulates both piecewise hashes for a single block size.
type fuzzyHasher struct {
	rolling   rollingHash
	blockSize int
	digest1   []byte
	digest2   []byte
	piece1    uint32
	piece2    uint32
}

func newFuzzyHasher(blockSize int) *fuzzyHasher {
	return &fuzzyHasher{
		blockSize: blockSize,
		piece1:    hashInit,
		piece2:    hashInit,
	}
}

// initialBlockSize is the smallest blockMin*2^k whose spam sum would cover
// size bytes.
func initialBlockSize(size int) int {
	blockSize := blockMin
	for blockSize*spamSumLength < size {
		blockSize *= 2
	}
	return blockSize
}

func sumHash(c byte, h uint32) uint32 {
	return (h * hashPrime) ^ uint32(c)
}

func (f *fuzzyHasher) update(c byte) {
	f.piece1 = sumHash(c, f.piece1)
	f.piece2 = sumHash(c, f.piece2)
	f.rolling.roll(c)

	rh := int(f.rolling.sum())
	if rh%f.blockSize != f.blockSize-1 {
		return
	}
	if len(f.digest1) < spamSumLength-1 {
		f.digest1 = append(f.digest1, b64String[f.piece1%64])
		f.piece1 = hashInit
	}
	if rh%(f.blockSize*2) == f.blockSize*2-1 && len(f.digest2) < spamSumLength/2-1 {
		f.digest2 = append(f.digest2, b64String[f.piece2%64])
		f.piece2 = hashInit
	}
}

// ssdeep computes the context triggered piecewise hash of data, halving the
// block size until the first digest is at least half full.
func ssdeep(data []byte) (string, error) {
	if len(data) < minFileSize {
		return "", errNotEnoughData
	}
	for blockSize := initialBlockSize(len(data)); ; blockSize /= 2 {
		if blockSize < blockMin {
			return "", errBlockTooSmall
		}
		f := newFuzzyHasher(blockSize)
		for _, c := range data {
			f.update(c)
		}
		if len(f.digest1) < spamSumLength/2 {
			continue
		}
		if f.rolling.sum() != 0 {
			f.digest1 = append(f.digest1, b64String[f.piece1%64])
			f.digest2 = append(f.digest2, b64String[f.piece2%64])
		}
		return fmt.Sprintf("%d:%s:%s", blockSize, f.digest1, f.digest2), nil
	}
}
