// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/crashify/audio"
)

// fakeOgg hands out its samples in whole frames, at most chunk values per read.
type fakeOgg struct {
	rate     int
	channels int
	data     []float32
	chunk    int
	err      error
}

func (f *fakeOgg) SampleRate() int { return f.rate }
func (f *fakeOgg) Channels() int   { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.data) == 0 {
		return 0, io.EOF
	}

	n := min(len(p), f.chunk, len(f.data))
	n -= n % f.channels
	copy(p, f.data[:n])
	f.data = f.data[n:]

	return n, nil
}

func newTestSource(f *fakeOgg) *source {
	return &source{dec: f, rate: f.rate, channels: f.channels}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	s := newTestSource(&fakeOgg{rate: 48000, channels: 3})
	require.Equal(t, 48000, s.SampleRate())
	require.Equal(t, 3, s.Channels())
	require.Zero(t, s.BufSize()%3)
	require.NoError(t, s.Close())
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		chunk    int
		size     int
	}{
		{"mono", 1, 100, 64},
		{"stereo small chunks", 2, 4, 64},
		{"stereo odd buffer", 2, 100, 5},
		{"six channels", 6, 12, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := make([]float32, 12*tt.channels)
			for i := range want {
				want[i] = float32(i) / float32(len(want))
			}

			s := newTestSource(&fakeOgg{
				rate:     44100,
				channels: tt.channels,
				data:     append([]float32(nil), want...),
				chunk:    tt.chunk,
			})

			var got []float32
			buf := make([]float32, tt.size)
			for {
				n, err := s.ReadSamples(buf)
				require.Zero(t, n%tt.channels, "reads are whole frames")
				got = append(got, buf[:n]...)
				if errors.Is(err, io.EOF) {
					break
				}
				require.NoError(t, err)
			}
			require.Equal(t, want, got)

			n, err := s.ReadSamples(buf)
			require.Zero(t, n)
			require.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestSource_BufferSmallerThanFrame(t *testing.T) {
	t.Parallel()

	s := newTestSource(&fakeOgg{rate: 44100, channels: 2, data: []float32{1, 1}, chunk: 2})
	_, err := s.ReadSamples(make([]float32, 1))
	require.ErrorIs(t, err, audio.ErrInvalidDstSize)
}

func TestSource_DecodeError(t *testing.T) {
	t.Parallel()

	s := newTestSource(&fakeOgg{rate: 44100, channels: 1, err: io.ErrUnexpectedEOF})
	_, err := s.ReadSamples(make([]float32, 8))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not Ogg Vorbis data")} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))
		require.Error(t, err)
	}
}
