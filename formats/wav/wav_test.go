// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/crashify/audio"
)

type chunk struct {
	id   string
	body []byte
}

// buildWAV assembles a RIFF file from raw sample bytes, inserting extra
// chunks between fmt and data.
func buildWAV(format uint16, rate, channels, bits int, data []byte, extra ...chunk) []byte {
	var fmtBody bytes.Buffer
	blockAlign := channels * bits / 8
	binary.Write(&fmtBody, binary.LittleEndian, format)
	binary.Write(&fmtBody, binary.LittleEndian, uint16(channels))
	binary.Write(&fmtBody, binary.LittleEndian, uint32(rate))
	binary.Write(&fmtBody, binary.LittleEndian, uint32(rate*blockAlign))
	binary.Write(&fmtBody, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&fmtBody, binary.LittleEndian, uint16(bits))

	chunks := append([]chunk{{"fmt ", fmtBody.Bytes()}}, extra...)
	chunks = append(chunks, chunk{"data", data})

	var body bytes.Buffer
	body.WriteString("WAVE")
	for _, c := range chunks {
		body.WriteString(c.id)
		binary.Write(&body, binary.LittleEndian, uint32(len(c.body)))
		body.Write(c.body)
		if len(c.body)%2 == 1 {
			body.WriteByte(0)
		}
	}

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func int16Bytes(v ...int16) []byte {
	var b bytes.Buffer
	for _, s := range v {
		binary.Write(&b, binary.LittleEndian, s)
	}
	return b.Bytes()
}

func readAll(t *testing.T, src audio.Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 64)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
	}
}

func TestDecoder_PCM16(t *testing.T) {
	t.Parallel()

	data := buildWAV(formatPCM, 8000, 2, 16, int16Bytes(0, 16384, -16384, -32768))
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, 8000, src.SampleRate())
	require.Equal(t, 2, src.Channels())
	require.Positive(t, src.BufSize())
	require.Equal(t, []float32{0, 0.5, -0.5, -1}, readAll(t, src))
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bits int
		data []byte
		want []float32
	}{
		{"8-bit unsigned", 8, []byte{128, 192, 0}, []float32{0, 0.5, -1}},
		{"8-bit single byte before pad", 8, []byte{200}, []float32{0.5625}},
		{"24-bit single frame before pad", 24, []byte{0x00, 0x00, 0x40}, []float32{0.5}},
		{"24-bit", 24, []byte{0x00, 0x00, 0x40, 0x00, 0x00, 0xC0}, []float32{0.5, -0.5}},
		{"32-bit", 32, []byte{0x00, 0x00, 0x00, 0x40}, []float32{0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(buildWAV(formatPCM, 44100, 1, tt.bits, tt.data)))
			require.NoError(t, err)
			require.Equal(t, tt.want, readAll(t, src))
		})
	}
}

func TestDecoder_StereoOddChunkKeepsWholeFrames(t *testing.T) {
	t.Parallel()

	// 3 bytes of 8-bit stereo: one frame plus a stray byte, then the pad
	data := buildWAV(formatPCM, 44100, 2, 8, []byte{128, 64, 255})
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, []float32{0, -0.5}, readAll(t, src))
}

func TestDecoder_SkipsExtraChunks(t *testing.T) {
	t.Parallel()

	list := chunk{"LIST", append([]byte("INFOISFT"), 0x05, 0, 0, 0, 'd', 'r', 'u', 'm', 0)}
	junk := chunk{"JUNK", make([]byte, 7)}
	data := buildWAV(formatPCM, 22050, 1, 16, int16Bytes(100, -100, 8192), list, junk)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 22050, src.SampleRate())
	require.InDeltaSlice(t, []float32{100.0 / 32768, -100.0 / 32768, 0.25}, readAll(t, src), 1e-9)
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := buildWAV(formatPCM, 16000, 1, 16, int16Bytes(1, 2, 3))
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	require.NoError(t, err)
	require.Len(t, readAll(t, src), 3)
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"garbage", []byte("definitely not audio data at all, just some bytes"), ErrNotWavFile},
		{"empty", nil, ErrNotWavFile},
		{"float encoding", buildWAV(3, 44100, 1, 32, make([]byte, 8)), ErrUnsupportedEncoding},
		{"12-bit", buildWAV(formatPCM, 44100, 1, 12, make([]byte, 4)), ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWriteMono_RoundTrip(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 2000)
	for i := range samples {
		samples[i] = float32(0.8 * math.Sin(2*math.Pi*440*float64(i)/44100))
	}
	samples[0], samples[1] = 1.5, -3 // clipped

	for _, bits := range []int{16, 24} {
		path := filepath.Join(t.TempDir(), "out.wav")

		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, WriteMono(f, 44100, bits, samples))
		require.NoError(t, f.Close())

		f, err = os.Open(path)
		require.NoError(t, err)

		src, err := Decoder{}.Decode(f)
		require.NoError(t, err)
		require.Equal(t, 44100, src.SampleRate())
		require.Equal(t, 1, src.Channels())

		got := readAll(t, src)
		require.NoError(t, f.Close())
		require.Len(t, got, len(samples))

		tol := 1.0 / float64(int(1)<<(bits-1))
		require.InDelta(t, 1, got[0], tol)
		require.InDelta(t, -1, got[1], tol)
		for i := 2; i < len(got); i++ {
			require.InDelta(t, samples[i], got[i], tol, "bits=%d sample %d", bits, i)
		}
	}
}

func TestWriteMono_Validation(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	require.NoError(t, err)
	defer f.Close()

	require.ErrorIs(t, WriteMono(f, 44100, 8, nil), ErrUnsupportedBitDepth)
	require.ErrorIs(t, WriteMono(f, 0, 16, nil), ErrUnsupportedWavLayout)
}
