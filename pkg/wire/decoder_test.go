package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecoderFeed(t *testing.T) {
	testCases := []struct {
		name   string
		chunks []string
		expect []Frame
	}{
		{
			name:   "single frame",
			chunks: []string{"X1:50\n"},
			expect: []Frame{{"X1", 50}},
		},
		{
			name:   "multiple frames one chunk",
			chunks: []string{"LED1:1\nSRV1:90\nMOT1:-10\n"},
			expect: []Frame{{"LED1", 1}, {"SRV1", 90}, {"MOT1", -10}},
		},
		{
			name:   "frame split across chunks",
			chunks: []string{"SR", "V1:", "9", "0\n"},
			expect: []Frame{{"SRV1", 90}},
		},
		{
			name:   "split negative value",
			chunks: []string{"MOT1:-", "255\n"},
			expect: []Frame{{"MOT1", -255}},
		},
		{
			name:   "crlf tolerated",
			chunks: []string{"X1:1\r\nX1:2\r\n"},
			expect: []Frame{{"X1", 1}, {"X1", 2}},
		},
		{
			name:   "noise before frame",
			chunks: []string{"\x00\xff garbage\nX1:3\n"},
			expect: []Frame{{"X1", 3}},
		},
		{
			name:   "missing value resyncs",
			chunks: []string{"X1:\nX1:4\n"},
			expect: []Frame{{"X1", 4}},
		},
		{
			name:   "missing delimiter resyncs",
			chunks: []string{"X15\nX1:5\n"},
			expect: []Frame{{"X1", 5}},
		},
		{
			name:   "bad value byte resyncs",
			chunks: []string{"X1:1a\nX1:6\n"},
			expect: []Frame{{"X1", 6}},
		},
		{
			name:   "name too long resyncs",
			chunks: []string{"ABCDEFGHI:1\nX1:7\n"},
			expect: []Frame{{"X1", 7}},
		},
		{
			name:   "oversized frame discarded without corrupting next",
			chunks: []string{"X1:123456789012345678\nX1:8\n"},
			expect: []Frame{{"X1", 8}},
		},
		{
			name:   "double sign resyncs",
			chunks: []string{"X1:--1\nX1:9\n"},
			expect: []Frame{{"X1", 9}},
		},
		{
			name:   "trailing partial retained",
			chunks: []string{"X1:10\nX1:1"},
			expect: []Frame{{"X1", 10}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var dec Decoder
			var got []Frame
			for _, chunk := range tc.chunks {
				got = append(got, dec.Feed([]byte(chunk))...)
			}
			require.Equal(t, tc.expect, got)
		})
	}
}

func TestDecoderByteAtATime(t *testing.T) {
	var dec Decoder
	input := "LED1:250\n"
	for i := 0; i < len(input)-1; i++ {
		_, ok := dec.Parse(input[i])
		require.Falsef(t, ok, "unexpected frame at byte %d", i)
	}
	f, ok := dec.Parse(input[len(input)-1])
	require.True(t, ok)
	require.Equal(t, Frame{"LED1", 250}, f)
}

func TestDecoderRoundTrip(t *testing.T) {
	frames := []Frame{{"X1", 0}, {"SRV1", 180}, {"MOT1", -255}, {"BLINK", 500}}
	var dec Decoder
	for _, f := range frames {
		b, err := f.Bytes()
		require.NoError(t, err)
		got := dec.Feed(b)
		require.Equal(t, []Frame{f}, got)
	}
}
