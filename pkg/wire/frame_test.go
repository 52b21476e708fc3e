package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	testCases := []struct {
		name   string
		frame  Frame
		expect string
		err    error
	}{
		{"simple", Frame{"X1", 50}, "X1:50\n", nil},
		{"zero", Frame{"LED1", 0}, "LED1:0\n", nil},
		{"negative", Frame{"MOT1", -255}, "MOT1:-255\n", nil},
		{"max name", Frame{"ABCDEFG_", 9}, "ABCDEFG_:9\n", nil},
		{"empty name", Frame{"", 1}, "", ErrBadName},
		{"name too long", Frame{"ABCDEFGHI", 1}, "", ErrBadName},
		{"name with delimiter", Frame{"A:B", 1}, "", ErrBadName},
		{"name with space", Frame{"A B", 1}, "", ErrBadName},
		{"at size limit", Frame{"ABCDEFG_", 123456}, "ABCDEFG_:123456\n", nil},
		{"value too wide", Frame{"ABCDEFG_", 1234567}, "", ErrFrameTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.frame.Bytes()
			if tc.err != nil {
				require.Equal(t, tc.err, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expect, string(b))
			require.True(t, len(b) <= MaxFrameSize)
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Encode("SRV1", 90)
	require.NoError(t, err)
	b, err := Encode("SRV1", 90)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestValidName(t *testing.T) {
	require.True(t, ValidName("X1"))
	require.True(t, ValidName("led_a"))
	require.False(t, ValidName(""))
	require.False(t, ValidName("toolongname"))
	require.False(t, ValidName("a-b"))
	require.False(t, ValidName("a\nb"))
}
