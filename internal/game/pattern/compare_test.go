package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecognize(t *testing.T, ranks string) Pattern {
	t.Helper()
	p, ok := Recognize(mk(ranks))
	require.True(t, ok, ranks)
	return p
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     string
		expected Ordering
	}{
		{"Pair A beats pair K", "AA", "KK", Greater},
		{"Pair K loses to pair A", "KK", "AA", Less},
		{"Equal pairs", "QQ", "QQ", Equal},
		{"Single 2 beats single A", "2", "A", Greater},
		{"Single vs pair incomparable", "2", "KK", Incomparable},
		{"Straight vs consecutive pairs incomparable", "34567", "334455", Incomparable},
		{"Higher straight wins", "45678", "34567", Greater},
		{"Higher consecutive pairs win", "445566", "334455", Greater},
		{"Triple with pair compares by triple", "888JJ", "777AA", Greater},
		{"Bomb beats single", "4444", "W", Greater},
		{"Bomb beats straight", "4444", "TJQKA", Greater},
		{"Straight loses to bomb", "TJQKA", "4444", Less},
		{"Bigger bomb beats higher ranked smaller bomb", "33333", "AAAA", Greater},
		{"Same size bomb compares by rank", "8888", "7777", Greater},
		{"Equal bombs", "9999", "9999", Equal},
		{"Rocket beats eight card bomb", "wW", "AAAAAAAA", Greater},
		{"Bomb loses to rocket", "22222222", "wW", Less},
		{"Rocket equals rocket", "wW", "wW", Equal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := mustRecognize(t, tt.a)
			b := mustRecognize(t, tt.b)
			assert.Equal(t, tt.expected, Compare(a, b))
		})
	}
}

func TestCompareEmptyPatterns(t *testing.T) {
	t.Parallel()

	valid := mustRecognize(t, "55")
	assert.Equal(t, Incomparable, Compare(Pattern{}, valid))
	assert.Equal(t, Incomparable, Compare(valid, Pattern{}))
}

func TestCanBeat(t *testing.T) {
	t.Parallel()

	assert.True(t, CanBeat(mustRecognize(t, "AA"), mustRecognize(t, "KK")))
	assert.False(t, CanBeat(mustRecognize(t, "KK"), mustRecognize(t, "AA")))
	// 同点数压不过
	assert.False(t, CanBeat(mustRecognize(t, "KK"), mustRecognize(t, "KK")))
	// 不可比较也压不过
	assert.False(t, CanBeat(mustRecognize(t, "34567"), mustRecognize(t, "334455")))
}
