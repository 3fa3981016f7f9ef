package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindFlagsHighEntropyBase64(t *testing.T) {
	a := New()
	buf := []byte("token: kX9z2LpQ7rT4mN8vB1cF6hY3jW0sA5dE")
	found := a.Find(buf)
	assert.Contains(t, found, "kX9z2LpQ7rT4mN8vB1cF6hY3jW0sA5dE")
}

func TestFindIgnoresShortTokens(t *testing.T) {
	a := New()
	found := a.Find([]byte("short abc123"))
	assert.Empty(t, found)
}

func TestFindIgnoresLowEntropyRepetition(t *testing.T) {
	a := New()
	found := a.Find([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	assert.Empty(t, found)
}

func TestFindEmptyBuffer(t *testing.T) {
	a := New()
	assert.Empty(t, a.Find(nil))
}

func TestShannonEntropyUniformIsHigherThanRepeated(t *testing.T) {
	uniform := shannonEntropy("abcdefgh")
	repeated := shannonEntropy("aaaaaaaa")
	assert.Greater(t, uniform, repeated)
}
