package strength

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLeet(t *testing.T) {
	assert.Equal(t, "password", NormalizeLeet("P@ssw0rd"))
	assert.Equal(t, "iotessbs", NormalizeLeet("10735$8s"))
	assert.Equal(t, "ta", NormalizeLeet("74"))
	assert.Equal(t, "zebra!", NormalizeLeet("Zebra!"))
}

func TestHasTripleRepeat(t *testing.T) {
	assert.True(t, hasTripleRepeat("aaa"))
	assert.True(t, hasTripleRepeat("xx!!!yy"))
	assert.True(t, hasTripleRepeat("ééé"))
	assert.False(t, hasTripleRepeat("aabbaa"))
	assert.False(t, hasTripleRepeat(""))
	// distinct invalid bytes are distinct characters
	assert.False(t, hasTripleRepeat("\xff\xfe\xfd"))
	assert.True(t, hasTripleRepeat("\xff\xff\xff"))
}

func TestShannonEntropy(t *testing.T) {
	assert.Equal(t, 0.0, ShannonEntropy(""))
	assert.Equal(t, 0.0, ShannonEntropy("aaaa"))
	assert.InDelta(t, 1.0, ShannonEntropy("abab"), 1e-9)
	assert.InDelta(t, 2.0, ShannonEntropy("abcd"), 1e-9)
	assert.InDelta(t, math.Log2(17), ShannonEntropy("Kq7Vm2Xr9Wt4Zp8Ny"), 1e-9)
	// runes, not bytes
	assert.InDelta(t, 1.0, ShannonEntropy("密码"), 1e-9)
	assert.InDelta(t, 2.0, ShannonEntropy("\xff\xfe\xfd\xfc"), 1e-9)
}

func TestClassify(t *testing.T) {
	c := classify("aB3 ")
	assert.Equal(t, charClasses{upper: true, lower: true, digit: true, symbol: true}, c)
	assert.Equal(t, charClasses{symbol: true}, classify("ñ"))
}
