package textenc

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDecodeUTF8Passthrough(t *testing.T) {
	raw := []byte("plain ascii and 中文 mixed")

	assert.Equal(t, "plain ascii and 中文 mixed", Decode(raw))
}

func TestDecodeGBK(t *testing.T) {
	// "你好" in GBK
	raw := []byte{0xC4, 0xE3, 0xBA, 0xC3}

	assert.Equal(t, "你好", Decode(raw))
}

func TestDecodeGBKLongerText(t *testing.T) {
	// "第一章 你好世界" in GBK, heading shape typical of uploads
	raw := []byte{
		0xB5, 0xDA, 0xD2, 0xBB, 0xD5, 0xC2, 0x20,
		0xC4, 0xE3, 0xBA, 0xC3, 0xCA, 0xC0, 0xBD, 0xE7,
	}

	assert.Equal(t, "第一章 你好世界", Decode(raw))
}

func TestDecodeInvalidBytesFallBackLossily(t *testing.T) {
	// 0xFF is not a lead byte in UTF-8, GBK or GB18030.
	raw := []byte{'a', 0xFF, 'b'}

	got := Decode(raw)

	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.ContainsRune(got, utf8.RuneError))
	assert.Equal(t, "a�b", got)
}

func TestDecodeEmpty(t *testing.T) {
	assert.Equal(t, "", Decode(nil))
	assert.Equal(t, "", Decode([]byte{}))
}
