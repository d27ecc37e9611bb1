package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWordCSV(t *testing.T) {
	csv := strings.Join([]string{
		"character,pinyin,meaning,hsk_level,lesson_id,audio_url,example_sentence",
		"你好,nǐ hǎo,hello,1,3,https://cdn.example.com/nihao.mp3,你好！",
		"谢谢,xièxie,thanks,1",
	}, "\n")

	words, err := parseWordCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, words, 2)

	assert.Equal(t, "你好", words[0].Character)
	assert.Equal(t, "nǐ hǎo", words[0].Pinyin)
	assert.Equal(t, "hello", words[0].Meaning)
	assert.Equal(t, 1, words[0].HSKLevel)
	require.NotNil(t, words[0].LessonID)
	assert.Equal(t, int64(3), *words[0].LessonID)
	assert.Equal(t, "https://cdn.example.com/nihao.mp3", words[0].AudioURL)

	assert.Equal(t, "谢谢", words[1].Character)
	assert.Nil(t, words[1].LessonID)
}

func TestParseWordCSVWithoutHeader(t *testing.T) {
	words, err := parseWordCSV(strings.NewReader("好,hǎo,good,2\n"))
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "好", words[0].Character)
	assert.Equal(t, 2, words[0].HSKLevel)
}

func TestParseWordCSVRejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"too few columns":  "好,hǎo,good\n",
		"bad hsk level":    "好,hǎo,good,nine\n",
		"hsk out of range": "好,hǎo,good,7\n",
		"empty character":  ",hǎo,good,1\n",
		"bad lesson id":    "好,hǎo,good,1,abc\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseWordCSV(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}
