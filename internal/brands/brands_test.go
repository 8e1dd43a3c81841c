package brands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDictionary(t *testing.T) {
	d := Default()

	assert.Contains(t, d.SerpAPI, "UNIQLO")
	assert.Contains(t, d.Rakuten, "無印良品")
	assert.Greater(t, len(d.Rakuten), len(d.SerpAPI))
}

func TestMatch_CaseInsensitive(t *testing.T) {
	brand, ok := Match("uniqlo ウルトラライトダウン", []string{"ZARA", "UNIQLO"})

	assert.True(t, ok)
	assert.Equal(t, "UNIQLO", brand)
}

func TestMatch_FirstInListOrderWins(t *testing.T) {
	brand, ok := Match("GAP x ZARA collab", []string{"ZARA", "GAP"})

	assert.True(t, ok)
	assert.Equal(t, "ZARA", brand)
}

func TestMatch_NoMatch(t *testing.T) {
	_, ok := Match("plain shirt", Default().SerpAPI)

	assert.False(t, ok)
}

func TestBracketed(t *testing.T) {
	brand, ok := Bracketed("【SHIPS any】オックスフォードシャツ【送料無料】")
	require.True(t, ok)
	assert.Equal(t, "SHIPS any", brand)

	_, ok = Bracketed("no brackets here")
	assert.False(t, ok)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load([]byte("serpapi: [unterminated"))

	assert.Error(t, err)
}
