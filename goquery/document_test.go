package goquery_test

import (
	"errors"
	"testing"
	"testing/iotest"

	"github.com/fwojciec/filmcard"
	"github.com/fwojciec/filmcard/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("parses HTML into a queryable document", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().ParseString(`<html><body><h1>Inception</h1></body></html>`)

		require.NoError(t, err)
		nodes := doc.Query("h1")
		require.Len(t, nodes, 1)
		assert.Equal(t, "Inception", nodes[0].Text())
	})

	t.Run("returns EDOCUMENT for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser().ParseString("  \n ")

		require.Error(t, err)
		assert.Equal(t, filmcard.EDOCUMENT, filmcard.ErrorCode(err))
	})

	t.Run("returns EDOCUMENT when the reader fails", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser().Parse(iotest.ErrReader(errors.New("connection reset")))

		require.Error(t, err)
		assert.Equal(t, filmcard.EDOCUMENT, filmcard.ErrorCode(err))
		assert.Contains(t, filmcard.ErrorMessage(err), "connection reset")
	})
}

func TestDocument_Query(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<body>
<div class="txt-block">
	<h4 class="inline">Language:</h4>
	<a href="/language/en">English</a>,
	<a href="/language/ja">Japanese</a>
</div>
<div class="txt-block">
	<h4 class="inline">Runtime:</h4>
	<time datetime="PT148M">148 min</time>
</div>
<span itemprop="keywords">dream</span>
<span itemprop="keywords">heist</span>
</body>
</html>`

	doc, err := goquery.NewParser().ParseString(html)
	require.NoError(t, err)

	t.Run("returns matches in document order", func(t *testing.T) {
		t.Parallel()

		nodes := doc.Query(`span[itemprop="keywords"]`)

		require.Len(t, nodes, 2)
		assert.Equal(t, "dream", nodes[0].Text())
		assert.Equal(t, "heist", nodes[1].Text())
	})

	t.Run("returns empty for no match", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, doc.Query("table.cast"))
	})

	t.Run("returns empty for an invalid selector", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, doc.Query("div[[["))
	})

	t.Run("matches label blocks by heading text", func(t *testing.T) {
		t.Parallel()

		nodes := doc.Query(`div:haschild(h4:containsOwn("Language:"))`)

		require.Len(t, nodes, 1)
		assert.Equal(t, "Language: English, Japanese", nodes[0].FullText())
	})

	t.Run("Text excludes descendant elements", func(t *testing.T) {
		t.Parallel()

		nodes := doc.Query(`div:haschild(h4:containsOwn("Language:"))`)

		require.Len(t, nodes, 1)
		assert.Equal(t, ",", nodes[0].Text())
	})

	t.Run("exposes attributes", func(t *testing.T) {
		t.Parallel()

		nodes := doc.Query("time")

		require.Len(t, nodes, 1)
		v, ok := nodes[0].Attr("datetime")
		assert.True(t, ok)
		assert.Equal(t, "PT148M", v)
		_, ok = nodes[0].Attr("missing")
		assert.False(t, ok)
	})
}

func TestNode_FullTextCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewParser().ParseString("<p>  A   thief\n\twho <b>steals</b>   secrets </p>")
	require.NoError(t, err)

	nodes := doc.Query("p")

	require.Len(t, nodes, 1)
	assert.Equal(t, "A thief who steals secrets", nodes[0].FullText())
	assert.Equal(t, "A   thief\n\twho    secrets", nodes[0].Text())
}
