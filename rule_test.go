package filmcard_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/filmcard"
	"github.com/fwojciec/filmcard/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinOwnText(t *testing.T) {
	t.Parallel()

	t.Run("joins non-empty node texts", func(t *testing.T) {
		t.Parallel()

		nodes := []filmcard.Node{textNode("dream"), textNode(""), textNode("heist")}

		got, err := filmcard.JoinOwnText(" | ")(nodes)

		require.NoError(t, err)
		assert.Equal(t, "dream | heist", got)
	})

	t.Run("fails when no node has text", func(t *testing.T) {
		t.Parallel()

		_, err := filmcard.JoinOwnText(" | ")([]filmcard.Node{textNode("")})

		assert.Error(t, err)
	})
}

func TestAttr(t *testing.T) {
	t.Parallel()

	node := &mock.Node{
		AttrFn: func(name string) (string, bool) {
			if name == "datetime" {
				return " PT148M ", true
			}
			return "", false
		},
	}

	got, err := filmcard.Attr("datetime")([]filmcard.Node{node})
	require.NoError(t, err)
	assert.Equal(t, "PT148M", got)

	_, err = filmcard.Attr("content")([]filmcard.Node{node})
	assert.Error(t, err)
}

func TestJSONLD(t *testing.T) {
	t.Parallel()

	ld := textNode(`{
		"@type": "Movie",
		"name": "Inception",
		"genre": ["Action", "Adventure", "Sci-Fi"],
		"aggregateRating": {"ratingValue": 8.8, "ratingCount": 2600000},
		"director": [{"@type": "Person", "name": "Christopher Nolan"}]
	}`)

	tests := []struct {
		name string
		path []string
		want string
	}{
		{"string value", []string{"name"}, "Inception"},
		{"string array", []string{"genre"}, "Action, Adventure, Sci-Fi"},
		{"nested number", []string{"aggregateRating", "ratingValue"}, "8.8"},
		{"large number", []string{"aggregateRating", "ratingCount"}, "2600000"},
		{"array of objects", []string{"director", "name"}, "Christopher Nolan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := filmcard.JSONLD(tt.path...)([]filmcard.Node{ld})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing key fails", func(t *testing.T) {
		t.Parallel()

		_, err := filmcard.JSONLD("creator")([]filmcard.Node{ld})

		assert.Error(t, err)
	})

	t.Run("invalid json fails", func(t *testing.T) {
		t.Parallel()

		_, err := filmcard.JSONLD("name")([]filmcard.Node{textNode("{not json")})

		assert.Error(t, err)
	})
}

func TestTransformError(t *testing.T) {
	t.Parallel()

	inner := errors.New("no children")
	err := &filmcard.TransformError{Field: filmcard.FieldCreator, Selector: "div.creator", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "creator")
	assert.Contains(t, err.Error(), "div.creator")
}
