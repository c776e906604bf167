package sqlbuild

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/domain"
)

func TestPartialUpdate(t *testing.T) {
	t.Run("maps aliased columns and keeps order", func(t *testing.T) {
		set, err := PartialUpdate(
			[]Field{{Name: "firstName", Value: "a"}, {Name: "age", Value: 32}},
			Columns{"firstName": "first_name"},
		)
		require.NoError(t, err)
		assert.Equal(t, `"first_name"=$1, "age"=$2`, set.Cols)
		assert.Equal(t, []any{"a", 32}, set.Values)
		assert.Equal(t, "$3", set.NextPlaceholder())
	})

	t.Run("single field without alias", func(t *testing.T) {
		set, err := PartialUpdate([]Field{{Name: "title", Value: "dev"}}, nil)
		require.NoError(t, err)
		assert.Equal(t, `"title"=$1`, set.Cols)
		assert.Equal(t, []any{"dev"}, set.Values)
	})

	t.Run("nil values are bound as given", func(t *testing.T) {
		var salary *int
		set, err := PartialUpdate([]Field{{Name: "salary", Value: salary}}, nil)
		require.NoError(t, err)
		require.Len(t, set.Values, 1)
		assert.Nil(t, set.Values[0])
	})

	t.Run("no data", func(t *testing.T) {
		_, err := PartialUpdate(nil, Columns{"firstName": "first_name"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrBadRequest))
		assert.EqualError(t, err, "No data")
	})
}

func TestUpdate(t *testing.T) {
	t.Run("sets fields in order with numbered placeholders", func(t *testing.T) {
		var equity *string
		q, err := Update("users",
			[]Field{{Name: "firstName", Value: "a"}, {Name: "equity", Value: equity}},
			Columns{"firstName": "first_name"},
		)
		require.NoError(t, err)
		q.Where("id = ?", 7)
		defer q.Close()

		assert.Regexp(t, `UPDATE users SET "first_name"\s*=\s*\$1, "equity"\s*=\s*\$2 WHERE id = \$3`, q.String())
		assert.Equal(t, []any{"a", equity, 7}, q.Args())
	})

	t.Run("no data", func(t *testing.T) {
		_, err := Update("users", nil, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrBadRequest))
		assert.EqualError(t, err, "No data")
	})
}
