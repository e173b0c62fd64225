// file: internal/repositories/filter_test.go
package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	t.Run("empty filter produces no clause", func(t *testing.T) {
		f := NewFilter()

		assert.True(t, f.Empty())
		sql, args := f.SQL()
		assert.Empty(t, sql)
		assert.Nil(t, args)
	})

	t.Run("single condition binds one placeholder", func(t *testing.T) {
		f := NewFilter().Where("role = %s", "admin")

		sql, args := f.SQL()
		assert.Equal(t, " WHERE role = $1", sql)
		assert.Equal(t, []interface{}{"admin"}, args)
	})

	t.Run("conditions join with AND in placeholder order", func(t *testing.T) {
		f := NewFilter().
			Where("role = %s", "employee").
			Where("department = %s", "Engineering")

		sql, args := f.SQL()
		assert.Equal(t, " WHERE role = $1 AND department = $2", sql)
		assert.Equal(t, []interface{}{"employee", "Engineering"}, args)
	})

	t.Run("one condition can bind several values", func(t *testing.T) {
		f := NewFilter().
			Where("(first_name ILIKE %s OR last_name ILIKE %s)", "%jo%", "%jo%")

		sql, args := f.SQL()
		assert.Equal(t, " WHERE (first_name ILIKE $1 OR last_name ILIKE $2)", sql)
		assert.Len(t, args, 2)
	})

	t.Run("next placeholder continues after bound arguments", func(t *testing.T) {
		f := NewFilter().Where("is_active = %s", true)

		assert.Equal(t, "$2", f.NextPlaceholder(1))
		assert.Equal(t, "$3", f.NextPlaceholder(2))
	})

	t.Run("args appends extras after the bound ones", func(t *testing.T) {
		f := NewFilter().Where("role = %s", "admin")

		args := f.Args(25, 0)
		assert.Equal(t, []interface{}{"admin", 25, 0}, args)
	})

	t.Run("placeholder numbering on an empty filter starts at one", func(t *testing.T) {
		f := NewFilter()

		assert.Equal(t, "$1", f.NextPlaceholder(1))
		assert.Equal(t, []interface{}{50}, f.Args(50))
	})
}
