package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellAccessors(t *testing.T) {
	row := []interface{}{"abc", 12.5, "7.25", nil, true}

	assert.Equal(t, "abc", asString(row, 0))
	assert.Equal(t, "12.5", asString(row, 1))
	assert.Equal(t, "", asString(row, 3))
	assert.Equal(t, "", asString(row, 4))
	assert.Equal(t, "", asString(row, 99))

	assert.Equal(t, 12.5, asFloat(row, 1))
	assert.Equal(t, 7.25, asFloat(row, 2))
	assert.Equal(t, 0.0, asFloat(row, 0))
	assert.Equal(t, 0.0, asFloat(row, 99))

	assert.Equal(t, 12, asInt(row, 1))
}
