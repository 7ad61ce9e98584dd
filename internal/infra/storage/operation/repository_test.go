package operation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectByID(t *testing.T) {
	selectPrefix := "SELECT " + strings.Join(columns, ", ") + " FROM customer_operations WHERE id = $1"

	query, args, err := selectByID(7, false).ToSql()
	require.NoError(t, err)
	assert.Equal(t, selectPrefix, query)
	assert.Equal(t, []interface{}{int64(7)}, args)

	query, _, err = selectByID(7, true).ToSql()
	require.NoError(t, err)
	assert.Equal(t, selectPrefix+" FOR UPDATE", query)
}
