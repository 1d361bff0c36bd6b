package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users_ids.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadUserIDs(t *testing.T) {
	path := writeCSV(t, "user_id\n1\n2\n3\n")

	ids, err := ReadUserIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestReadUserIDsAltColumnName(t *testing.T) {
	path := writeCSV(t, "name,UserID\nalice,10\nbob,20\n")

	ids, err := ReadUserIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, ids)
}

func TestReadUserIDsSkipsBlankCells(t *testing.T) {
	path := writeCSV(t, "user_id\n1\n\n2\n")

	ids, err := ReadUserIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids)
}

func TestReadUserIDsMissingFile(t *testing.T) {
	_, err := ReadUserIDs(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadUserIDsMissingColumn(t *testing.T) {
	path := writeCSV(t, "name\nalice\n")

	_, err := ReadUserIDs(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_id")
}

func TestReadUserIDsMalformedValue(t *testing.T) {
	path := writeCSV(t, "user_id\n1\nabc\n")

	_, err := ReadUserIDs(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user ID")
}

func TestReadUserIDsEmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	ids, err := ReadUserIDs(path)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestReadUserIDsHeaderOnly(t *testing.T) {
	path := writeCSV(t, "user_id\n")

	ids, err := ReadUserIDs(path)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
