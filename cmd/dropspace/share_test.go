package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshmelev/dropspace/internal/common"
	"github.com/eshmelev/dropspace/internal/models"
)

func TestDescribeShareNilRecord(t *testing.T) {
	_, err := describeShare(nil)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDescribeSharePublic(t *testing.T) {
	out, err := describeShare(&models.DocumentRecord{
		ID:         "doc1",
		Public:     true,
		ViewURL:    "https://files.test/view/doc1",
		AccessCode: "code12345678",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "doc1 is public")
	assert.Contains(t, out, "https://files.test/view/doc1")
	assert.Contains(t, out, "code12345678")
}

func TestDescribeSharePrivate(t *testing.T) {
	out, err := describeShare(&models.DocumentRecord{ID: "doc1"})
	require.NoError(t, err)
	assert.Equal(t, "doc1 is private\n", out)
}

func TestShareRejectsEmptyID(t *testing.T) {
	err := shareCmd.RunE(shareCmd, []string{""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document id required")
}
