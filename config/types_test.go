package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngineDescription(t *testing.T) {
	require.Contains(t, GetEngineDescription("RSC"), "rsc.io/pdf")
	require.Equal(t, "unknown engine", GetEngineDescription("poppler"))
}

func TestPageWindow(t *testing.T) {
	require.NoError(t, PageWindow(0, 0))
	require.NoError(t, PageWindow(2, 2))
	require.NoError(t, PageWindow(5, 0))
	require.Error(t, PageWindow(3, 2))
	require.Error(t, PageWindow(-1, 0))
}

func TestGetPageWindowDescription(t *testing.T) {
	require.Equal(t, "all pages", GetPageWindowDescription(0, 0))
	require.Equal(t, "pages 3-end", GetPageWindowDescription(3, 0))
	require.Equal(t, "pages 1-4", GetPageWindowDescription(0, 4))
	require.Equal(t, "pages 2-5", GetPageWindowDescription(2, 5))
}
