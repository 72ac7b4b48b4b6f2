package zim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetMimetypeResolvesReservedKinds(t *testing.T) {
	a := &Archive{mimeTable: []string{"text/html"}}

	kind, ok := a.getMimetype(mimeIDRedirect)
	require.True(t, ok)
	require.True(t, kind.Redirect)
	require.False(t, kind.IsContent())

	kind, ok = a.getMimetype(mimeIDLinkTarget)
	require.True(t, ok)
	require.True(t, kind.LinkTarget)

	kind, ok = a.getMimetype(mimeIDDeletedEntry)
	require.True(t, ok)
	require.True(t, kind.DeletedEntry)

	kind, ok = a.getMimetype(0)
	require.True(t, ok)
	require.Equal(t, "text/html", kind.Type)
	require.True(t, kind.IsContent())

	_, ok = a.getMimetype(1)
	require.False(t, ok)
}

func TestExtensionForMimeType(t *testing.T) {
	ext, ok := ExtensionForMimeType("text/html")
	require.True(t, ok)
	require.Equal(t, "html", ext)

	_, ok = ExtensionForMimeType("application/octet-stream")
	require.False(t, ok)
}
