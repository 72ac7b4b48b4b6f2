package zim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNamespaceAccepts(t *testing.T) {
	for _, b := range []byte{'-', 'A', 'B', 'I', 'J', 'M', 'U', 'V', 'W', 'X'} {
		n, err := parseNamespace(b)
		require.NoError(t, err)
		require.Equal(t, b, n.Byte())
	}
}

func TestParseNamespaceRejectsUnknown(t *testing.T) {
	_, err := parseNamespace('Z')
	require.Error(t, err)

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, InvalidNamespace, fe.Kind)
}

func TestNamespaceString(t *testing.T) {
	require.Equal(t, "A", NamespaceArticles.String())
}
