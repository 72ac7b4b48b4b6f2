package zim

import "fmt"

// Namespace partitions directory entries by kind. The alphabet is closed;
// any byte outside it is a parse error.
type Namespace byte

const (
	NamespaceLayout              Namespace = '-'
	NamespaceArticles            Namespace = 'A'
	NamespaceArticleMetadata     Namespace = 'B'
	NamespaceImagesFile          Namespace = 'I'
	NamespaceImagesText          Namespace = 'J'
	NamespaceMetadata            Namespace = 'M'
	NamespaceCategoriesText      Namespace = 'U'
	NamespaceCategoriesArticleList Namespace = 'V'
	NamespaceCategoriesArticle   Namespace = 'W'
	NamespaceFulltextIndex       Namespace = 'X'
)

func (n Namespace) valid() bool {
	switch n {
	case NamespaceLayout, NamespaceArticles, NamespaceArticleMetadata,
		NamespaceImagesFile, NamespaceImagesText, NamespaceMetadata,
		NamespaceCategoriesText, NamespaceCategoriesArticleList,
		NamespaceCategoriesArticle, NamespaceFulltextIndex:
		return true
	default:
		return false
	}
}

// Byte returns the ASCII byte this namespace is encoded as, which is also
// the directory character the filesystem writer uses.
func (n Namespace) Byte() byte {
	return byte(n)
}

func (n Namespace) String() string {
	return fmt.Sprintf("%c", byte(n))
}

func parseNamespace(b byte) (Namespace, error) {
	n := Namespace(b)
	if !n.valid() {
		return 0, fmtErr(InvalidNamespace, fmt.Sprintf("byte 0x%02x", b))
	}
	return n, nil
}
