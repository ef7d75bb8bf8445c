package index

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNamespaceName(t *testing.T) {
	ownerId := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	articleId := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	got := NamespaceName(ownerId, articleId)

	assert.Equal(t, "11111111-1111-1111-1111-111111111111:22222222-2222-2222-2222-222222222222", got)
}

func TestNamespaceNameIsDirectional(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	// Owner and article are not interchangeable; swapping them must yield
	// a different namespace.
	assert.NotEqual(t, NamespaceName(a, b), NamespaceName(b, a))
}
