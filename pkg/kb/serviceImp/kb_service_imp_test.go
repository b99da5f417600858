package serviceImp

import (
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"farmwise/entities"
	"farmwise/pkg/kb/repositoryImp"
)

func newSvc(t *testing.T) *Svc {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.KBDocument{}, &entities.KBChunk{}))
	return New(repositoryImp.New(db), nil) // no embedder: keyword search
}

func TestChunkTextSplitsOnNewlineAfterLimit(t *testing.T) {
	line := strings.Repeat("x", 99) + "\n"
	text := strings.Repeat(line, 25) // 2500 runes

	parts := chunkText(text, 1000)
	require.Len(t, parts, 3)
	assert.Len(t, parts[0], 1000)
	assert.Len(t, parts[1], 1000)
	assert.Len(t, parts[2], 500)
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestChunkTextShortInput(t *testing.T) {
	parts := chunkText("short note", 1000)
	require.Len(t, parts, 1)
	assert.Equal(t, "short note", parts[0])

	assert.Empty(t, chunkText("", 1000))
}

func TestUpsertAndKeywordSearch(t *testing.T) {
	s := newSvc(t)

	doc, n, err := s.UpsertDocument("Rice cultivation", "rice", "Paddy fields need standing water.\nBanana needs potassium.", "")
	require.NoError(t, err)
	require.NotZero(t, doc.DocID)
	assert.Equal(t, 1, n)

	_, _, err = s.UpsertDocument("Coconut care", "coconut", "Coconut palms tolerate salt spray.", "")
	require.NoError(t, err)

	out, err := s.Search("coconut", 3)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Text, "salt spray")

	out, err = s.Search("zebra", 3)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = s.Search("   ", 3)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSearchRespectsK(t *testing.T) {
	s := newSvc(t)
	for i := 0; i < 5; i++ {
		_, _, err := s.UpsertDocument("doc", "", "rice note number "+string(rune('a'+i)), "")
		require.NoError(t, err)
	}

	out, err := s.Search("rice", 2)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, cosine([]float32{1, 2}, []float32{1})) // length mismatch
	assert.Zero(t, cosine([]float32{0, 0}, []float32{1, 1}))
	assert.Zero(t, cosine(nil, nil))
}

func TestDocsMeta(t *testing.T) {
	s := newSvc(t)
	doc, _, err := s.UpsertDocument("Rice", "rice", "text", "https://example.org/rice")
	require.NoError(t, err)

	m, err := s.DocsMeta([]uint{doc.DocID})
	require.NoError(t, err)
	require.Contains(t, m, doc.DocID)
	assert.Equal(t, "https://example.org/rice", m[doc.DocID].SourceURL)

	empty, err := s.DocsMeta(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
