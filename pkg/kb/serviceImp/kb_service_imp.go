package serviceImp

import (
	"math"
	"sort"
	"strings"

	"farmwise/entities"
	"farmwise/pkg/kb/embedder"
	"farmwise/pkg/kb/repository"
)

type Svc struct {
	r   repository.KBRepository
	emb *embedder.Client
}

func New(r repository.KBRepository, e *embedder.Client) *Svc { return &Svc{r: r, emb: e} }

func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = 1000
	}
	var parts []string
	cur := strings.Builder{}
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			parts = append(parts, cur.String())
			cur.Reset()
			count = 0
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func (s *Svc) UpsertDocument(title, tags, text, sourceURL string) (*entities.KBDocument, int, error) {
	d := &entities.KBDocument{Title: title, Tags: tags, SourceURL: sourceURL}
	if err := s.r.CreateDoc(d); err != nil {
		return nil, 0, err
	}

	chs := chunkText(text, 1000)
	if len(chs) == 0 {
		return d, 0, nil
	}

	var embs [][]float32
	if s.emb != nil {
		var err error
		embs, err = s.emb.Embed(chs)
		if err != nil {
			// degrade gracefully: keep chunks with empty embeddings
			embs = nil
		}
	}

	rows := make([]entities.KBChunk, len(chs))
	for i := range chs {
		var embBytes []byte
		if embs != nil && i < len(embs) {
			embBytes = embedder.FloatsToBytes(embs[i])
		}
		rows[i] = entities.KBChunk{DocID: d.DocID, Ord: i, Text: chs[i], Embedding: embBytes}
	}
	if err := s.r.BulkInsertChunks(rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

func (s *Svc) Search(query string, k int) ([]entities.KBChunk, error) {
	q := strings.TrimSpace(query)
	if q == "" || k <= 0 {
		return nil, nil
	}

	var qvec []float32
	if s.emb != nil {
		if vec, err := s.emb.Embed([]string{q}); err == nil && len(vec) > 0 {
			qvec = vec[0]
		}
	}

	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	type scored struct {
		ch entities.KBChunk
		sc float64
	}
	list := make([]scored, 0, len(chunks))

	if len(qvec) > 0 {
		for _, ch := range chunks {
			sc := cosine(qvec, embedder.BytesToFloats(ch.Embedding))
			if sc > 0 {
				list = append(list, scored{ch: ch, sc: sc})
			}
		}
	} else {
		// keyword fallback
		qlow := strings.ToLower(q)
		for _, ch := range chunks {
			if strings.Contains(strings.ToLower(ch.Text), qlow) {
				list = append(list, scored{ch: ch, sc: 1})
			}
		}
	}
	if len(list) == 0 {
		return nil, nil
	}

	sort.Slice(list, func(i, j int) bool { return list[i].sc > list[j].sc })
	if k > len(list) {
		k = len(list)
	}
	out := make([]entities.KBChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, list[i].ch)
	}
	return out, nil
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		v, w := float64(a[i]), float64(b[i])
		dot += v * w
		na += v * v
		nb += w * w
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func (s *Svc) DocsMeta(ids []uint) (map[uint]entities.KBDocument, error) {
	return s.r.DocsByIDs(ids)
}
