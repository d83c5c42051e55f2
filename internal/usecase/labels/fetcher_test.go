package labels_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tk-labels/internal/domain/entity"
	"tk-labels/internal/infra/hub"
	"tk-labels/internal/usecase/labels"
)

/* ──────────────────────────────── stub ──────────────────────────────── */

type stubSource struct {
	mu       sync.Mutex
	notices  []entity.Notice
	err      error
	requests []string
}

func (s *stubSource) ProjectNotices(_ context.Context, requestURL string) ([]entity.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, requestURL)
	if s.err != nil {
		return nil, s.err
	}
	return s.notices, nil
}

func (s *stubSource) lastRequest() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return ""
	}
	return s.requests[len(s.requests)-1]
}

func nodeWithProject(values ...string) *entity.Node {
	items := make([]entity.FieldItem, 0, len(values))
	for _, v := range values {
		items = append(items, entity.FieldItem{Value: v})
	}
	return &entity.Node{ID: 1, Type: "article", Fields: entity.Fields{entity.ProjectIDField: items}}
}

func imgAttrs(t *testing.T, markup string) (title, src string) {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	img := doc.Find("img.tk-labels")
	require.Equal(t, 1, img.Length(), "markup %q", markup)
	title, _ = img.Attr("title")
	src, _ = img.Attr("src")
	return title, src
}

/* ──────────────────────────────── ResolveProjectID ──────────────────────────────── */

func TestResolveProjectID_Absent(t *testing.T) {
	tests := []struct {
		name string
		node *entity.Node
	}{
		{name: "nil node", node: nil},
		{name: "no fields", node: &entity.Node{ID: 1}},
		{name: "missing field", node: &entity.Node{ID: 1, Fields: entity.Fields{"field_tags": {{Value: "x"}}}}},
		{name: "field without values", node: &entity.Node{ID: 1, Fields: entity.Fields{entity.ProjectIDField: {}}}},
		{name: "blank value", node: nodeWithProject("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := labels.ResolveProjectID(tt.node)
			assert.False(t, ok)
			assert.Empty(t, id)
		})
	}
}

func TestResolveProjectID_FirstValue(t *testing.T) {
	id, ok := labels.ResolveProjectID(nodeWithProject("42", "43"))
	assert.True(t, ok)
	assert.Equal(t, "42", id)
}

/* ──────────────────────────────── FetchLabels ──────────────────────────────── */

func TestLabelFetcher_FetchLabels_RendersEveryNotice(t *testing.T) {
	source := &stubSource{notices: []entity.Notice{
		{DefaultText: "TK Attribution", ImgURL: "https://hub.example/img/1.png"},
		{DefaultText: `Non-Verified "TK"`, ImgURL: "https://hub.example/img/2.png?v=1&s=2"},
		{DefaultText: "BC Provenance", ImgURL: "https://hub.example/img/3.png"},
	}}
	f := labels.NewLabelFetcher(source, entity.DefaultBlockConfig())

	res := f.FetchLabels(context.Background(), "https://hub.example/api/v1", "42")
	require.True(t, res.OK())
	require.Len(t, res.Descriptors, len(source.notices))

	for i, n := range source.notices {
		want := `<img class="tk-labels" title="` + n.DefaultText + `" src="` + n.ImgURL + `">`
		assert.Equal(t, want, res.Descriptors[i].Markup)
	}
}

func TestLabelFetcher_FetchLabels_EscapeMarkup(t *testing.T) {
	source := &stubSource{notices: []entity.Notice{{DefaultText: `<script>alert(1)</script>`, ImgURL: "/x.png"}}}
	cfg := entity.DefaultBlockConfig()
	cfg.EscapeMarkup = true
	f := labels.NewLabelFetcher(source, cfg)

	res := f.FetchLabels(context.Background(), "https://hub.example/api/v1", "42")
	require.Len(t, res.Descriptors, 1)
	assert.NotContains(t, res.Descriptors[0].Markup, "<script>")

	title, _ := imgAttrs(t, res.Descriptors[0].Markup)
	assert.Equal(t, `<script>alert(1)</script>`, title)
}

func TestLabelFetcher_FetchLabels_FailuresRenderNothing(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "connection error", err: errors.New("dial tcp: connection refused")},
		{name: "timeout", err: hub.ErrTimeout},
		{name: "non-2xx", err: hub.ErrUnexpectedStatus},
		{name: "missing notice", err: hub.ErrMissingNotice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := labels.NewLabelFetcher(&stubSource{err: tt.err}, entity.DefaultBlockConfig())

			res := f.FetchLabels(context.Background(), "https://hub.example/api/v1", "42")
			assert.False(t, res.OK())
			assert.ErrorIs(t, res.Err, tt.err)
			assert.NotNil(t, res.Descriptors)
			assert.Empty(t, res.Descriptors)
		})
	}
}

func TestLabelFetcher_FetchLabels_MissingInput(t *testing.T) {
	source := &stubSource{}
	f := labels.NewLabelFetcher(source, entity.DefaultBlockConfig())

	assert.ErrorIs(t, f.FetchLabels(context.Background(), "", "42").Err, labels.ErrMissingInput)
	assert.ErrorIs(t, f.FetchLabels(context.Background(), "https://hub.example", "").Err, labels.ErrMissingInput)
	assert.Empty(t, source.requests)
}

func TestLabelFetcher_FetchLabels_NoSource(t *testing.T) {
	f := labels.NewLabelFetcher(nil, entity.DefaultBlockConfig())

	res := f.FetchLabels(context.Background(), "https://hub.example/api/v1", "42")
	assert.ErrorIs(t, res.Err, labels.ErrNoSource)
	assert.Empty(t, res.Descriptors)
}

func TestLabelFetcher_Configure_UsedVerbatim(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		id      string
		want    string
	}{
		{name: "plain", baseURL: "https://hub.example/api/v1", id: "42", want: "https://hub.example/api/v1/projects/42"},
		{name: "trailing slash kept", baseURL: "https://hub.example/api/v1/", id: "42", want: "https://hub.example/api/v1//projects/42"},
		{name: "id not encoded", baseURL: "https://hub.example", id: "a b/c?d", want: "https://hub.example/projects/a b/c?d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &stubSource{notices: []entity.Notice{}}
			f := labels.NewLabelFetcher(source, entity.DefaultBlockConfig())

			f.Configure(tt.baseURL)
			assert.Equal(t, tt.baseURL, f.Config().APIBaseURL)

			f.Build(context.Background(), nodeWithProject(tt.id))
			assert.Equal(t, tt.want, source.lastRequest())
		})
	}
}

/* ──────────────────────────────── Build ──────────────────────────────── */

func TestLabelFetcher_Build_NoProjectID(t *testing.T) {
	source := &stubSource{}
	f := labels.NewLabelFetcher(source, entity.DefaultBlockConfig())

	res := f.Build(context.Background(), &entity.Node{ID: 3})
	assert.True(t, res.OK())
	assert.Empty(t, res.Descriptors)
	assert.Empty(t, source.requests)
}

func TestLabelFetcher_Build_EndToEnd(t *testing.T) {
	source := &stubSource{notices: []entity.Notice{{DefaultText: "Attribution", ImgURL: "https://hub.example/img/1.png"}}}
	f := labels.NewLabelFetcher(source, entity.BlockConfig{APIBaseURL: "https://hub.example/api/v1"})

	res := f.Build(context.Background(), nodeWithProject("42"))
	require.True(t, res.OK())
	require.Len(t, res.Descriptors, 1)

	title, src := imgAttrs(t, res.Descriptors[0].Markup)
	assert.Equal(t, "Attribution", title)
	assert.Equal(t, "https://hub.example/img/1.png", src)
	assert.Equal(t, "https://hub.example/api/v1/projects/42", source.lastRequest())
}

func TestLabelFetcher_Build_AgainstHubServer(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"notice":[{"default_text":"Attribution","img_url":"https://hub.example/img/1.png"}]}`)
	}))
	defer srv.Close()

	cfg := hub.DefaultConfig()
	cfg.Timeout = 2 * time.Second
	f := labels.NewLabelFetcher(hub.NewClient(cfg), entity.BlockConfig{APIBaseURL: srv.URL + "/api/v1"})

	res := f.Build(context.Background(), nodeWithProject("42"))
	require.NoError(t, res.Err)
	require.Len(t, res.Descriptors, 1)
	assert.Equal(t, `<img class="tk-labels" title="Attribution" src="https://hub.example/img/1.png">`, res.Descriptors[0].Markup)
	assert.Equal(t, "/api/v1/projects/42", gotPath)
}

func TestLabelFetcher_Build_HubDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL + "/api/v1"
	srv.Close()

	f := labels.NewLabelFetcher(hub.NewClient(hub.DefaultConfig()), entity.BlockConfig{APIBaseURL: base})

	res := f.Build(context.Background(), nodeWithProject("42"))
	assert.Error(t, res.Err)
	assert.Empty(t, res.Descriptors)
}

/* ──────────────────────────────── EntityHasTerm ──────────────────────────────── */

func termRef(uri string) *entity.Term {
	return &entity.Term{ID: 1, Vocabulary: "protocols", Fields: entity.Fields{
		entity.ExternalURIField: {{URI: uri}},
	}}
}

func TestLabelFetcher_EntityHasTerm(t *testing.T) {
	const target = "https://example.org/terms/seasonal"
	otherNode := &entity.Node{ID: 9, Fields: entity.Fields{entity.ExternalURIField: {{URI: target}}}}

	tests := []struct {
		name   string
		node   *entity.Node
		negate bool
		want   bool
	}{
		{name: "nil node", node: nil, want: false},
		{name: "nil node negated", node: nil, negate: true, want: true},
		{name: "no references", node: &entity.Node{ID: 1}, want: false},
		{name: "matching term", node: &entity.Node{ID: 1, References: []entity.Referenceable{termRef("https://example.org/x"), termRef(target)}}, want: true},
		{name: "matching term negated", node: &entity.Node{ID: 1, References: []entity.Referenceable{termRef(target)}}, negate: true, want: false},
		{name: "no matching term", node: &entity.Node{ID: 1, References: []entity.Referenceable{termRef("https://example.org/x")}}, want: false},
		{name: "no matching term negated", node: &entity.Node{ID: 1, References: []entity.Referenceable{termRef("https://example.org/x")}}, negate: true, want: true},
		{name: "empty uri field skipped", node: &entity.Node{ID: 1, References: []entity.Referenceable{&entity.Term{ID: 2, Fields: entity.Fields{entity.ExternalURIField: {}}}}}, want: false},
		{name: "non-term reference ignored", node: &entity.Node{ID: 1, References: []entity.Referenceable{otherNode}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := labels.NewLabelFetcher(&stubSource{}, entity.BlockConfig{URI: target, Negate: tt.negate})
			assert.Equal(t, tt.want, f.EntityHasTerm(tt.node))
		})
	}
}

/* ──────────────────────────────── concurrency ──────────────────────────────── */

func TestLabelFetcher_ConcurrentConfigureAndBuild(t *testing.T) {
	source := &stubSource{notices: []entity.Notice{{DefaultText: "x", ImgURL: "/x.png"}}}
	f := labels.NewLabelFetcher(source, entity.DefaultBlockConfig())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			f.Configure(fmt.Sprintf("https://hub%d.example/api", i))
		}(i)
		go func() {
			defer wg.Done()
			res := f.Build(context.Background(), nodeWithProject("42"))
			assert.Len(t, res.Descriptors, 1)
		}()
	}
	wg.Wait()
}
