package httpkit

import (
	"net/http"
	"testing"

	phttp "rolegate/internal/platform/net/http"
)

type call struct {
	verb string
	path string
}

// fakeRouter records route wiring without serving anything
type fakeRouter struct {
	prefixes  []string
	groups    int
	useCalls  int
	lastMWLen int
	calls     []call
}

func (f *fakeRouter) Mux() http.Handler { return http.NewServeMux() }

func (f *fakeRouter) Route(prefix string, fn func(Router)) {
	f.prefixes = append(f.prefixes, prefix)
	fn(f)
}

func (f *fakeRouter) Group(fn func(Router)) {
	f.groups++
	fn(f)
}

func (f *fakeRouter) Use(mw ...func(http.Handler) http.Handler) {
	f.useCalls++
	f.lastMWLen = len(mw)
}

func (f *fakeRouter) rec(verb, path string) { f.calls = append(f.calls, call{verb, path}) }

func (f *fakeRouter) Handle(path string, _ http.Handler)  { f.rec("HANDLE", path) }
func (f *fakeRouter) Get(path string, _ phttp.Handler)    { f.rec("GET", path) }
func (f *fakeRouter) Post(path string, _ phttp.Handler)   { f.rec("POST", path) }
func (f *fakeRouter) Patch(path string, _ phttp.Handler)  { f.rec("PATCH", path) }
func (f *fakeRouter) Delete(path string, _ phttp.Handler) { f.rec("DELETE", path) }

func TestMountUnder_AppliesMiddleware_And_CallsMount(t *testing.T) {
	root := &fakeRouter{}
	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }

	MountUnder(root, "/diary", []func(http.Handler) http.Handler{mwA, mwB}, func(sub Router) {
		sub.Get("/entries/{id}", nil)
	})

	if len(root.prefixes) != 1 || root.prefixes[0] != "/diary" {
		t.Fatalf("prefixes = %v", root.prefixes)
	}
	if root.useCalls != 1 || root.lastMWLen != 2 {
		t.Fatalf("use calls=%d len=%d", root.useCalls, root.lastMWLen)
	}
	if len(root.calls) != 1 || root.calls[0] != (call{"GET", "/entries/{id}"}) {
		t.Fatalf("calls = %v", root.calls)
	}
}

func TestMountUnder_EmptyPrefixGroups(t *testing.T) {
	root := &fakeRouter{}
	MountUnder(root, "", nil, func(sub Router) { sub.Post("/x", nil) })
	if len(root.prefixes) != 0 || root.groups != 1 {
		t.Fatalf("expected a group, got prefixes=%v groups=%d", root.prefixes, root.groups)
	}
	if root.useCalls != 0 {
		t.Fatalf("no middleware should be applied")
	}
}

func TestMountAPIV1(t *testing.T) {
	root := &fakeRouter{}
	hits := 0
	MountAPIV1(root, []func(http.Handler) http.Handler{func(h http.Handler) http.Handler { return h }}, func(Router) {
		hits++
	})
	if len(root.prefixes) != 1 || root.prefixes[0] != "/api/v1" || hits != 1 || root.lastMWLen != 1 {
		t.Fatalf("unexpected mount: prefixes=%v hits=%d mw=%d", root.prefixes, hits, root.lastMWLen)
	}
}

func TestSugar_RegistersVerbs(t *testing.T) {
	type patch struct {
		Title *string `json:"title"`
	}
	h := func(*http.Request, patch) (any, error) { return nil, nil }
	h0 := func(*http.Request) (any, error) { return nil, nil }

	r := &fakeRouter{}
	Get(r, "/", h0)
	PostJSON(r, "/", h)
	Get(r, "/{id}", h0)
	PatchJSON(r, "/{id}", h)
	Delete(r, "/{id}", h0)
	Post(r, "/session/refresh", h0)

	want := []call{
		{"GET", "/"}, {"POST", "/"}, {"GET", "/{id}"},
		{"PATCH", "/{id}"}, {"DELETE", "/{id}"}, {"POST", "/session/refresh"},
	}
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v", r.calls)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Fatalf("call %d = %v want %v", i, r.calls[i], want[i])
		}
	}
}
