package localization

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/kv"
	"github.com/amaclone/storefront/pkg/logger"
	"github.com/amaclone/storefront/pkg/metrics"
)

type recordingDocument struct {
	calls [][2]string
}

func (d *recordingDocument) SetAttributes(lang, dir string) {
	d.calls = append(d.calls, [2]string{lang, dir})
}

type countingRefresher struct {
	count int
}

func (r *countingRefresher) Refresh(context.Context) {
	r.count++
}

type failingKV struct {
	kv.Store
	setErr error
	getErr error
}

func (f failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.Store.Get(ctx, key)
}

func (f failingKV) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

func testTables() Tables {
	return Tables{
		"en": Table(map[string]Node{
			"greeting": Table(map[string]Node{
				"hello": Leaf("Hello, {name}!"),
				"twice": Leaf("{name} and {name} again"),
			}),
			"a": Table(map[string]Node{
				"b": Table(map[string]Node{"c": Table(map[string]Node{"d": Leaf("too deep")})}),
			}),
		}),
		"ar": Table(map[string]Node{
			"greeting": Table(map[string]Node{"hello": Leaf("مرحباً، {name}!")}),
		}),
	}
}

func newTestResolver(t *testing.T, store kv.Store, opts ...Option) *Resolver {
	t.Helper()
	r, err := NewResolver(context.Background(), testTables(), store, opts...)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return r
}

func switchLocale(t *testing.T, r *Resolver, locale string) bool {
	t.Helper()
	changed, err := r.SetLocale(context.Background(), locale)
	if err != nil {
		t.Fatalf("set locale %q: %v", locale, err)
	}
	return changed
}

func TestTSubstitutesParams(t *testing.T) {
	r := newTestResolver(t, kv.NewMemory())

	cases := []struct {
		key    string
		params map[string]any
		want   string
	}{
		{"greeting.hello", map[string]any{"name": "Sam"}, "Hello, Sam!"},
		{"greeting.twice", map[string]any{"name": "Sam"}, "Sam and Sam again"},
		{"greeting.hello", nil, "Hello, {name}!"},
		{"greeting.hello", map[string]any{"name": 42, "unused": "x"}, "Hello, 42!"},
	}
	for _, tc := range cases {
		if got := r.T(tc.key, tc.params); got != tc.want {
			t.Errorf("T(%q, %v) = %q, want %q", tc.key, tc.params, got, tc.want)
		}
	}
}

func TestTFallsBackToKey(t *testing.T) {
	r := newTestResolver(t, kv.NewMemory())

	for _, key := range []string{"x.b.c", "a.x.c", "a.b.c", "a.b", "greeting.hello.extra", "", "greeting..hello"} {
		if got := r.T(key, map[string]any{"name": "Sam"}); got != key {
			t.Errorf("T(%q) = %q, want the key back", key, got)
		}
	}
}

func TestSetLocaleSwitchesDirection(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	doc := &recordingDocument{}
	refresher := &countingRefresher{}
	r := newTestResolver(t, store, WithDocument(doc), WithRefresher(refresher))

	if r.Locale() != "en" || r.Direction() != DirLTR {
		t.Fatalf("expected en/ltr start, got %s/%s", r.Locale(), r.Direction())
	}

	if !switchLocale(t, r, "ar") {
		t.Fatal("switch to ar should report a change")
	}
	if r.Direction() != DirRTL {
		t.Errorf("expected rtl after switching to ar, got %s", r.Direction())
	}
	if got := r.T("greeting.hello", map[string]any{"name": "Sam"}); got != "مرحباً، Sam!" {
		t.Errorf("unexpected arabic greeting %q", got)
	}

	stored, ok, err := store.Get(ctx, StorageKey)
	if err != nil || !ok || stored != "ar" {
		t.Fatalf("expected ar persisted, got %q ok=%v err=%v", stored, ok, err)
	}

	if !switchLocale(t, r, "en") {
		t.Fatal("switch back to en should report a change")
	}
	if r.Direction() != DirLTR {
		t.Errorf("expected ltr after switching to en, got %s", r.Direction())
	}

	want := [][2]string{{"en", "ltr"}, {"ar", "rtl"}, {"en", "ltr"}}
	if !reflect.DeepEqual(doc.calls, want) {
		t.Errorf("expected document updates %v, got %v", want, doc.calls)
	}
	if refresher.count != 2 {
		t.Errorf("expected 2 refreshes, got %d", refresher.count)
	}
}

func TestSetLocaleIgnoresUnsupported(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	doc := &recordingDocument{}
	refresher := &countingRefresher{}
	r := newTestResolver(t, store, WithDocument(doc), WithRefresher(refresher))
	switchLocale(t, r, "ar")

	if switchLocale(t, r, "xx") {
		t.Fatal("unsupported locale should not report a change")
	}
	if r.Locale() != "ar" || r.Direction() != DirRTL {
		t.Errorf("expected ar/rtl to stick, got %s/%s", r.Locale(), r.Direction())
	}
	if len(doc.calls) != 2 {
		t.Errorf("expected 2 document updates, got %d", len(doc.calls))
	}
	if refresher.count != 1 {
		t.Errorf("expected 1 refresh, got %d", refresher.count)
	}

	if stored, _, _ := store.Get(ctx, StorageKey); stored != "ar" {
		t.Errorf("expected ar persisted, got %q", stored)
	}
}

func TestNewResolverRestoresPersistedLocale(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	if err := store.Set(ctx, StorageKey, "ar"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	doc := &recordingDocument{}
	r := newTestResolver(t, store, WithDocument(doc))
	if r.Locale() != "ar" {
		t.Errorf("expected persisted ar, got %s", r.Locale())
	}
	if want := [][2]string{{"ar", "rtl"}}; !reflect.DeepEqual(doc.calls, want) {
		t.Errorf("expected document updates %v, got %v", want, doc.calls)
	}
}

func TestNewResolverIgnoresUnreadableState(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	if err := store.Set(ctx, StorageKey, "klingon"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := newTestResolver(t, store).Locale(); got != "en" {
		t.Errorf("unsupported stored locale should fall back to en, got %s", got)
	}

	broken := failingKV{Store: kv.NewMemory(), getErr: errors.New("timeout")}
	if got := newTestResolver(t, broken, WithFallback("ar"), WithLogger(logger.Nop())).Locale(); got != "ar" {
		t.Errorf("read failure should fall back to ar, got %s", got)
	}
}

func TestNewResolverValidatesFallback(t *testing.T) {
	if _, err := NewResolver(context.Background(), testTables(), nil, WithFallback("de")); err == nil {
		t.Error("expected error for unsupported fallback")
	}
	if _, err := NewResolver(context.Background(), Tables{}, nil); err == nil {
		t.Error("expected error for empty tables")
	}
}

func TestSetLocalePersistFailureStillSwitches(t *testing.T) {
	refresher := &countingRefresher{}
	r := newTestResolver(t, failingKV{Store: kv.NewMemory(), setErr: errors.New("read only")}, WithRefresher(refresher))

	changed, err := r.SetLocale(context.Background(), "ar")
	if !changed {
		t.Error("switch should take effect even when persisting fails")
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Errorf("expected dependency error, got %v", err)
	}
	if r.Locale() != "ar" {
		t.Errorf("expected ar, got %s", r.Locale())
	}
	if refresher.count != 1 {
		t.Errorf("expected 1 refresh, got %d", refresher.count)
	}
}

func TestSetLocaleRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newTestResolver(t, kv.NewMemory(), WithMetrics(metrics.NewStorefrontMetrics(reg)))
	switchLocale(t, r, "ar")
	switchLocale(t, r, "xx")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	counts := map[string]float64{}
	for _, mf := range mfs {
		for _, metric := range mf.GetMetric() {
			counts[mf.GetName()] += metric.GetCounter().GetValue()
		}
	}
	if counts["locale_changes_total"] != 1 {
		t.Errorf("expected 1 locale change, got %v", counts["locale_changes_total"])
	}
	if counts["locale_rejected_total"] != 1 {
		t.Errorf("expected 1 rejected locale, got %v", counts["locale_rejected_total"])
	}
}

func TestDirection(t *testing.T) {
	cases := map[string]string{"ar": DirRTL, "en": DirLTR, "fr": DirLTR}
	for locale, want := range cases {
		if got := Direction(locale); got != want {
			t.Errorf("Direction(%q) = %q, want %q", locale, got, want)
		}
	}
}
