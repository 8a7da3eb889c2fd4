package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	xhtml "golang.org/x/net/html"

	"github.com/goliatone/go-formview/internal/logging"
	"github.com/goliatone/go-formview/pkg/formview"
)

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *http.Client) {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	srv, err := New(opts)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return ts, &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func parse(t *testing.T, body string) *xhtml.Node {
	t.Helper()
	doc, err := xhtml.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func findByID(n *xhtml.Node, id string) *xhtml.Node {
	if n.Type == xhtml.ElementNode && attrOf(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findNotice(n *xhtml.Node) *xhtml.Node {
	if n.Type == xhtml.ElementNode && n.Data == "p" && attrOf(n, "class") == "formview-notice" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNotice(c); found != nil {
			return found
		}
	}
	return nil
}

func attrOf(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *xhtml.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func TestShowForm(t *testing.T) {
	ts, client := newTestServer(t, Options{})

	resp, err := client.Get(ts.URL + "/form")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type: %q", ct)
	}
	doc := parse(t, readBody(t, resp))

	for _, id := range []string{formview.FormID, formview.FieldFirstName, formview.FieldLastName, formview.FieldIsOver21} {
		if findByID(doc, id) == nil {
			t.Fatalf("expected element #%s", id)
		}
	}
	if findByID(doc, formview.FieldFavoriteDrink) != nil {
		t.Fatalf("favorite drink must not render initially")
	}
	if got := attrOf(findByID(doc, formview.FieldIsOver21), "data-autosubmit"); got != actionToggle {
		t.Fatalf("checkbox autosubmit: %q", got)
	}
	if findNotice(doc) != nil {
		t.Fatalf("no notice expected on first visit")
	}
}

func TestRootRedirects(t *testing.T) {
	ts, client := newTestServer(t, Options{})
	resp, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get root: %v", err)
	}
	readBody(t, resp)
	if resp.Request.URL.Path != "/form" {
		t.Fatalf("expected redirect to /form, got %s", resp.Request.URL.Path)
	}
}

func TestToggleRendersFavoriteDrinkWithPostedValues(t *testing.T) {
	ts, client := newTestServer(t, Options{})

	resp, err := client.PostForm(ts.URL+"/form", url.Values{
		"_action":        {"submit", "toggle"},
		"first_name":     {"A"},
		"last_name":      {"B"},
		"is_over_21":     {"on"},
		"favorite_drink": {"C"},
	})
	if err != nil {
		t.Fatalf("post toggle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	doc := parse(t, readBody(t, resp))

	if got := attrOf(findByID(doc, formview.FieldFirstName), "value"); got != "A" {
		t.Fatalf("first name value: %q", got)
	}
	if !hasAttr(findByID(doc, formview.FieldIsOver21), "checked") {
		t.Fatalf("checkbox should be checked")
	}
	drink := findByID(doc, formview.FieldFavoriteDrink)
	if drink == nil {
		t.Fatalf("favorite drink should render after toggle")
	}
	if got := attrOf(drink, "value"); got != "C" {
		t.Fatalf("favorite drink value: %q", got)
	}
}

func TestSubmitFlashesSubmission(t *testing.T) {
	ts, client := newTestServer(t, Options{})

	resp, err := client.PostForm(ts.URL+"/form", url.Values{
		"_action":        {"submit"},
		"first_name":     {"A"},
		"last_name":      {"B"},
		"is_over_21":     {"on"},
		"favorite_drink": {"C"},
	})
	if err != nil {
		t.Fatalf("post submit: %v", err)
	}
	if resp.Request.Method != http.MethodGet || resp.Request.URL.Path != "/form" {
		t.Fatalf("expected redirect to GET /form, got %s %s", resp.Request.Method, resp.Request.URL.Path)
	}
	doc := parse(t, readBody(t, resp))

	notice := findNotice(doc)
	if notice == nil || notice.FirstChild == nil {
		t.Fatalf("expected submission notice")
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(notice.FirstChild.Data), &got); err != nil {
		t.Fatalf("decode notice %q: %v", notice.FirstChild.Data, err)
	}
	want := map[string]any{"first_name": "A", "last_name": "B", "is_over_21": true, "favorite_drink": "C"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}

	again, err := client.Get(ts.URL + "/form")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	if findNotice(parse(t, readBody(t, again))) != nil {
		t.Fatalf("flash must be shown once")
	}
}

func TestSubmitDropsUnmountedFavoriteDrink(t *testing.T) {
	ts, client := newTestServer(t, Options{})

	resp, err := client.PostForm(ts.URL+"/form", url.Values{
		"first_name":     {"A"},
		"last_name":      {"B"},
		"favorite_drink": {"stale"},
	})
	if err != nil {
		t.Fatalf("post submit: %v", err)
	}
	notice := findNotice(parse(t, readBody(t, resp)))
	if notice == nil || notice.FirstChild == nil {
		t.Fatalf("expected submission notice")
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(notice.FirstChild.Data), &got); err != nil {
		t.Fatalf("decode notice: %v", err)
	}
	want := map[string]any{"first_name": "A", "last_name": "B", "is_over_21": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestCancelFlashesCancelled(t *testing.T) {
	ts, client := newTestServer(t, Options{})

	resp, err := client.PostForm(ts.URL+"/form", url.Values{
		"_action":    {"submit", "cancel"},
		"first_name": {"A"},
	})
	if err != nil {
		t.Fatalf("post cancel: %v", err)
	}
	notice := findNotice(parse(t, readBody(t, resp)))
	if notice == nil || notice.FirstChild == nil || notice.FirstChild.Data != cancelledNotice {
		t.Fatalf("expected cancelled notice")
	}
}

func TestUnknownAction(t *testing.T) {
	ts, client := newTestServer(t, Options{})

	resp, err := client.PostForm(ts.URL+"/form", url.Values{"_action": {"explode"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestCrossSiteFormPostRejected(t *testing.T) {
	ts, client := newTestServer(t, Options{})

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/form", strings.NewReader("_action=submit"))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	req.Header.Set("Origin", "https://evil.example")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSchemaEndpoint(t *testing.T) {
	ts, client := newTestServer(t, Options{})

	resp, err := client.Get(ts.URL + "/form/schema")
	if err != nil {
		t.Fatalf("get schema: %v", err)
	}
	var schema struct {
		Title      string                    `json:"title"`
		Required   []string                  `json:"required"`
		Properties map[string]map[string]any `json:"properties"`
	}
	if err := json.Unmarshal([]byte(readBody(t, resp)), &schema); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	if schema.Title != "FormSubmission" {
		t.Fatalf("title: %q", schema.Title)
	}
	if diff := cmp.Diff([]string{"first_name", "last_name", "is_over_21"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if schema.Properties["is_over_21"]["type"] != "boolean" {
		t.Fatalf("is_over_21 should be boolean: %v", schema.Properties["is_over_21"])
	}
}

func TestHealthAndAssets(t *testing.T) {
	ts, client := newTestServer(t, Options{})

	resp, err := client.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	if body := readBody(t, resp); body != "ok" {
		t.Fatalf("healthz body: %q", body)
	}

	resp, err = client.Get(ts.URL + "/assets/formview.css")
	if err != nil {
		t.Fatalf("get stylesheet: %v", err)
	}
	if body := readBody(t, resp); resp.StatusCode != http.StatusOK || !strings.Contains(body, ".formview") {
		t.Fatalf("stylesheet not served: %d", resp.StatusCode)
	}
}

func TestBrandThemeAndLabels(t *testing.T) {
	labels := formview.DefaultLabels().Merge(formview.Labels{Heading: "Drinks", Submit: "Send"})
	ts, client := newTestServer(t, Options{Labels: labels, Theme: BrandTheme("#123456")})

	resp, err := client.Get(ts.URL + "/form")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, `style="--brand: #123456;"`) {
		t.Fatalf("expected brand css variable in page")
	}
	if !strings.Contains(body, `href="/assets/formview.css"`) {
		t.Fatalf("expected stylesheet link")
	}
	if !strings.Contains(body, "<title>Drinks</title>") {
		t.Fatalf("expected custom heading as title")
	}

	resp, err = client.PostForm(ts.URL+"/form", url.Values{"_action": {"submit"}, "first_name": {"A"}, "last_name": {"B"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if notice := findNotice(parse(t, readBody(t, resp))); notice == nil {
		t.Fatalf("submit with custom labels should flash")
	}
}

func TestFragmentRendering(t *testing.T) {
	ts, client := newTestServer(t, Options{})

	resp, err := client.Get(ts.URL + "/form?render=fragment")
	if err != nil {
		t.Fatalf("get fragment: %v", err)
	}
	body := readBody(t, resp)
	if !strings.HasPrefix(body, `<form id="myForm" name="myForm"><input name="_action" type="hidden" value="submit"/>`) {
		t.Fatalf("unexpected fragment: %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Fatalf("fragment must not include a document")
	}
}

func TestBrandTheme_Empty(t *testing.T) {
	if BrandTheme("") != nil {
		t.Fatalf("expected nil theme for empty brand")
	}
}

func findButtons(n *xhtml.Node) []*xhtml.Node {
	var out []*xhtml.Node
	if n.Type == xhtml.ElementNode && n.Data == "button" {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findButtons(c)...)
	}
	return out
}

func TestDefaultButtonSubmits(t *testing.T) {
	ts, client := newTestServer(t, Options{})

	resp, err := client.Get(ts.URL + "/form")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	var submitters []*xhtml.Node
	for _, b := range findButtons(parse(t, readBody(t, resp))) {
		if attrOf(b, "type") == "submit" {
			submitters = append(submitters, b)
		}
	}
	if len(submitters) == 0 {
		t.Fatalf("expected submit buttons")
	}
	if got := attrOf(submitters[0], "name") + "=" + attrOf(submitters[0], "value"); got != "_action=submit" {
		t.Fatalf("first submit button posts %q, want _action=submit", got)
	}

	var values []string
	for _, b := range submitters {
		values = append(values, attrOf(b, "value"))
	}
	want := []string{actionSubmit, actionToggle, actionCancel, actionSubmit}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("submit button order (-want +got):\n%s", diff)
	}
}

func TestPartialLabelsKeepDefaults(t *testing.T) {
	ts, client := newTestServer(t, Options{Labels: formview.Labels{Submit: "Go"}})

	resp, err := client.Get(ts.URL + "/form")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	named := map[string]string{}
	for _, b := range findButtons(parse(t, readBody(t, resp))) {
		if b.FirstChild != nil {
			named[b.FirstChild.Data] = attrOf(b, "value")
		}
	}
	if named["Go"] != actionSubmit || named[formview.DefaultLabels().Cancel] != actionCancel {
		t.Fatalf("action buttons not decorated: %v", named)
	}

	resp, err = client.PostForm(ts.URL+"/form", url.Values{"_action": {"submit", "cancel"}})
	if err != nil {
		t.Fatalf("post cancel: %v", err)
	}
	notice := findNotice(parse(t, readBody(t, resp)))
	if resp.StatusCode != http.StatusOK || notice == nil || notice.FirstChild == nil || notice.FirstChild.Data != cancelledNotice {
		t.Fatalf("expected cancelled notice, status %d", resp.StatusCode)
	}

	resp, err = client.PostForm(ts.URL+"/form", url.Values{"first_name": {"A"}})
	if err != nil {
		t.Fatalf("post submit: %v", err)
	}
	if notice := findNotice(parse(t, readBody(t, resp))); notice == nil {
		t.Fatalf("submit with partial labels should flash")
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSubmitLogsDecodedSubmission(t *testing.T) {
	logs := &lockedBuffer{}
	ts, client := newTestServer(t, Options{Logger: logging.New(logs, "info", false)})

	resp, err := client.PostForm(ts.URL+"/form", url.Values{
		"first_name":     {"A"},
		"last_name":      {"B"},
		"is_over_21":     {"on"},
		"favorite_drink": {""},
	})
	if err != nil {
		t.Fatalf("post submit: %v", err)
	}
	readBody(t, resp)

	out := logs.String()
	for _, want := range []string{"form submitted", "over_21=true", "favorite_drink_answered=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %q:\n%s", want, out)
		}
	}
}
