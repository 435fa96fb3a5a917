package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ralim/listcreation/history"
	"github.com/ralim/listcreation/settings"
	"github.com/ralim/listcreation/sphttp"
	"github.com/ralim/listcreation/webpart"
)

// fakeSharePoint answers the existence check and the create call with fixed statuses
type fakeSharePoint struct {
	sync.Mutex
	checkStatus  int
	createStatus int
	methods      []string
}

func (f *fakeSharePoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.Lock()
	f.methods = append(f.methods, r.Method)
	f.Unlock()
	if r.Method == http.MethodPost {
		w.WriteHeader(f.createStatus)
		return
	}
	w.WriteHeader(f.checkStatus)
}

func maketestServer(t *testing.T, client sphttp.Client, siteURL string) (*Server, *settings.Settings, history.Store) {
	tempFolder, err := os.MkdirTemp("", "unit_test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(tempFolder) })

	config := settings.NewSettings(path.Join(tempFolder, "settings.json"))
	config.UserDisplayName = "Test User"
	if siteURL != "" {
		config.SiteURL = siteURL
	}
	store, err := history.NewSQLiteStore(path.Join(tempFolder, "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	workflow := webpart.NewWorkflow(webpart.WorkflowOptions{
		Client:          client,
		WebAbsoluteURL:  config.SiteURL,
		EncodeListTitle: config.EncodeListTitle,
		Recorder:        store,
	})
	part := webpart.New(webpart.Options{
		PageContext: webpart.PageContext{WebAbsoluteURL: config.SiteURL, UserDisplayName: config.UserDisplayName},
		Properties:  webpart.Properties{Description: config.Description},
		Workflow:    workflow,
	})
	part.OnInit()
	return NewServer(part, store, config), config, store
}

func makeFakeSharePoint(t *testing.T, checkStatus, createStatus int) (sphttp.Client, *fakeSharePoint, string) {
	fake := &fakeSharePoint{checkStatus: checkStatus, createStatus: createStatus}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return sphttp.NewClient(sphttp.Options{}), fake, srv.URL
}

// serve is safe to call from any goroutine, do is for the test goroutine only
func serve(handler http.Handler, method, target, contentType, body string) (*httptest.ResponseRecorder, error) {
	req, err := http.NewRequest(method, target, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, nil
}

func do(t *testing.T, handler http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	rr, err := serve(handler, method, target, contentType, body)
	if err != nil {
		t.Fatal(err)
	}
	return rr
}

type served struct {
	rr  *httptest.ResponseRecorder
	err error
}

func TestHTTPIndex(t *testing.T) {
	t.Parallel()
	server, _, _ := maketestServer(t, nil, "")
	rr := do(t, server.Handler(), "GET", "/", "", "")

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"Well done, Test User!", `id="btnCreateNewList"`, `action="/click/btnCreateNewList"`} {
		if !strings.Contains(body, want) {
			t.Errorf("handler returned unexpected body, missing %s", want)
		}
	}
	if rr.Header().Get("Request-Id") == "" {
		t.Error("Responses should carry a request id")
	}
}

func TestHTTPClickCreatesList(t *testing.T) {
	t.Parallel()
	client, fake, siteURL := makeFakeSharePoint(t, http.StatusNotFound, http.StatusCreated)
	server, _, _ := maketestServer(t, client, siteURL)

	form := url.Values{"txtNewListName": {"Projects"}, "txtNewListDescription": {"Tracking"}}
	rr := do(t, server.Handler(), "POST", "/click/btnCreateNewList", "application/x-www-form-urlencoded", form.Encode())
	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "<p>A new list has been created</p>") {
		t.Errorf("Notification missing from page\n%s", rr.Body.String())
	}
	fake.Lock()
	methods := strings.Join(fake.methods, ",")
	fake.Unlock()
	if methods != "GET,POST" {
		t.Errorf("Expected a check then a create, got %s", methods)
	}

	rr = do(t, server.Handler(), "GET", "/history.json", "", "")
	attempts := []history.Attempt{}
	if err := json.Unmarshal(rr.Body.Bytes(), &attempts); err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 1 || attempts[0].ListName != "Projects" || attempts[0].Outcome != history.OutcomeCreated {
		t.Errorf("Unexpected history %+v", attempts)
	}

	rr = do(t, server.Handler(), "GET", "/history", "", "")
	if !strings.Contains(rr.Body.String(), "<td>Projects</td>") {
		t.Errorf("History page missing the attempt\n%s", rr.Body.String())
	}
}

func TestHTTPClickServerError(t *testing.T) {
	t.Parallel()
	client, fake, siteURL := makeFakeSharePoint(t, http.StatusForbidden, http.StatusCreated)
	server, _, _ := maketestServer(t, client, siteURL)

	form := url.Values{"txtNewListName": {"Projects"}}
	rr := do(t, server.Handler(), "POST", "/click/btnCreateNewList", "application/x-www-form-urlencoded", form.Encode())
	if !strings.Contains(rr.Body.String(), "<p>Error message: 403 - Forbidden</p>") {
		t.Errorf("Notification missing from page\n%s", rr.Body.String())
	}
	fake.Lock()
	defer fake.Unlock()
	if len(fake.methods) != 1 {
		t.Errorf("Should stop after the failed check, got %v", fake.methods)
	}
}

func TestHTTPClickUnknownElement(t *testing.T) {
	t.Parallel()
	server, _, _ := maketestServer(t, nil, "")
	rr := do(t, server.Handler(), "POST", "/click/btnSomethingElse", "application/x-www-form-urlencoded", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusNotFound)
	}
	rr = do(t, server.Handler(), "GET", "/click/btnCreateNewList", "", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusMethodNotAllowed)
	}
}

// blockingClient holds the existence check open until released
type blockingClient struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingClient) Get(ctx context.Context, url string) (*sphttp.Response, error) {
	close(b.started)
	<-b.release
	return &sphttp.Response{Status: http.StatusOK, StatusText: "OK"}, nil
}

func (b *blockingClient) Post(ctx context.Context, url string, body any) (*sphttp.Response, error) {
	return &sphttp.Response{Status: http.StatusCreated, StatusText: "Created"}, nil
}

func TestHTTPDoubleClick(t *testing.T) {
	t.Parallel()
	client := &blockingClient{started: make(chan struct{}), release: make(chan struct{})}
	server, _, _ := maketestServer(t, client, "")
	handler := server.Handler()
	form := url.Values{"txtNewListName": {"Projects"}}.Encode()

	first := make(chan served, 1)
	go func() {
		rr, err := serve(handler, "POST", "/click/btnCreateNewList", "application/x-www-form-urlencoded", form)
		first <- served{rr, err}
	}()
	select {
	case <-client.started:
	case <-time.After(5 * time.Second):
		t.Fatal("First click never reached the workflow")
	}

	rr := do(t, handler, "GET", "/", "", "")
	if !strings.Contains(rr.Body.String(), "disabled") {
		t.Error("Button should render disabled while busy")
	}
	rr = do(t, handler, "POST", "/click/btnCreateNewList", "application/x-www-form-urlencoded", form)
	if rr.Code != http.StatusConflict {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusConflict)
	}
	if !strings.Contains(rr.Body.String(), "A list creation is already in progress") {
		t.Errorf("Busy notification missing\n%s", rr.Body.String())
	}

	close(client.release)
	result := <-first
	if result.err != nil {
		t.Fatal(result.err)
	}
	if !strings.Contains(result.rr.Body.String(), "<p>List already exists</p>") {
		t.Errorf("First click should finish normally\n%s", result.rr.Body.String())
	}
}

func TestHTTPTheme(t *testing.T) {
	t.Parallel()
	server, _, _ := maketestServer(t, nil, "")
	handler := server.Handler()

	rr := do(t, handler, "POST", "/theme", "application/json", `{"isInverted":true,"semanticColors":{"bodyText":"#ffffff","link":"#2899f5","linkHovered":""}}`)
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != `{"isDarkTheme":true}` {
		t.Errorf("Unexpected response %d %s", rr.Code, rr.Body.String())
	}
	page := do(t, handler, "GET", "/", "", "").Body.String()
	if !strings.Contains(page, "/assets/welcome-dark.svg") || !strings.Contains(page, `style="--bodyText: #ffffff; --link: #2899f5"`) {
		t.Errorf("Theme not applied\n%s", page)
	}

	rr = do(t, handler, "POST", "/theme", "application/json", `null`)
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != `{"isDarkTheme":true}` {
		t.Errorf("A null theme should be ignored, got %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, handler, "POST", "/theme", "application/json", `{not json`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
	}
}

func TestHTTPPropertyPane(t *testing.T) {
	t.Parallel()
	server, _, _ := maketestServer(t, nil, "")
	rr := do(t, server.Handler(), "GET", "/propertypane.json", "", "")
	var payload struct {
		DataVersion string `json:"dataVersion"`
		Pages       []struct {
			Groups []struct {
				GroupFields []struct {
					TargetProperty string `json:"targetProperty"`
				} `json:"groupFields"`
			} `json:"groups"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.DataVersion != "1.0" {
		t.Errorf("Unexpected data version %q", payload.DataVersion)
	}
	if len(payload.Pages) != 1 || payload.Pages[0].Groups[0].GroupFields[0].TargetProperty != "description" {
		t.Errorf("Unexpected property pane %s", rr.Body.String())
	}
}

func TestHTTPProperties(t *testing.T) {
	t.Parallel()
	server, config, _ := maketestServer(t, nil, "")
	handler := server.Handler()

	rr := do(t, handler, "PUT", "/properties", "application/json", `{"description":"<i>New</i> value"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if config.Description != "<i>New</i> value" {
		t.Errorf("Settings not updated, got %q", config.Description)
	}
	reloaded := settings.NewSettings(config.FilePath())
	if reloaded.Description != "<i>New</i> value" {
		t.Errorf("Description not persisted, got %q", reloaded.Description)
	}
	page := do(t, handler, "GET", "/", "", "").Body.String()
	if !strings.Contains(page, "<strong>&lt;i&gt;New&lt;/i&gt; value</strong>") {
		t.Errorf("New property value not rendered escaped\n%s", page)
	}
}

func TestHTTPPropertiesConcurrent(t *testing.T) {
	t.Parallel()
	server, config, _ := maketestServer(t, nil, "")
	handler := server.Handler()

	results := make(chan served, 8)
	for i := 0; i < 8; i++ {
		body := fmt.Sprintf(`{"description":"Description %d"}`, i)
		go func() {
			rr, err := serve(handler, "PUT", "/properties", "application/json", body)
			results <- served{rr, err}
		}()
	}
	for i := 0; i < 8; i++ {
		result := <-results
		if result.err != nil {
			t.Fatal(result.err)
		}
		if result.rr.Code != http.StatusOK {
			t.Errorf("handler returned wrong status code: got %v want %v", result.rr.Code, http.StatusOK)
		}
	}
	reloaded := settings.NewSettings(config.FilePath())
	if !strings.HasPrefix(reloaded.Description, "Description ") {
		t.Errorf("Saved file lost the updates, got %q", reloaded.Description)
	}
}

func TestHTTPStaticFiles(t *testing.T) {
	t.Parallel()
	server, _, _ := maketestServer(t, nil, "")
	handler := server.Handler()

	rr := do(t, handler, "GET", "/assets/welcome-light.svg", "", "")
	if rr.Code != http.StatusOK || rr.Header().Get("Content-Type") != "image/svg+xml" {
		t.Errorf("Unexpected asset response %d %q", rr.Code, rr.Header().Get("Content-Type"))
	}
	rr = do(t, handler, "GET", "/assets/../webui.go", "", "")
	if rr.Code == http.StatusOK {
		t.Error("Should not serve files outside the assets")
	}
	rr = do(t, handler, "GET", "/listcreation.css", "", "")
	if rr.Code != http.StatusOK || !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/css") {
		t.Errorf("Unexpected stylesheet response %d %q", rr.Code, rr.Header().Get("Content-Type"))
	}
}
