package announcements_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/schoolboard/internal/app/features/announcements"
	"github.com/dalemusser/schoolboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type announcementRow struct {
	ID        string  `json:"_id"`
	Message   string  `json:"message"`
	StartDate *string `json:"start_date"`
	EndDate   string  `json:"end_date"`
	CreatedBy string  `json:"created_by"`
	CreatedAt string  `json:"created_at"`
	Active    bool    `json:"active"`
}

func setup(t *testing.T) (http.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := announcements.NewHandler(db, zap.NewNop())
	return announcements.Routes(h), testutil.NewFixtures(t, db)
}

func do(t *testing.T, router http.Handler, method, path string, params url.Values) *httptest.ResponseRecorder {
	t.Helper()
	if params != nil {
		path += "?" + params.Encode()
	}
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func authed(extra url.Values) url.Values {
	params := url.Values{"teacher_username": {"mrs_smith"}}
	for k, vs := range extra {
		params[k] = vs
	}
	return params
}

func TestListActive_Public(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateAnnouncement(ctx, testutil.AnnouncementSpec{Message: "visible"})
	f.CreateAnnouncement(ctx, testutil.AnnouncementSpec{
		Message: "expired",
		EndDate: "2020-01-01T00:00:00",
	})
	f.CreateAnnouncement(ctx, testutil.AnnouncementSpec{
		Message: "switched off",
		Active:  testutil.BoolPtr(false),
	})
	f.CreateAnnouncement(ctx, testutil.AnnouncementSpec{
		Message:   "not started",
		StartDate: testutil.StrPtr("2098-01-01T00:00:00"),
	})

	// No teacher_username parameter.
	rec := do(t, router, http.MethodGet, "/active", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	rows := decodeBody[[]announcementRow](t, rec)
	if len(rows) != 1 {
		t.Fatalf("expected 1 active announcement, got %d: %v", len(rows), rows)
	}
	if rows[0].Message != "visible" {
		t.Errorf("message: got %q, want %q", rows[0].Message, "visible")
	}
}

func TestListActive_EmptyIsList(t *testing.T) {
	router, _ := setup(t)

	rec := do(t, router, http.MethodGet, "/active", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body: got %q, want empty JSON array", got)
	}
}

func TestListActive_FailOpenOnStoreError(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A database whose client is already disconnected makes every store
	// call fail without touching the network. The public feed must absorb
	// that and still answer with an empty list.
	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("mongo.Connect failed: %v", err)
	}
	if err := client.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}

	h := announcements.NewHandler(client.Database("schoolboard_closed"), zap.NewNop())
	router := announcements.Routes(h)

	rec := do(t, router, http.MethodGet, "/active", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body: got %q, want empty JSON array", got)
	}
}

func TestListAll_RequiresTeacher(t *testing.T) {
	router, _ := setup(t)

	rec := do(t, router, http.MethodGet, "/all", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["detail"] != "Authentication required" {
		t.Errorf("detail: got %q", body["detail"])
	}

	rec = do(t, router, http.MethodGet, "/all", url.Values{"teacher_username": {"nobody"}})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown teacher: got %d, want 401", rec.Code)
	}
}

func TestListAll_NewestFirst(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateTeacher(ctx, "mrs_smith")
	f.CreateAnnouncement(ctx, testutil.AnnouncementSpec{
		Message:   "older",
		CreatedAt: "2025-01-01T00:00:00.000000",
		EndDate:   "2020-01-01T00:00:00",
		Active:    testutil.BoolPtr(false),
	})
	f.CreateAnnouncement(ctx, testutil.AnnouncementSpec{
		Message:   "newer",
		CreatedAt: "2025-02-01T00:00:00.000000",
	})

	rec := do(t, router, http.MethodGet, "/all", authed(nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	rows := decodeBody[[]announcementRow](t, rec)
	if len(rows) != 2 {
		t.Fatalf("expected both announcements, got %d", len(rows))
	}
	if rows[0].Message != "newer" || rows[1].Message != "older" {
		t.Errorf("order: got %q then %q", rows[0].Message, rows[1].Message)
	}
	// Inactive and expired records still appear in the management view.
	if rows[1].Active {
		t.Error("expected older record reported inactive")
	}
}

func TestCreate(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateTeacher(ctx, "mrs_smith")

	rec := do(t, router, http.MethodPost, "/create", authed(url.Values{
		"message":  {"  Exam Friday  "},
		"end_date": {"2099-01-01T00:00:00"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Message      string          `json:"message"`
		Announcement announcementRow `json:"announcement"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message != "Announcement created successfully" {
		t.Errorf("message: got %q", body.Message)
	}
	ann := body.Announcement
	if ann.ID == "" {
		t.Error("expected an assigned ID")
	}
	if ann.Message != "Exam Friday" {
		t.Errorf("expected trimmed message, got %q", ann.Message)
	}
	if ann.StartDate != nil {
		t.Errorf("expected null start_date, got %q", *ann.StartDate)
	}
	if ann.CreatedBy != "mrs_smith" {
		t.Errorf("created_by: got %q", ann.CreatedBy)
	}
	if !ann.Active {
		t.Error("expected new announcement active")
	}

	// The new announcement is immediately visible on the public feed.
	rec = do(t, router, http.MethodGet, "/active", nil)
	rows := decodeBody[[]announcementRow](t, rec)
	if len(rows) != 1 || rows[0].ID != ann.ID {
		t.Errorf("expected created announcement on /active, got %v", rows)
	}
}

func TestCreate_InvalidDates(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateTeacher(ctx, "mrs_smith")

	cases := []struct {
		name   string
		params url.Values
	}{
		{"missing end_date", url.Values{"message": {"x"}}},
		{"garbage end_date", url.Values{"message": {"x"}, "end_date": {"tomorrow"}}},
		{"garbage start_date", url.Values{
			"message":    {"x"},
			"end_date":   {"2099-01-01T00:00:00"},
			"start_date": {"01/02/2025"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/create", authed(tc.params))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rec.Code)
			}
			body := decodeBody[map[string]string](t, rec)
			if body["detail"] != "Invalid date format" {
				t.Errorf("detail: got %q", body["detail"])
			}
		})
	}
}

func TestCreate_SanitizesMarkup(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateTeacher(ctx, "mrs_smith")

	rec := do(t, router, http.MethodPost, "/create", authed(url.Values{
		"message":  {`<p onclick="steal()">Fair</p><script>x()</script>`},
		"end_date": {"2099-01-01T00:00:00"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Announcement announcementRow `json:"announcement"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Announcement.Message != "<p>Fair</p>" {
		t.Errorf("expected markup stripped, got %q", body.Announcement.Message)
	}
}

func TestUpdate(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateTeacher(ctx, "mrs_smith")
	ann := f.CreateAnnouncement(ctx, testutil.AnnouncementSpec{
		Message: "before",
		Active:  testutil.BoolPtr(false),
	})

	rec := do(t, router, http.MethodPut, "/update/"+ann.ID.Hex(), authed(url.Values{
		"message":  {"after"},
		"end_date": {"2099-06-01T00:00:00"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[map[string]string](t, rec)
	if body["message"] != "Announcement updated successfully" {
		t.Errorf("message: got %q", body["message"])
	}

	rows := decodeBody[[]announcementRow](t, do(t, router, http.MethodGet, "/all", authed(nil)))
	if len(rows) != 1 {
		t.Fatalf("expected 1 announcement, got %d", len(rows))
	}
	if rows[0].Message != "after" || rows[0].EndDate != "2099-06-01T00:00:00" {
		t.Errorf("unexpected row after update: %+v", rows[0])
	}
	// An update without an active parameter switches the record back on.
	if !rows[0].Active {
		t.Error("expected update to reactivate the record")
	}
}

func TestUpdate_ActiveParam(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateTeacher(ctx, "mrs_smith")
	ann := f.CreateAnnouncement(ctx, testutil.AnnouncementSpec{Message: "m"})

	rec := do(t, router, http.MethodPut, "/update/"+ann.ID.Hex(), authed(url.Values{
		"message":  {"m"},
		"end_date": {"2099-01-01T00:00:00"},
		"active":   {"false"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	rows := decodeBody[[]announcementRow](t, do(t, router, http.MethodGet, "/all", authed(nil)))
	if rows[0].Active {
		t.Error("expected active=false applied")
	}

	rec = do(t, router, http.MethodPut, "/update/"+ann.ID.Hex(), authed(url.Values{
		"message":  {"m"},
		"end_date": {"2099-01-01T00:00:00"},
		"active":   {"maybe"},
	}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["detail"] != "Invalid value for active" {
		t.Errorf("detail: got %q", body["detail"])
	}
}

func TestUpdate_Errors(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateTeacher(ctx, "mrs_smith")

	params := authed(url.Values{"message": {"x"}, "end_date": {"2099-01-01T00:00:00"}})

	rec := do(t, router, http.MethodPut, "/update/not-a-hex-id", params)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: got %d, want 400", rec.Code)
	}
	if body := decodeBody[map[string]string](t, rec); body["detail"] != "Invalid announcement ID" {
		t.Errorf("detail: got %q", body["detail"])
	}

	rec = do(t, router, http.MethodPut, "/update/aaaaaaaaaaaaaaaaaaaaaaaa", params)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing id: got %d, want 404", rec.Code)
	}
	if body := decodeBody[map[string]string](t, rec); body["detail"] != "Announcement not found" {
		t.Errorf("detail: got %q", body["detail"])
	}
}

func TestDelete(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateTeacher(ctx, "mrs_smith")
	ann := f.CreateAnnouncement(ctx, testutil.AnnouncementSpec{Message: "doomed"})

	rec := do(t, router, http.MethodDelete, "/delete/"+ann.ID.Hex(), authed(nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody[map[string]string](t, rec); body["message"] != "Announcement deleted successfully" {
		t.Errorf("message: got %q", body["message"])
	}

	// Second delete of the same record reports not found.
	rec = do(t, router, http.MethodDelete, "/delete/"+ann.ID.Hex(), authed(nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want 404", rec.Code)
	}

	rec = do(t, router, http.MethodDelete, "/delete/zzz", authed(nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: got %d, want 400", rec.Code)
	}
}

func TestToggle_RoundTrip(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateTeacher(ctx, "mrs_smith")
	ann := f.CreateAnnouncement(ctx, testutil.AnnouncementSpec{Message: "m"})

	toggle := func() (int, map[string]any) {
		rec := do(t, router, http.MethodPut, "/toggle/"+ann.ID.Hex(), authed(nil))
		return rec.Code, decodeBody[map[string]any](t, rec)
	}

	code, body := toggle()
	if code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", code)
	}
	if body["message"] != "Announcement deactivated successfully" || body["active"] != false {
		t.Errorf("first toggle: got %v", body)
	}

	code, body = toggle()
	if code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", code)
	}
	if body["message"] != "Announcement activated successfully" || body["active"] != true {
		t.Errorf("second toggle: got %v", body)
	}
}

func TestToggle_LegacyRecordWithoutFlag(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateTeacher(ctx, "mrs_smith")

	// Insert a record with no active field at all. It reads as active, so
	// the first toggle must switch it off.
	res, err := f.DB().Collection("announcements").InsertOne(ctx, map[string]any{
		"message":    "legacy",
		"start_date": nil,
		"end_date":   "2099-01-01T00:00:00",
		"created_by": "mrs_smith",
		"created_at": "2024-01-01T00:00:00.000000",
	})
	if err != nil {
		t.Fatalf("failed to insert legacy record: %v", err)
	}
	id := res.InsertedID.(primitive.ObjectID).Hex()

	rec := do(t, router, http.MethodPut, "/toggle/"+id, authed(nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[map[string]any](t, rec)
	if body["active"] != false {
		t.Errorf("expected legacy record toggled off, got %v", body)
	}
}

func TestToggle_NotFound(t *testing.T) {
	router, f := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateTeacher(ctx, "mrs_smith")

	rec := do(t, router, http.MethodPut, "/toggle/aaaaaaaaaaaaaaaaaaaaaaaa", authed(nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestMutations_RequireTeacher(t *testing.T) {
	router, _ := setup(t)

	cases := []struct {
		method, path string
	}{
		{http.MethodPost, "/create"},
		{http.MethodPut, "/update/aaaaaaaaaaaaaaaaaaaaaaaa"},
		{http.MethodDelete, "/delete/aaaaaaaaaaaaaaaaaaaaaaaa"},
		{http.MethodPut, "/toggle/aaaaaaaaaaaaaaaaaaaaaaaa"},
	}
	for _, tc := range cases {
		rec := do(t, router, tc.method, tc.path, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want 401", tc.method, tc.path, rec.Code)
		}
	}
}
