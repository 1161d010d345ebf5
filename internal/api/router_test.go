package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"filedrop/internal/api"
	"filedrop/internal/app/service"
	"filedrop/internal/domain/model"
	"filedrop/internal/domain/repository"
	"filedrop/internal/platform/config"
	"filedrop/internal/platform/metrics"

	. "github.com/smartystreets/goconvey/convey"
)

// newTestServer wires the full router over a memory store, the same way
// cmd/server does for STORAGE_DRIVER=memory.
func newTestServer() (http.Handler, *repository.MemoryStore) {
	config.Load()

	store := repository.NewMemoryStore()
	m := metrics.NewManager()

	activityService := service.NewActivityService(store)
	eventService := service.NewEventService(store, store, activityService)
	submissionService := service.NewSubmissionService(store, store, activityService)
	dashboardService := service.NewDashboardService(store, store)
	fileService := service.NewFileService(store, m)

	router := api.NewRouter(eventService, submissionService, dashboardService, activityService, fileService, m)
	return router, store
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(rec *httptest.ResponseRecorder, out any) error {
	return json.Unmarshal(rec.Body.Bytes(), out)
}

func TestAdminAuth(t *testing.T) {
	Convey("Given the router", t, func() {
		router, _ := newTestServer()

		Convey("The default password is accepted", func() {
			rec := doJSON(router, http.MethodPost, "/api/admin/auth", map[string]string{"password": "0000"})
			So(rec.Code, ShouldEqual, http.StatusOK)

			var body map[string]bool
			So(decodeBody(rec, &body), ShouldBeNil)
			So(body["success"], ShouldBeTrue)
		})

		Convey("A wrong password is rejected with the message shape", func() {
			rec := doJSON(router, http.MethodPost, "/api/admin/auth", map[string]string{"password": "wrong"})
			So(rec.Code, ShouldEqual, http.StatusUnauthorized)

			var body map[string]string
			So(decodeBody(rec, &body), ShouldBeNil)
			So(body["message"], ShouldEqual, "Invalid password")
		})
	})
}

func TestEventEndpoints(t *testing.T) {
	Convey("Given the router", t, func() {
		router, _ := newTestServer()

		Convey("POST /api/events with JSON creates an event", func() {
			rec := doJSON(router, http.MethodPost, "/api/events", map[string]any{
				"password":    "0000",
				"title":       "Quarterly report",
				"description": "Upload the Q3 numbers",
				"deadline":    time.Now().Add(48 * time.Hour).Format(time.RFC3339),
			})
			So(rec.Code, ShouldEqual, http.StatusCreated)

			var event model.Event
			So(decodeBody(rec, &event), ShouldBeNil)
			So(event.ID, ShouldEqual, 1)
			So(event.IsActive, ShouldBeTrue)

			Convey("and GET /api/events lists it with a zero submission count", func() {
				rec := doJSON(router, http.MethodGet, "/api/events", nil)
				So(rec.Code, ShouldEqual, http.StatusOK)

				var listed []model.EventWithStats
				So(decodeBody(rec, &listed), ShouldBeNil)
				So(len(listed), ShouldEqual, 1)
				So(listed[0].Title, ShouldEqual, "Quarterly report")
				So(listed[0].SubmissionCount, ShouldEqual, 0)
			})

			Convey("and PATCH only changes the sent fields", func() {
				rec := doJSON(router, http.MethodPatch, "/api/events/1", map[string]any{"isActive": false})
				So(rec.Code, ShouldEqual, http.StatusOK)

				var updated model.Event
				So(decodeBody(rec, &updated), ShouldBeNil)
				So(updated.IsActive, ShouldBeFalse)
				So(updated.Title, ShouldEqual, "Quarterly report")
			})
		})

		Convey("POST /api/events without the password is unauthorized", func() {
			rec := doJSON(router, http.MethodPost, "/api/events", map[string]any{
				"title":       "t",
				"description": "d",
				"deadline":    time.Now().Format(time.RFC3339),
			})
			So(rec.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("POST /api/events with a missing title is a 400", func() {
			rec := doJSON(router, http.MethodPost, "/api/events", map[string]any{
				"password":    "0000",
				"description": "d",
				"deadline":    time.Now().Format(time.RFC3339),
			})
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("GET /api/events/999 is a 404", func() {
			rec := doJSON(router, http.MethodGet, "/api/events/999", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("POST /api/events as multipart stores the initial files", func() {
			var buf bytes.Buffer
			form := multipart.NewWriter(&buf)
			form.WriteField("password", "0000")
			form.WriteField("title", "Templates")
			form.WriteField("description", "Starting material")
			form.WriteField("deadline", time.Now().Add(time.Hour).Format(time.RFC3339))
			part, err := form.CreateFormFile("initialFiles", "template.xlsx")
			So(err, ShouldBeNil)
			part.Write([]byte("spreadsheet bytes"))
			So(form.Close(), ShouldBeNil)

			req := httptest.NewRequest(http.MethodPost, "/api/events", &buf)
			req.Header.Set("Content-Type", form.FormDataContentType())
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusCreated)

			var event model.Event
			So(decodeBody(rec, &event), ShouldBeNil)
			So(len(event.InitialFiles), ShouldEqual, 1)
			So(strings.HasSuffix(event.InitialFiles[0], "template.xlsx"), ShouldBeTrue)

			Convey("and the stored file can be downloaded under its original name", func() {
				rec := doJSON(router, http.MethodGet, "/api/files/"+event.InitialFiles[0], nil)
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldEqual, "spreadsheet bytes")
				So(rec.Header().Get("Content-Disposition"), ShouldEqual, `attachment; filename="template.xlsx"`)
			})
		})
	})
}

func TestSubmissionEndpoints(t *testing.T) {
	Convey("Given the router and an existing event", t, func() {
		router, store := newTestServer()
		ctx := context.Background()
		event := &model.Event{Title: "Receipts", Description: "d", Deadline: time.Now(), IsActive: true}
		So(store.CreateEvent(ctx, event), ShouldBeNil)

		submitForm := func(eventID string, fileCount int) *httptest.ResponseRecorder {
			var buf bytes.Buffer
			form := multipart.NewWriter(&buf)
			form.WriteField("eventId", eventID)
			form.WriteField("submitterName", "Choi")
			form.WriteField("submitterDepartment", "Ops")
			form.WriteField("submitterContact", "choi@example.com")
			for i := 0; i < fileCount; i++ {
				part, _ := form.CreateFormFile("files", fmt.Sprintf("doc-%d.pdf", i))
				part.Write([]byte("pdf bytes"))
			}
			form.Close()

			req := httptest.NewRequest(http.MethodPost, "/api/submissions", &buf)
			req.Header.Set("Content-Type", form.FormDataContentType())
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			return rec
		}

		Convey("POST /api/submissions creates a submission with stored file names", func() {
			rec := submitForm("1", 2)
			So(rec.Code, ShouldEqual, http.StatusCreated)

			var submission model.Submission
			So(decodeBody(rec, &submission), ShouldBeNil)
			So(submission.EventID, ShouldEqual, event.ID)
			So(submission.SubmitterName, ShouldEqual, "Choi")
			So(len(submission.Files), ShouldEqual, 2)
			So(strings.HasSuffix(submission.Files[0], "doc-0.pdf"), ShouldBeTrue)

			Convey("and GET /api/submissions?eventId= filters by event", func() {
				rec := doJSON(router, http.MethodGet, "/api/submissions?eventId=1", nil)
				So(rec.Code, ShouldEqual, http.StatusOK)

				var listed []model.Submission
				So(decodeBody(rec, &listed), ShouldBeNil)
				So(len(listed), ShouldEqual, 1)

				rec = doJSON(router, http.MethodGet, "/api/submissions?eventId=2", nil)
				So(decodeBody(rec, &listed), ShouldBeNil)
				So(len(listed), ShouldEqual, 0)
			})
		})

		Convey("POST /api/submissions with too many files is a 400", func() {
			rec := submitForm("1", config.AppConfig.MaxSubmissionFiles+1)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("POST /api/submissions for an unknown event is a 404", func() {
			rec := submitForm("999", 0)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestFileDownloadNotFound(t *testing.T) {
	Convey("Given the router, an unknown file name is a 404", t, func() {
		router, _ := newTestServer()
		rec := doJSON(router, http.MethodGet, "/api/files/123_missing.pdf", nil)
		So(rec.Code, ShouldEqual, http.StatusNotFound)
	})
}

func TestActivityFeed(t *testing.T) {
	Convey("Given a router with a few events created", t, func() {
		router, _ := newTestServer()
		for i := 0; i < 3; i++ {
			rec := doJSON(router, http.MethodPost, "/api/events", map[string]any{
				"password":    "0000",
				"title":       fmt.Sprintf("Event %d", i),
				"description": "d",
				"deadline":    time.Now().Format(time.RFC3339),
			})
			So(rec.Code, ShouldEqual, http.StatusCreated)
		}

		Convey("GET /api/activities honors the limit parameter", func() {
			rec := doJSON(router, http.MethodGet, "/api/activities?limit=2", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var feed []model.Activity
			So(decodeBody(rec, &feed), ShouldBeNil)
			So(len(feed), ShouldEqual, 2)
			So(feed[0].Type, ShouldEqual, model.ActivityEventCreated)
			So(feed[0].Description, ShouldContainSubstring, "Event 2")
		})
	})
}

func TestDashboardStats(t *testing.T) {
	Convey("Given one active event with a submission", t, func() {
		router, store := newTestServer()
		ctx := context.Background()
		event := &model.Event{Title: "E", Description: "d", Deadline: time.Now(), IsActive: true}
		So(store.CreateEvent(ctx, event), ShouldBeNil)
		So(store.CreateSubmission(ctx, &model.Submission{EventID: event.ID, SubmitterName: "A", SubmitterDepartment: "D"}), ShouldBeNil)

		Convey("GET /api/dashboard/stats returns the derived counters", func() {
			rec := doJSON(router, http.MethodGet, "/api/dashboard/stats", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var stats model.DashboardStats
			So(decodeBody(rec, &stats), ShouldBeNil)
			So(stats.ActiveEvents, ShouldEqual, 1)
			So(stats.TotalSubmissions, ShouldEqual, 1)
			So(stats.CompletionRate, ShouldEqual, "7%")
			So(stats.PendingSubmissions, ShouldEqual, 14)
		})
	})
}

func TestHealth(t *testing.T) {
	Convey("GET /health answers OK", t, func() {
		router, _ := newTestServer()
		rec := doJSON(router, http.MethodGet, "/health", nil)
		So(rec.Code, ShouldEqual, http.StatusOK)
		So(rec.Body.String(), ShouldEqual, "OK")
	})
}
