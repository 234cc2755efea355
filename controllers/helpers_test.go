package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rosa-lindqvist/jeweller-journal-api/models"
	"github.com/rosa-lindqvist/jeweller-journal-api/services"
)

// envelope mirrors the response wrapper every endpoint uses
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// testEnv is one fully wired application instance over an in-memory database
// and a temp-dir storage root
type testEnv struct {
	router      *gin.Engine
	db          *gorm.DB
	storage     *services.LocalStorage
	storageRoot string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// one connection so the in-memory database is shared across requests
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Order{},
		&models.OrderReminder{},
		&models.JournalEntry{},
		&models.Attachment{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	root := t.TempDir()
	storage, err := services.NewLocalStorage(root)
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}

	router := gin.New()
	RegisterRoutes(router, db, storage)

	return &testEnv{router: router, db: db, storage: storage, storageRoot: root}
}

// do performs a JSON request against the test router
func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		// attachment file responses are raw bytes, not envelopes; callers
		// that expect those ignore the decode result
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

// doUpload performs a multipart attachment upload
func (e *testEnv) doUpload(t *testing.T, path, userID, kind, filename, content string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("user_id", userID); err != nil {
		t.Fatalf("Failed to write user_id field: %v", err)
	}
	if kind != "" {
		if err := writer.WriteField("kind", kind); err != nil {
			t.Fatalf("Failed to write kind field: %v", err)
		}
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write file content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

// decodeData unmarshals the data portion of an envelope into target
func decodeData(t *testing.T, env envelope, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, target); err != nil {
		t.Fatalf("Failed to decode response data: %v", err)
	}
}

// seedOrder inserts an order directly, bypassing the API
func (e *testEnv) seedOrder(t *testing.T, userID int64, client, number, status, priority string, deadline models.Date) models.Order {
	t.Helper()
	order := models.Order{
		UserID:      userID,
		Client:      client,
		OrderNumber: number,
		Status:      status,
		Priority:    priority,
		Deadline:    deadline,
	}
	if err := e.db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}

// seedEntry inserts a journal entry directly, bypassing the API
func (e *testEnv) seedEntry(t *testing.T, userID int64, title string, entryDate models.Date, tags string, orderID *uint) models.JournalEntry {
	t.Helper()
	entry := models.JournalEntry{
		UserID:    userID,
		Title:     title,
		EntryDate: entryDate,
		Tags:      tags,
		OrderID:   orderID,
	}
	if err := e.db.Create(&entry).Error; err != nil {
		t.Fatalf("Failed to seed journal entry: %v", err)
	}
	return entry
}
