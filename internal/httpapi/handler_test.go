package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hagwon/internal/attendance"
	"hagwon/internal/errs"
	"hagwon/internal/kiosk"
	"hagwon/internal/message"
	"hagwon/internal/roster"
	"hagwon/internal/tuition"
)

// memStore is an in-memory stand-in for the Postgres repositories. It
// mimics the schema's semantics, including the cascade from students
// to their attendance and tuition rows.
type memStore struct {
	students   []roster.Student
	classes    []roster.Class
	attendance map[string]attendance.Record
	tuitions   map[string]tuition.Record
	templates  []message.Template
	nextID     int
}

func newMemStore() *memStore {
	return &memStore{
		attendance: make(map[string]attendance.Record),
		tuitions:   make(map[string]tuition.Record),
	}
}

// roster.Store

func (m *memStore) ListStudents(ctx context.Context) ([]roster.Student, error) {
	return m.students, nil
}

func (m *memStore) CreateStudent(ctx context.Context, s roster.Student) (roster.Student, error) {
	m.nextID++
	s.ID = fmt.Sprintf("s%d", m.nextID)
	m.students = append(m.students, s)
	return s, nil
}

func (m *memStore) UpdateStudent(ctx context.Context, s roster.Student) (roster.Student, error) {
	for i := range m.students {
		if m.students[i].ID == s.ID {
			m.students[i] = s
			return s, nil
		}
	}
	return roster.Student{}, errs.ErrNotFound
}

func (m *memStore) DeleteStudent(ctx context.Context, id string) error {
	for i := range m.students {
		if m.students[i].ID == id {
			m.students = append(m.students[:i], m.students[i+1:]...)
			for k, rec := range m.attendance {
				if rec.StudentID == id {
					delete(m.attendance, k)
				}
			}
			for k, rec := range m.tuitions {
				if rec.StudentID == id {
					delete(m.tuitions, k)
				}
			}
			return nil
		}
	}
	return errs.ErrNotFound
}

func (m *memStore) GetStudent(ctx context.Context, id string) (roster.Student, error) {
	for _, s := range m.students {
		if s.ID == id {
			return s, nil
		}
	}
	return roster.Student{}, errs.ErrNotFound
}

func (m *memStore) FindStudentByPasscode(ctx context.Context, passcode string) (roster.Student, error) {
	for _, s := range m.students {
		if s.Passcode == passcode {
			return s, nil
		}
	}
	return roster.Student{}, errs.ErrNotFound
}

func (m *memStore) ListClasses(ctx context.Context) ([]roster.Class, error) { return m.classes, nil }

func (m *memStore) ClassExists(ctx context.Context, name string) (bool, error) {
	for _, c := range m.classes {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateClass(ctx context.Context, name string) (roster.Class, error) {
	c := roster.Class{ID: len(m.classes) + 1, Name: name}
	m.classes = append(m.classes, c)
	return c, nil
}

// attendance.Store

func (m *memStore) Upsert(ctx context.Context, rec attendance.Record) error {
	m.attendance[attendance.Key(rec.StudentID, rec.Date)] = rec
	return nil
}

func (m *memStore) UpsertStatus(ctx context.Context, studentID, date, status string) error {
	k := attendance.Key(studentID, date)
	rec := m.attendance[k]
	rec.StudentID = studentID
	rec.Date = date
	rec.Status = status
	m.attendance[k] = rec
	return nil
}

func (m *memStore) ListByDate(ctx context.Context, date string) ([]attendance.DayEntry, error) {
	var entries []attendance.DayEntry
	for _, rec := range m.attendance {
		if rec.Date == date {
			class := ""
			if s, err := m.GetStudent(ctx, rec.StudentID); err == nil {
				class = s.ClassName
			}
			entries = append(entries, attendance.DayEntry{
				StudentID: rec.StudentID, Status: rec.Status, Memo: rec.Memo, ClassName: class,
			})
		}
	}
	return entries, nil
}

func (m *memStore) ListAll(ctx context.Context) ([]attendance.Record, error) {
	var recs []attendance.Record
	for _, rec := range m.attendance {
		recs = append(recs, rec)
	}
	return recs, nil
}

func (m *memStore) ListRange(ctx context.Context, from, to string) ([]attendance.Record, error) {
	var recs []attendance.Record
	for _, rec := range m.attendance {
		if rec.Date >= from && rec.Date <= to {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

// tuition.Store

func (m *memStore) UpsertTuition(rec tuition.Record) (tuition.Record, error) {
	k := fmt.Sprintf("%s-%d-%d", rec.StudentID, rec.Year, rec.Month)
	rec.ID = "t-" + k
	m.tuitions[k] = rec
	return rec, nil
}

func (m *memStore) ListByYear(ctx context.Context, year int) ([]tuition.Record, error) {
	var recs []tuition.Record
	for _, rec := range m.tuitions {
		if rec.Year == year {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

// message.TemplateStore

func (m *memStore) ListTemplates(ctx context.Context) ([]message.Template, error) {
	out := make([]message.Template, len(m.templates))
	for i, t := range m.templates {
		out[len(m.templates)-1-i] = t // newest first
	}
	return out, nil
}

func (m *memStore) CreateTemplate(ctx context.Context, content string) (message.Template, error) {
	t := message.Template{ID: len(m.templates) + 1, Content: content, CreatedAt: time.Now()}
	m.templates = append(m.templates, t)
	return t, nil
}

func (m *memStore) DeleteTemplate(ctx context.Context, id int) error {
	for i, t := range m.templates {
		if t.ID == id {
			m.templates = append(m.templates[:i], m.templates[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

type tuitionStoreAdapter struct{ *memStore }

func (a tuitionStoreAdapter) Upsert(ctx context.Context, rec tuition.Record) (tuition.Record, error) {
	return a.UpsertTuition(rec)
}

func newTestRouter(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	rosterSvc := roster.NewService(store)
	attendanceSvc := attendance.NewService(store)
	tuitionSvc := tuition.NewService(tuitionStoreAdapter{store})
	kioskSvc := kiosk.NewService(rosterSvc, attendanceSvc, nil)

	h := New(rosterSvc, attendanceSvc, tuitionSvc, store, kioskSvc, nil, nil)
	r := gin.New()
	h.Register(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func seedStudent(t *testing.T, store *memStore, name, phone, passcode, class string) roster.Student {
	t.Helper()
	s, err := store.CreateStudent(context.Background(), roster.Student{
		Name: name, ParentPhone: phone, Passcode: passcode, ClassName: class,
	})
	require.NoError(t, err)
	return s
}

func TestCreateStudentValidationAndNormalization(t *testing.T) {
	r := newTestRouter(newMemStore())

	rec := doJSON(t, r, http.MethodPost, "/api/students", gin.H{"parentPhone": "010-1", "passcode": "1234"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/students", gin.H{
		"name": "김민수", "parentPhone": "010-1111-2222", "passcode": "12345", "className": "월수금반",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created roster.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "1234", created.Passcode)
}

func TestUpdateUnknownStudentIs404(t *testing.T) {
	r := newTestRouter(newMemStore())

	rec := doJSON(t, r, http.MethodPut, "/api/students/nope", gin.H{
		"name": "김민수", "parentPhone": "010-1", "passcode": "1234",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteStudentCascadesAttendance(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)
	s := seedStudent(t, store, "김민수", "010-1", "1234", "")

	rec := doJSON(t, r, http.MethodPost, "/api/attendance", gin.H{
		"studentId": s.ID, "date": "2024-03-15", "status": "출석",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.attendance, 1)

	rec = doJSON(t, r, http.MethodDelete, "/api/students/"+s.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.attendance, "deleting a student removes its attendance records")
}

func TestClassConflict(t *testing.T) {
	r := newTestRouter(newMemStore())

	rec := doJSON(t, r, http.MethodPost, "/api/classes", gin.H{"name": "월수금반"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/classes", gin.H{"name": "월수금반"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceUpsertIsIdempotentPerKey(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)
	s := seedStudent(t, store, "김민수", "010-1", "1234", "")

	rec := doJSON(t, r, http.MethodPost, "/api/attendance", gin.H{
		"studentId": s.ID, "date": "2024-03-15", "status": "결석",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/attendance", gin.H{
		"studentId": s.ID, "date": "2024-03-15", "status": "출석",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, store.attendance, 1, "one row per (student, date)")
	assert.Equal(t, "출석", store.attendance[attendance.Key(s.ID, "2024-03-15")].Status)

	rec = doJSON(t, r, http.MethodGet, "/api/attendance?date=2024-03-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []attendance.DayEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "출석", entries[0].Status)
}

func TestAttendanceRejectsUnknownStatus(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)
	s := seedStudent(t, store, "김민수", "010-1", "1234", "")

	rec := doJSON(t, r, http.MethodPost, "/api/attendance", gin.H{
		"studentId": s.ID, "date": "2024-03-15", "status": "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.attendance)
}

func TestTuitionUnpaidClearsDate(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)
	s := seedStudent(t, store, "김민수", "010-1", "1234", "")

	rec := doJSON(t, r, http.MethodPost, "/api/tuition", gin.H{
		"student_id": s.ID, "year": 2024, "month": 3, "status": "paid", "payment_date": "2024-03-05",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/tuition", gin.H{
		"student_id": s.ID, "year": 2024, "month": 3, "status": "unpaid",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Record tuition.Record `json:"record"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Record.PaymentDate)
	assert.Len(t, store.tuitions, 1)
}

func TestKioskCheckIn(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)
	seedStudent(t, store, "김민수", "010-1111-2222", "1234", "")

	// malformed passcode
	rec := doJSON(t, r, http.MethodPost, "/api/kiosk/check-in", gin.H{"passcode": "12"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown passcode leaves attendance unchanged
	rec = doJSON(t, r, http.MethodPost, "/api/kiosk/check-in", gin.H{"passcode": "0000"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.attendance)

	// valid passcode marks today present and returns the contact
	rec = doJSON(t, r, http.MethodPost, "/api/kiosk/check-in", gin.H{"passcode": "1234"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Student struct {
			Name        string `json:"name"`
			ParentPhone string `json:"parentPhone"`
		} `json:"student"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "김민수", resp.Student.Name)
	assert.Equal(t, "010-1111-2222", resp.Student.ParentPhone)

	today := attendance.FormatDate(time.Now())
	assert.Equal(t, "출석", store.attendance[attendance.Key("s1", today)].Status)
}

func TestTemplateLifecycle(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)

	rec := doJSON(t, r, http.MethodPost, "/api/message-templates", gin.H{"content": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/message-templates", gin.H{"content": "3월 수강료 안내입니다."})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, r, http.MethodPost, "/api/message-templates", gin.H{"content": "여름 특강 안내"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/message-templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var templates []message.Template
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &templates))
	require.Len(t, templates, 2)
	assert.Equal(t, "여름 특강 안내", templates[0].Content, "newest first")

	rec = doJSON(t, r, http.MethodDelete, "/api/message-templates?id=999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/message-templates?id=%d", templates[0].ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestComposeBulk(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)
	a := seedStudent(t, store, "김민수", "010-1111-2222", "1234", "월수금반")
	b := seedStudent(t, store, "이지원", "010-3333-4444", "5678", "화목토반")

	rec := doJSON(t, r, http.MethodPost, "/api/messages/bulk", gin.H{
		"studentIds": []string{a.ID, b.ID}, "body": "내일 휴원합니다.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var bulk message.Bulk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bulk))
	assert.Equal(t, "010-1111-2222,010-3333-4444", bulk.Recipients)
	assert.Contains(t, bulk.SMSLink, "?body=")
}

func TestAttendanceGrid(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)
	s := seedStudent(t, store, "김민수", "010-1", "1234", "월수금반")
	seedStudent(t, store, "이지원", "010-2", "5678", "화목토반")

	rec := doJSON(t, r, http.MethodPost, "/api/attendance", gin.H{
		"studentId": s.ID, "date": "2024-03-11", "status": "출석",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/attendance/grid?view=week&date=2024-03-13&class=월수금반", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var grid attendance.Grid
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grid))
	require.Len(t, grid.Dates, 5)
	assert.Equal(t, "2024-03-11", grid.Dates[0])
	require.Len(t, grid.Rows, 1, "class filter narrows the rows")
	assert.Equal(t, "출석", grid.Rows[0].Cells[0].Status)
}
