package setupstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
)

// fakeAPI is an in-memory stand-in for the persistence service speaking the
// same envelope and status contract.
type fakeAPI struct {
	mu        sync.Mutex
	templates map[int64]*domain.SetupTemplate
	setups    map[int64]*domain.WeeklySetup
	nextID    int64
	requests  map[string]int
	lastBody  []byte
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		templates: make(map[int64]*domain.SetupTemplate),
		setups:    make(map[int64]*domain.WeeklySetup),
		requests:  make(map[string]int),
	}
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[key]
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/setup-sheet-templates", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		list := make([]*domain.SetupTemplate, 0, len(f.templates))
		for _, t := range f.templates {
			list = append(list, t)
		}
		f.requests["GET templates"]++
		f.mu.Unlock()
		writeEnvelope(w, http.StatusOK, true, "ok", list)
	})

	mux.HandleFunc("POST /api/setup-sheet-templates", func(w http.ResponseWriter, r *http.Request) {
		var template domain.SetupTemplate
		if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
			writeEnvelope(w, http.StatusBadRequest, false, err.Error(), nil)
			return
		}
		f.mu.Lock()
		f.nextID++
		template.ID = f.nextID
		template.CreatedAt = time.Now().UTC()
		template.UpdatedAt = template.CreatedAt
		f.templates[template.ID] = &template
		f.requests["POST templates"]++
		f.mu.Unlock()
		writeEnvelope(w, http.StatusCreated, true, "created", template)
	})

	mux.HandleFunc("DELETE /api/setup-sheet-templates/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		f.mu.Lock()
		_, exists := f.templates[id]
		delete(f.templates, id)
		f.requests["DELETE templates"]++
		f.mu.Unlock()
		if !exists {
			writeEnvelope(w, http.StatusNotFound, false, "setup template not found", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, "deleted", nil)
	})

	mux.HandleFunc("GET /api/weekly-setups", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		list := make([]*domain.WeeklySetup, 0, len(f.setups))
		for _, s := range f.setups {
			list = append(list, s)
		}
		f.requests["GET setups"]++
		f.mu.Unlock()
		writeEnvelope(w, http.StatusOK, true, "ok", list)
	})

	mux.HandleFunc("POST /api/weekly-setups", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeEnvelope(w, http.StatusBadRequest, false, err.Error(), nil)
			return
		}
		var setup domain.WeeklySetup
		if err := json.Unmarshal(body, &setup); err != nil {
			writeEnvelope(w, http.StatusBadRequest, false, err.Error(), nil)
			return
		}
		f.mu.Lock()
		f.nextID++
		setup.ID = f.nextID
		setup.CreatedAt = time.Now().UTC()
		setup.UpdatedAt = setup.CreatedAt
		f.setups[setup.ID] = &setup
		f.requests["POST setups"]++
		f.lastBody = body
		f.mu.Unlock()
		writeEnvelope(w, http.StatusCreated, true, "created", setup)
	})

	mux.HandleFunc("PUT /api/weekly-setups/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var update struct {
			Name         *string              `json:"name"`
			WeekSchedule *domain.WeekSchedule `json:"weekSchedule"`
		}
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			writeEnvelope(w, http.StatusBadRequest, false, err.Error(), nil)
			return
		}
		f.mu.Lock()
		setup, exists := f.setups[id]
		if exists {
			if update.Name != nil {
				setup.Name = *update.Name
			}
			if update.WeekSchedule != nil {
				setup.WeekSchedule = update.WeekSchedule
			}
			setup.UpdatedAt = time.Now().UTC()
		}
		f.requests["PUT setups"]++
		f.mu.Unlock()
		if !exists {
			writeEnvelope(w, http.StatusNotFound, false, "weekly setup not found", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, "updated", setup)
	})

	return mux
}

func newTestStore(t *testing.T, api *fakeAPI, opts ...Option) *Store {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL, func() string { return "test-token" }, opts...)
}

func registerWeek() *domain.WeekSchedule {
	ws := domain.NewWeekSchedule()
	ws.Days[domain.Monday] = &domain.DaySchedule{TimeBlocks: []domain.TimeBlock{
		{
			ID:    "block-a",
			Start: "09:00",
			End:   "13:00",
			Positions: []domain.Position{
				{ID: "pos-a", Name: "Register", Category: "Register", Section: domain.AreaFOH, Count: 2},
			},
		},
		{
			ID:    "block-b",
			Start: "12:00",
			End:   "16:00",
			Positions: []domain.Position{
				{ID: "pos-b", Name: "Register", Category: "Register", Section: domain.AreaFOH, Count: 1},
			},
		},
	}}
	return ws
}

func TestTemplateRoundTrip(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)
	ctx := context.Background()

	created, err := store.CreateTemplate(ctx, "Weekday Rush", registerWeek())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, created, store.CurrentTemplate())
	assert.Empty(t, store.LastError())

	require.NoError(t, store.LoadTemplates(ctx))
	templates := store.Templates()
	require.Len(t, templates, 1)
	assert.Equal(t, "Weekday Rush", templates[0].Name)
	require.NoError(t, templates[0].WeekSchedule.Validate())
	// structural equality modulo server-assigned fields
	assert.Equal(t, created.WeekSchedule, templates[0].WeekSchedule)
}

func TestCreateTemplateRejectsPartialWeek(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)

	ws := &domain.WeekSchedule{Days: map[domain.Weekday]*domain.DaySchedule{
		domain.Monday: {},
	}}
	_, err := store.CreateTemplate(context.Background(), "Broken", ws)

	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
	assert.Equal(t, domain.ErrInvalidSchedule.Error(), store.LastError())
	// the malformed schedule never reaches the network
	assert.Zero(t, api.count("POST templates"))
}

func TestDeleteTemplateKeepsListConsistent(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)
	ctx := context.Background()

	created, err := store.CreateTemplate(ctx, "Weekday Rush", registerWeek())
	require.NoError(t, err)

	require.NoError(t, store.DeleteTemplate(ctx, created.ID))
	assert.Empty(t, store.Templates())
	assert.Nil(t, store.CurrentTemplate())
}

func TestCreateWeeklySetupRejectsBadDateRange(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)

	setup := &domain.WeeklySetup{
		Name:         "Week of Apr 14",
		StartDate:    time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC),
		WeekSchedule: registerWeek(),
	}
	_, err := store.CreateWeeklySetup(context.Background(), setup)

	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	assert.Zero(t, api.count("POST setups"))
}

func TestInstantiateTemplateRoundTrip(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)
	ctx := context.Background()

	created, err := store.CreateTemplate(ctx, "Weekday Rush", registerWeek())
	require.NoError(t, err)

	startDate := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)
	setup, err := store.InstantiateTemplate(ctx, created.ID, startDate)
	require.NoError(t, err)

	assert.NotZero(t, setup.ID)
	assert.True(t, setup.StartDate.Equal(startDate))
	assert.True(t, setup.EndDate.Equal(startDate.AddDate(0, 0, 6)))
	require.NoError(t, setup.WeekSchedule.Validate())
	for _, block := range setup.WeekSchedule.Days[domain.Monday].TimeBlocks {
		for _, pos := range block.Positions {
			assert.Empty(t, pos.EmployeeIDs)
		}
	}
	assert.Equal(t, setup, store.CurrentWeeklySetup())
}

func TestInstantiateUnknownTemplate(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)

	_, err := store.InstantiateTemplate(context.Background(), 42, time.Now())

	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	assert.Zero(t, api.count("POST setups"))
}

func weekOfApril14(ws *domain.WeekSchedule) *domain.WeeklySetup {
	return &domain.WeeklySetup{
		Name:         "Week of Apr 14",
		StartDate:    time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
		WeekSchedule: ws,
	}
}

func TestAssignEmployeeHappyPath(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)
	ctx := context.Background()

	_, err := store.CreateWeeklySetup(ctx, weekOfApril14(registerWeek()))
	require.NoError(t, err)

	updated, err := store.AssignEmployee(ctx, domain.Monday, "block-a", "pos-a", "emp-1")
	require.NoError(t, err)

	pos := updated.WeekSchedule.Days[domain.Monday].TimeBlocks[0].Positions[0]
	assert.Equal(t, []string{"emp-1"}, pos.EmployeeIDs)
	// the store replaced the whole current entity
	assert.Equal(t, updated, store.CurrentWeeklySetup())
	assert.Equal(t, 1, api.count("PUT setups"))
}

func TestAssignEmployeeConflictNeverHitsNetwork(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)
	ctx := context.Background()

	_, err := store.CreateWeeklySetup(ctx, weekOfApril14(registerWeek()))
	require.NoError(t, err)

	_, err = store.AssignEmployee(ctx, domain.Monday, "block-a", "pos-a", "emp-1")
	require.NoError(t, err)

	// block-b overlaps block-a on [12:00,13:00)
	_, err = store.AssignEmployee(ctx, domain.Monday, "block-b", "pos-b", "emp-1")

	var conflictErr *domain.AssignmentConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "block-a", conflictErr.BlockID)
	assert.Equal(t, err.Error(), store.LastError())
	// only the admitted assignment reached the server
	assert.Equal(t, 1, api.count("PUT setups"))
}

func TestAssignEmployeePositionFull(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)
	ctx := context.Background()

	_, err := store.CreateWeeklySetup(ctx, weekOfApril14(registerWeek()))
	require.NoError(t, err)

	_, err = store.AssignEmployee(ctx, domain.Monday, "block-b", "pos-b", "emp-1")
	require.NoError(t, err)

	_, err = store.AssignEmployee(ctx, domain.Monday, "block-b", "pos-b", "emp-2")
	var fullErr *domain.PositionFullError
	require.ErrorAs(t, err, &fullErr)

	// re-assigning the occupant is admitted and stays a single occupancy
	updated, err := store.AssignEmployee(ctx, domain.Monday, "block-b", "pos-b", "emp-1")
	require.NoError(t, err)
	pos := updated.WeekSchedule.Days[domain.Monday].TimeBlocks[1].Positions[0]
	assert.Equal(t, []string{"emp-1"}, pos.EmployeeIDs)
}

func TestUnassignEmployee(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api)
	ctx := context.Background()

	_, err := store.CreateWeeklySetup(ctx, weekOfApril14(registerWeek()))
	require.NoError(t, err)
	_, err = store.AssignEmployee(ctx, domain.Monday, "block-a", "pos-a", "emp-1")
	require.NoError(t, err)

	updated, err := store.UnassignEmployee(ctx, domain.Monday, "block-a", "pos-a", "emp-1")
	require.NoError(t, err)
	assert.Empty(t, updated.WeekSchedule.Days[domain.Monday].TimeBlocks[0].Positions[0].EmployeeIDs)
}

func bulkUploads(n int, notes string) []domain.UploadedShift {
	uploads := make([]domain.UploadedShift, 0, n)
	for i := 0; i < n; i++ {
		uploads = append(uploads, domain.UploadedShift{
			ID:         fmt.Sprintf("upload-%d", i),
			Name:       fmt.Sprintf("Team Member %d", i),
			TimeBlock:  "09:00-13:00",
			Area:       domain.AreaFOH,
			Day:        "monday",
			ShiftStart: "09:00",
			ShiftEnd:   "13:00",
			Position:   "Register",
			Notes:      notes,
		})
	}
	return uploads
}

func TestCreateWeeklySetupTrimsOversizedPayload(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api, WithPayloadLimit(32*1024))
	ctx := context.Background()

	setup := weekOfApril14(registerWeek())
	setup.UploadedSchedules = bulkUploads(100, strings.Repeat("x", 1024))

	original, err := json.Marshal(weeklySetupPayload{
		Name:              setup.Name,
		StartDate:         setup.StartDate,
		EndDate:           setup.EndDate,
		WeekSchedule:      setup.WeekSchedule,
		UploadedSchedules: setup.UploadedSchedules,
	})
	require.NoError(t, err)
	require.Greater(t, len(original), 32*1024)

	created, err := store.CreateWeeklySetup(ctx, setup)
	require.NoError(t, err)

	// the submitted body shrank
	api.mu.Lock()
	submitted := api.lastBody
	api.mu.Unlock()
	assert.Less(t, len(submitted), len(original))

	// every entry kept the fields needed to reconstruct assignments and
	// nothing else
	require.Len(t, created.UploadedSchedules, 100)
	for i, entry := range created.UploadedSchedules {
		assert.Equal(t, fmt.Sprintf("upload-%d", i), entry.ID)
		assert.Equal(t, fmt.Sprintf("Team Member %d", i), entry.Name)
		assert.Equal(t, "09:00-13:00", entry.TimeBlock)
		assert.Equal(t, domain.AreaFOH, entry.Area)
		assert.Equal(t, "monday", entry.Day)
		assert.Empty(t, entry.Notes)
		assert.Empty(t, entry.Position)
	}
}

func TestCreateWeeklySetupKeepsSmallPayloadIntact(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore(t, api, WithPayloadLimit(1<<20))
	ctx := context.Background()

	setup := weekOfApril14(registerWeek())
	setup.UploadedSchedules = bulkUploads(3, "short note")

	created, err := store.CreateWeeklySetup(ctx, setup)
	require.NoError(t, err)
	require.Len(t, created.UploadedSchedules, 3)
	assert.Equal(t, "short note", created.UploadedSchedules[0].Notes)
	assert.Equal(t, "Register", created.UploadedSchedules[0].Position)
}

func TestPayloadTooLargeTranslated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	store := New(srv.URL, func() string { return "test-token" })
	_, err := store.CreateWeeklySetup(context.Background(), weekOfApril14(registerWeek()))

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, transportErr.StatusCode)
	assert.Equal(t, PayloadTooLargeMessage, transportErr.Message)
	assert.Contains(t, store.LastError(), PayloadTooLargeMessage)
}

func TestServerMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, false, "a template with this name already exists", nil)
	}))
	defer srv.Close()

	store := New(srv.URL, func() string { return "test-token" })
	_, err := store.CreateTemplate(context.Background(), "Weekday Rush", registerWeek())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadRequest, transportErr.StatusCode)
	assert.Equal(t, "a template with this name already exists", transportErr.Message)
	assert.Equal(t, transportErr.Error(), store.LastError())
}

func TestUnparseableErrorBodyGetsGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	store := New(srv.URL, func() string { return "test-token" })
	err := store.LoadTemplates(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
	assert.Contains(t, transportErr.Message, "request failed with status 500")
}

func TestRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	store := New(srv.URL, func() string { return "test-token" }, WithRequestTimeout(50*time.Millisecond))
	err := store.LoadTemplates(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Message, "timed out")
	assert.False(t, store.IsLoading())
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, true, "ok", []*domain.SetupTemplate{})
	}))
	defer srv.Close()

	store := New(srv.URL, func() string { return "session-token" })
	require.NoError(t, store.LoadTemplates(context.Background()))
	assert.Equal(t, "Bearer session-token", gotAuth)
}
