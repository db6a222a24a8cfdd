package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"openupload/internal/auth"
	"openupload/internal/config"
	"openupload/internal/domain/apikey"
	"openupload/internal/domain/file"
	"openupload/internal/domain/project"
	"openupload/internal/domain/user"
	"openupload/internal/storage"
	"openupload/internal/usage"
	apperrors "openupload/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct {
	tokens map[string]*auth.Claims
}

func (v *fakeVerifier) Verify(_ context.Context, rawToken string) (*auth.Claims, error) {
	claims, ok := v.tokens[rawToken]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return claims, nil
}

type fakeUsers struct {
	users map[string]*user.User
}

func (r *fakeUsers) Create(_ context.Context, input user.CreateUserInput) (*user.User, error) {
	if _, ok := r.users[input.Subject]; ok {
		return nil, apperrors.Conflict("user already exists")
	}
	u := &user.User{Subject: input.Subject, Email: input.Email, CreatedAt: time.Now()}
	r.users[input.Subject] = u
	return u, nil
}

func (r *fakeUsers) GetBySubject(_ context.Context, subject string) (*user.User, error) {
	u, ok := r.users[subject]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return u, nil
}

type fakeProjects struct {
	projects map[uuid.UUID]*project.Project
}

func (r *fakeProjects) Create(_ context.Context, input project.CreateProjectInput) (*project.Project, error) {
	p := &project.Project{
		ID:           uuid.New(),
		Name:         input.Name,
		Description:  input.Description,
		OwnerSubject: input.OwnerSubject,
		CreatedAt:    time.Now(),
	}
	r.projects[p.ID] = p
	return p, nil
}

func (r *fakeProjects) GetByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, apperrors.NotFound("project not found")
	}
	return p, nil
}

func (r *fakeProjects) ListByOwner(_ context.Context, ownerSubject string) ([]*project.Project, error) {
	var out []*project.Project
	for _, p := range r.projects {
		if p.OwnerSubject == ownerSubject {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjects) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.projects[id]; !ok {
		return apperrors.NotFound("project not found")
	}
	delete(r.projects, id)
	return nil
}

type fakeKeys struct {
	keys map[uuid.UUID]*apikey.APIKey
}

func (r *fakeKeys) Create(_ context.Context, input apikey.CreateAPIKeyInput) (*apikey.APIKey, error) {
	k := &apikey.APIKey{
		ID:           uuid.New(),
		ProjectID:    input.ProjectID,
		OwnerSubject: input.OwnerSubject,
		KeyHash:      input.KeyHash,
		KeyPrefix:    input.KeyPrefix,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	r.keys[k.ID] = k
	return k, nil
}

func (r *fakeKeys) GetByID(_ context.Context, id uuid.UUID) (*apikey.APIKey, error) {
	k, ok := r.keys[id]
	if !ok {
		return nil, apperrors.NotFound("API key not found")
	}
	return k, nil
}

func (r *fakeKeys) GetByHash(_ context.Context, hash string) (*apikey.APIKey, error) {
	for _, k := range r.keys {
		if k.KeyHash == hash {
			return k, nil
		}
	}
	return nil, apperrors.NotFound("API key not found")
}

func (r *fakeKeys) ListByOwner(_ context.Context, ownerSubject string, projectID *uuid.UUID) ([]*apikey.APIKey, error) {
	var out []*apikey.APIKey
	for _, k := range r.keys {
		if k.OwnerSubject != ownerSubject {
			continue
		}
		if projectID != nil && k.ProjectID != *projectID {
			continue
		}
		out = append(out, k)
	}
	return out, nil
}

func (r *fakeKeys) UpdateLastUsed(_ context.Context, id uuid.UUID) error {
	if k, ok := r.keys[id]; ok {
		now := time.Now()
		k.LastUsedAt = &now
	}
	return nil
}

func (r *fakeKeys) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.keys[id]; !ok {
		return apperrors.NotFound("API key not found")
	}
	delete(r.keys, id)
	return nil
}

type fakeFiles struct {
	files map[uuid.UUID]*file.File
}

func (r *fakeFiles) Create(_ context.Context, input file.CreateFileInput) (*file.File, error) {
	f := &file.File{
		ID:           uuid.New(),
		ProjectID:    input.ProjectID,
		OwnerSubject: input.OwnerSubject,
		Filename:     input.Filename,
		SizeBytes:    input.SizeBytes,
		MimeType:     input.MimeType,
		StorageKey:   input.StorageKey,
		CreatedAt:    time.Now(),
	}
	r.files[f.ID] = f
	return f, nil
}

func (r *fakeFiles) GetByID(_ context.Context, id uuid.UUID) (*file.File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, apperrors.NotFound("file not found")
	}
	return f, nil
}

func (r *fakeFiles) List(_ context.Context, filter file.ListFilesFilter) ([]*file.File, error) {
	var out []*file.File
	for _, f := range r.files {
		if f.ProjectID == filter.ProjectID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFiles) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.files[id]; !ok {
		return apperrors.NotFound("file not found")
	}
	delete(r.files, id)
	return nil
}

func (r *fakeFiles) StorageKeysByProject(_ context.Context, projectID uuid.UUID) ([]string, error) {
	var keys []string
	for _, f := range r.files {
		if f.ProjectID == projectID {
			keys = append(keys, f.StorageKey)
		}
	}
	return keys, nil
}

func (r *fakeFiles) StatsByProject(_ context.Context, projectID uuid.UUID) (*project.Stats, error) {
	s := &project.Stats{}
	for _, f := range r.files {
		if f.ProjectID == projectID {
			s.TotalStorage += f.SizeBytes
			s.TotalFiles++
		}
	}
	return s, nil
}

func (r *fakeFiles) StatsByOwner(_ context.Context, ownerSubject string) (*project.Stats, error) {
	s := &project.Stats{}
	for _, f := range r.files {
		if f.OwnerSubject == ownerSubject {
			s.TotalStorage += f.SizeBytes
			s.TotalFiles++
		}
	}
	return s, nil
}

type memBlobs struct {
	blobs    map[string][]byte
	failSave bool
}

func (b *memBlobs) Save(_ context.Context, key string, r io.Reader) (int64, error) {
	if b.failSave {
		return 0, errors.New("blob store unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	b.blobs[key] = data
	return int64(len(data)), nil
}

func (b *memBlobs) Open(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := b.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *memBlobs) Delete(_ context.Context, key string) error {
	delete(b.blobs, key)
	return nil
}

type memUsage struct {
	events []*usage.Event
}

func (m *memUsage) Record(_ context.Context, event *usage.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	m.events = append(m.events, event)
	return nil
}

func (m *memUsage) StatsByDay(_ context.Context, ownerSubject string, days int) ([]*usage.DayStat, error) {
	since := time.Now().AddDate(0, 0, -days)
	type agg struct {
		calls, successes int64
		totalLatency     float64
	}
	byDay := map[string]*agg{}
	for _, e := range m.events {
		if e.OwnerSubject != ownerSubject || e.Timestamp.Before(since) {
			continue
		}
		day := e.Timestamp.Format("2006-01-02")
		a, ok := byDay[day]
		if !ok {
			a = &agg{}
			byDay[day] = a
		}
		a.calls++
		a.totalLatency += e.ResponseTimeMS
		if e.StatusCode < 400 {
			a.successes++
		}
	}

	var out []*usage.DayStat
	for day, a := range byDay {
		out = append(out, &usage.DayStat{
			Date:         day,
			Calls:        a.calls,
			AvgLatencyMS: a.totalLatency / float64(a.calls),
			SuccessRate:  usage.SuccessRate(a.calls, a.successes),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *memUsage) Details(_ context.Context, filter usage.Filter) ([]*usage.Event, error) {
	var out []*usage.Event
	for _, e := range m.events {
		if e.OwnerSubject != filter.OwnerSubject {
			continue
		}
		if filter.ProjectID != nil && e.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.APIKeyID != nil && e.APIKeyID != *filter.APIKeyID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memUsage) CountInWindow(_ context.Context, ownerSubject string, start, end time.Time) (int64, error) {
	var count int64
	for _, e := range m.events {
		if e.OwnerSubject == ownerSubject && !e.Timestamp.Before(start) && e.Timestamp.Before(end) {
			count++
		}
	}
	return count, nil
}

func (m *memUsage) StatsForKey(_ context.Context, apiKeyID uuid.UUID, days int) (*usage.Stats, error) {
	since := time.Now().AddDate(0, 0, -days)
	var calls, successes int64
	var totalLatency float64
	for _, e := range m.events {
		if e.APIKeyID != apiKeyID || e.Timestamp.Before(since) {
			continue
		}
		calls++
		totalLatency += e.ResponseTimeMS
		if e.StatusCode < 400 {
			successes++
		}
	}

	stats := &usage.Stats{TotalCalls: calls, SuccessRate: usage.SuccessRate(calls, successes)}
	if calls > 0 {
		stats.AvgLatencyMS = totalLatency / float64(calls)
	}
	return stats, nil
}

type testEnv struct {
	server   *Server
	users    *fakeUsers
	projects *fakeProjects
	keys     *fakeKeys
	files    *fakeFiles
	blobs    *memBlobs
	usage    *memUsage
}

const (
	tokenAlice = "token-alice"
	tokenBob   = "token-bob"
)

func newTestEnv() *testEnv {
	env := &testEnv{
		users:    &fakeUsers{users: map[string]*user.User{}},
		projects: &fakeProjects{projects: map[uuid.UUID]*project.Project{}},
		keys:     &fakeKeys{keys: map[uuid.UUID]*apikey.APIKey{}},
		files:    &fakeFiles{files: map[uuid.UUID]*file.File{}},
		blobs:    &memBlobs{blobs: map[string][]byte{}},
		usage:    &memUsage{},
	}

	verifier := &fakeVerifier{tokens: map[string]*auth.Claims{
		tokenAlice: {Subject: "alice", Email: "alice@example.com", Roles: []string{"whitelisted"}},
		tokenBob:   {Subject: "bob", Email: "bob@example.com", Roles: []string{"whitelisted"}},
	}}

	authMiddleware := auth.NewMiddleware(
		verifier,
		auth.NewPrincipalResolver(env.users),
		auth.NewKeyAuthority(env.keys, env.projects, env.users),
		env.keys,
	)

	cfg := &config.Config{}
	cfg.Server.BodyLimit = "10M"
	cfg.Server.ReadTimeout = 30 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second

	env.server = NewServer(&ServerDependencies{
		Config:         cfg,
		ProjectRepo:    env.projects,
		FileRepo:       env.files,
		APIKeyRepo:     env.keys,
		UsageService:   env.usage,
		BlobStore:      env.blobs,
		AuthMiddleware: authMiddleware,
	})

	return env
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.server.echo.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) bearerJSON(method, target, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return env.do(req)
}

func (env *testEnv) keyRequest(method, target, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("X-API-Key", apiKey)
	return env.do(req)
}

func (env *testEnv) uploadByKey(apiKey, filename, content string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(content))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-API-Key", apiKey)
	return env.do(req)
}

func (env *testEnv) createProject(t *testing.T, token, name string) *project.Project {
	t.Helper()
	rec := env.bearerJSON(http.MethodPost, "/frontend/projects", token, map[string]string{"name": name})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: status %d body %s", rec.Code, rec.Body.String())
	}
	p := &project.Project{}
	if err := json.Unmarshal(rec.Body.Bytes(), p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func (env *testEnv) createKey(t *testing.T, token string, projectID uuid.UUID) string {
	t.Helper()
	rec := env.bearerJSON(http.MethodPost, "/frontend/api-keys", token, map[string]string{"project_id": projectID.String()})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create key: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		APIKey string `json:"api_key"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("create key: %v", err)
	}
	return resp.APIKey
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv()

	rec := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerRoutesRejectAnonymous(t *testing.T) {
	env := newTestEnv()

	rec := env.do(httptest.NewRequest(http.MethodGet, "/frontend/projects", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotFoundBeforeForbidden(t *testing.T) {
	env := newTestEnv()
	p := env.createProject(t, tokenAlice, "alice-project")

	// Missing id reads as not found for everyone.
	rec := env.bearerJSON(http.MethodGet, "/frontend/projects/"+uuid.NewString(), tokenBob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Existing but foreign id reads as forbidden, never not found.
	rec = env.bearerJSON(http.MethodGet, "/frontend/projects/"+p.ID.String(), tokenBob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.bearerJSON(http.MethodDelete, "/frontend/projects/"+p.ID.String(), tokenBob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.bearerJSON(http.MethodGet, "/frontend/projects/"+p.ID.String(), tokenAlice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyLifecycle(t *testing.T) {
	env := newTestEnv()
	p := env.createProject(t, tokenAlice, "alice-project")
	secret := env.createKey(t, tokenAlice, p.ID)

	// The owner can verify the secret.
	rec := env.bearerJSON(http.MethodGet, "/frontend/api-keys/verify?api_key="+secret, tokenAlice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Others cannot tell the key exists.
	rec = env.bearerJSON(http.MethodGet, "/frontend/api-keys/verify?api_key="+secret, tokenBob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var keys []*apikey.APIKey
	rec = env.bearerJSON(http.MethodGet, "/frontend/api-keys?project_id="+p.ID.String(), tokenAlice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &keys))
	assert.Len(t, keys, 1)

	// The project detail embeds the keys, never their hashes.
	rec = env.bearerJSON(http.MethodGet, "/frontend/projects/"+p.ID.String(), tokenAlice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Keys []map[string]any `json:"keys"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Len(t, detail.Keys, 1)
	assert.NotContains(t, detail.Keys[0], "key_hash")
	assert.NotContains(t, rec.Body.String(), secret)

	// Deactivated keys fail resolution even with the right secret.
	env.keys.keys[keys[0].ID].IsActive = false
	rec = env.keyRequest(http.MethodGet, "/api/v1/files/list", secret)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeletedFileStaysGone(t *testing.T) {
	env := newTestEnv()
	p := env.createProject(t, tokenAlice, "alice-project")
	secret := env.createKey(t, tokenAlice, p.ID)

	rec := env.uploadByKey(secret, "report.pdf", "content")
	assert.Equal(t, http.StatusCreated, rec.Code)

	uploaded := &file.File{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), uploaded))

	rec = env.do(httptest.NewRequest(http.MethodGet, "/files/"+uploaded.ID.String(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "content", rec.Body.String())

	rec = env.keyRequest(http.MethodDelete, "/api/v1/files/"+uploaded.ID.String(), secret)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, env.blobs.blobs)

	// Gone is gone, on repeat too.
	rec = env.do(httptest.NewRequest(http.MethodGet, "/files/"+uploaded.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(httptest.NewRequest(http.MethodGet, "/files/"+uploaded.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadMetersExactlyOneEvent(t *testing.T) {
	env := newTestEnv()
	p := env.createProject(t, tokenAlice, "alice-project")
	secret := env.createKey(t, tokenAlice, p.ID)

	rec := env.uploadByKey(secret, "a.txt", "hello")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, env.usage.events, 1)
	assert.Equal(t, http.StatusCreated, env.usage.events[0].StatusCode)
	assert.Equal(t, p.ID, env.usage.events[0].ProjectID)
	assert.Equal(t, "alice", env.usage.events[0].OwnerSubject)

	// A failed upload still produces exactly one event, with the error code.
	env.blobs.failSave = true
	rec = env.uploadByKey(secret, "b.txt", "hello")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, env.usage.events, 2)
	assert.Equal(t, http.StatusInternalServerError, env.usage.events[1].StatusCode)
}

func TestRejectedKeyRequestsAreNotMetered(t *testing.T) {
	env := newTestEnv()

	rec := env.keyRequest(http.MethodGet, "/api/v1/files/list", "ou_sk_bogus")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, env.usage.events)
}

func TestEndToEndScenario(t *testing.T) {
	env := newTestEnv()

	p := env.createProject(t, tokenAlice, "pipeline")
	secret := env.createKey(t, tokenAlice, p.ID)

	rec := env.uploadByKey(secret, "data.csv", "a,b,c")
	assert.Equal(t, http.StatusCreated, rec.Code)
	uploaded := &file.File{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), uploaded))

	var listed []*file.File
	rec = env.keyRequest(http.MethodGet, "/api/v1/files/list", secret)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
	assert.Equal(t, uploaded.ID, listed[0].ID)

	rec = env.keyRequest(http.MethodDelete, "/api/v1/files/"+uploaded.ID.String(), secret)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.keyRequest(http.MethodGet, "/api/v1/files/list", secret)
	assert.Equal(t, http.StatusOK, rec.Code)
	listed = nil
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	rec = env.bearerJSON(http.MethodGet, "/frontend/usage/dashboard-stats", tokenAlice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var dashboard struct {
		TotalFiles      int64 `json:"total_files"`
		RequestsLast30d int64 `json:"requests_last_30d"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
	assert.Equal(t, int64(0), dashboard.TotalFiles)
	assert.Equal(t, int64(4), dashboard.RequestsLast30d)
}

func TestKeyScopedToBoundProject(t *testing.T) {
	env := newTestEnv()

	alice := env.createProject(t, tokenAlice, "alice-project")
	bob := env.createProject(t, tokenBob, "bob-project")

	aliceKey := env.createKey(t, tokenAlice, alice.ID)
	bobKey := env.createKey(t, tokenBob, bob.ID)

	rec := env.uploadByKey(aliceKey, "secret.txt", "alice data")
	assert.Equal(t, http.StatusCreated, rec.Code)
	uploaded := &file.File{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), uploaded))

	// Bob's key sees only its own project.
	var listed []*file.File
	rec = env.keyRequest(http.MethodGet, "/api/v1/files/list", bobKey)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	// Existing foreign file: forbidden, not found only when truly absent.
	rec = env.keyRequest(http.MethodDelete, "/api/v1/files/"+uploaded.ID.String(), bobKey)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.keyRequest(http.MethodDelete, "/api/v1/files/"+uuid.NewString(), bobKey)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoleGateOnUsageRoutes(t *testing.T) {
	env := newTestEnv()

	// carol is authenticated but not whitelisted.
	envVerifier := &fakeVerifier{tokens: map[string]*auth.Claims{
		"token-carol": {Subject: "carol", Email: "carol@example.com"},
	}}
	authMiddleware := auth.NewMiddleware(
		envVerifier,
		auth.NewPrincipalResolver(env.users),
		auth.NewKeyAuthority(env.keys, env.projects, env.users),
		env.keys,
	)

	cfg := &config.Config{}
	cfg.Server.BodyLimit = "10M"

	server := NewServer(&ServerDependencies{
		Config:         cfg,
		ProjectRepo:    env.projects,
		FileRepo:       env.files,
		APIKeyRepo:     env.keys,
		UsageService:   env.usage,
		BlobStore:      env.blobs,
		AuthMiddleware: authMiddleware,
	})

	req := httptest.NewRequest(http.MethodGet, "/frontend/usage/dashboard-stats", nil)
	req.Header.Set("Authorization", "Bearer token-carol")
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Projects remain reachable without the role.
	req = httptest.NewRequest(http.MethodGet, "/frontend/projects", nil)
	req.Header.Set("Authorization", "Bearer token-carol")
	rec = httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
