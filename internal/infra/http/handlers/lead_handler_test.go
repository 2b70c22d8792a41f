package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type stubRepository struct {
	createErr  error
	listErr    error
	advanceErr error
	leads      []*entity.Lead
}

func (s *stubRepository) Create(_ context.Context, lead *entity.Lead) error {
	if s.createErr != nil {
		return s.createErr
	}
	lead.ID = int64(len(s.leads) + 1)
	s.leads = append(s.leads, lead)
	return nil
}

func (s *stubRepository) List(context.Context) ([]*entity.Lead, error) {
	return s.leads, s.listErr
}

func (s *stubRepository) FindByID(_ context.Context, id int64) (*entity.Lead, error) {
	for _, l := range s.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, entity.ErrLeadNotFound
}

func (s *stubRepository) AdvanceState(ctx context.Context, id int64) (*entity.Lead, error) {
	if s.advanceErr != nil {
		return nil, s.advanceErr
	}
	lead, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lead.CanAdvance() {
		return nil, entity.ErrInvalidStateTransition
	}
	lead.State = entity.LeadStateReachedOut
	return lead, nil
}

type stubFileStore struct{}

func (stubFileStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return "resumes/" + filename, nil
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, string) error { return nil }

func newTestLeadHandler(repo *stubRepository, maxUpload int64) *LeadHandler {
	submit := usecase.NewSubmitLeadUseCase(repo, stubFileStore{}, nopNotifier{}, "attorney@company.com")
	return NewLeadHandler(
		submit,
		usecase.NewListLeadsUseCase(repo),
		usecase.NewAdvanceLeadStateUseCase(repo),
		maxUpload,
	)
}

func multipartBody(t *testing.T, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("first_name", "Jane"))
	require.NoError(t, mw.WriteField("last_name", "Doe"))
	require.NoError(t, mw.WriteField("email", "jane@x.com"))
	fw, err := mw.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSubmitStorageFailureHidesCause(t *testing.T) {
	repo := &stubRepository{createErr: errors.New("pq: connection refused to 10.0.0.5")}
	h := newTestLeadHandler(repo, 1<<20)

	body, contentType := multipartBody(t, []byte("resume"))
	req := httptest.NewRequest(http.MethodPost, "/leads/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Submit(rec, req)
	h.SubmitUC.Wait()

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Equal(t, usecase.CodeStorage, decodeError(t, rec).Error)
}

func TestSubmitRejectsOversizedUpload(t *testing.T) {
	h := newTestLeadHandler(&stubRepository{}, 512)

	body, contentType := multipartBody(t, bytes.Repeat([]byte("a"), 4096))
	req := httptest.NewRequest(http.MethodPost, "/leads/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, usecase.CodeInvalidRequest, decodeError(t, rec).Error)
}

func TestSubmitReturnsCreatedLead(t *testing.T) {
	repo := &stubRepository{}
	h := newTestLeadHandler(repo, 1<<20)

	body, contentType := multipartBody(t, []byte("resume"))
	req := httptest.NewRequest(http.MethodPost, "/leads/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Submit(rec, req)
	h.SubmitUC.Wait()

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var lead entity.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&lead))
	assert.Equal(t, int64(1), lead.ID)
	assert.Equal(t, "resumes/cv.pdf", lead.ResumePath)
	assert.Equal(t, entity.LeadStatePending, lead.State)
}

func TestListReturnsEmptyArray(t *testing.T) {
	h := newTestLeadHandler(&stubRepository{leads: []*entity.Lead{}}, 1<<20)
	rec := httptest.NewRecorder()

	h.List(rec, httptest.NewRequest(http.MethodGet, "/leads/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListStorageFailure(t *testing.T) {
	h := newTestLeadHandler(&stubRepository{listErr: errors.New("disk I/O error")}, 1<<20)
	rec := httptest.NewRecorder()

	h.List(rec, httptest.NewRequest(http.MethodGet, "/leads/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk I/O")
}

func TestAdvanceStatusCodes(t *testing.T) {
	pending := &entity.Lead{ID: 1, State: entity.LeadStatePending, CreatedAt: time.Now()}
	reached := &entity.Lead{ID: 2, State: entity.LeadStateReachedOut, CreatedAt: time.Now()}

	tests := []struct {
		name       string
		repo       *stubRepository
		id         string
		wantStatus int
		wantCode   string
	}{
		{"pending lead", &stubRepository{leads: []*entity.Lead{pending}}, "1", http.StatusOK, ""},
		{"already reached out", &stubRepository{leads: []*entity.Lead{reached}}, "2", http.StatusBadRequest, usecase.CodeInvalidState},
		{"unknown id", &stubRepository{}, "42", http.StatusNotFound, usecase.CodeLeadNotFound},
		{"non integer id", &stubRepository{}, "abc", http.StatusUnprocessableEntity, usecase.CodeValidation},
		{"storage failure", &stubRepository{advanceErr: errors.New("boom")}, "1", http.StatusInternalServerError, usecase.CodeStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestLeadHandler(tt.repo, 1<<20)
			rec := httptest.NewRecorder()

			h.Advance(rec, withID(httptest.NewRequest(http.MethodPatch, "/leads/"+tt.id, nil), tt.id))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Error)
			}
		})
	}
}
