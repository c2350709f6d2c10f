package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/tinylink/internal/config"
	"github.com/fsdevblog/tinylink/internal/controllers/mocksctrl"
	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type LinksControllerSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	storeMock *mocksctrl.MockLinkStore
	router    *gin.Engine
}

func (s *LinksControllerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.storeMock = mocksctrl.NewMockLinkStore(s.ctrl)
	s.router = SetupRouter(RouterParams{
		LinkService: s.storeMock,
		PingService: mocksctrl.NewMockConnectionChecker(s.ctrl),
		AppConf:     config.Config{ServerAddress: ":80", BaseURL: "http://test.com"},
		Logger:      silentLogger(),
	})
}

func (s *LinksControllerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *LinksControllerSuite) decodeError(body []byte) string {
	var resp struct {
		Error string `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(body, &resp))
	return resp.Error
}

func (s *LinksControllerSuite) TestCreate() {
	validURL := gofakeit.URL()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, gzipped := range []bool{false, true} {
		s.Run(fmt.Sprintf("gzip=%v", gzipped), func() {
			s.storeMock.EXPECT().
				Create(gomock.Any(), validURL, "abc123").
				Return(&models.Link{Code: "abc123", URL: validURL, CreatedAt: created}, nil)

			res := makeRequest(s.router, requestFields{
				Method:      http.MethodPost,
				URL:         "/api/links",
				Body:        strings.NewReader(fmt.Sprintf(`{"url":%q,"code":"abc123"}`, validURL)),
				ContentType: "application/json",
				Gzipped:     gzipped,
			})
			defer res.Body.Close()

			s.Equal(http.StatusCreated, res.StatusCode)
			if gzipped {
				s.Equal("gzip", res.Header.Get("Content-Encoding"))
			}

			body, err := readBody(res.Body, gzipped)
			s.Require().NoError(err)

			var got map[string]any
			s.Require().NoError(json.Unmarshal(body, &got))
			s.Equal("abc123", got["code"])
			s.Equal(validURL, got["url"])
			s.EqualValues(0, got["clicks"])
			s.Nil(got["lastClicked"])
			s.Equal("2024-05-01T12:00:00Z", got["createdAt"])
		})
	}
}

func (s *LinksControllerSuite) TestCreate_WithoutCode() {
	validURL := gofakeit.URL()
	s.storeMock.EXPECT().
		Create(gomock.Any(), validURL, "").
		Return(&models.Link{Code: "x7k2m9", URL: validURL}, nil)

	res := makeRequest(s.router, requestFields{
		Method:      http.MethodPost,
		URL:         "/api/links",
		Body:        strings.NewReader(fmt.Sprintf(`{"url":%q}`, validURL)),
		ContentType: "application/json",
	})
	defer res.Body.Close()

	s.Equal(http.StatusCreated, res.StatusCode)
}

func (s *LinksControllerSuite) TestCreate_BadRequest() {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "missing url", body: `{"code":"abc123"}`, wantErr: ErrURLRequired.Error()},
		{name: "empty url", body: `{"url":""}`, wantErr: ErrURLRequired.Error()},
		{name: "short code", body: `{"url":"https://example.com","code":"ab"}`, wantErr: ErrInvalidCode.Error()},
		{name: "code with dash", body: `{"url":"https://example.com","code":"abc-123"}`, wantErr: ErrInvalidCode.Error()},
		{name: "malformed json", body: `{"url":`, wantErr: ErrBadRequest.Error()},
		{name: "wrong type", body: `{"url":42}`, wantErr: ErrBadRequest.Error()},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := makeRequest(s.router, requestFields{
				Method:      http.MethodPost,
				URL:         "/api/links",
				Body:        strings.NewReader(tt.body),
				ContentType: "application/json",
			})
			defer res.Body.Close()

			s.Equal(http.StatusBadRequest, res.StatusCode)
			body, err := readBody(res.Body, false)
			s.Require().NoError(err)
			s.Equal(tt.wantErr, s.decodeError(body))
		})
	}
}

func (s *LinksControllerSuite) TestCreate_ServiceErrors() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantErr    string
	}{
		{
			name:       "invalid url",
			err:        errors.Wrap(services.ErrInvalidURL, "URL must have http or https scheme"),
			wantStatus: http.StatusBadRequest,
			wantErr:    ErrInvalidURL.Error(),
		},
		{
			name:       "blank url",
			err:        services.ErrURLRequired,
			wantStatus: http.StatusBadRequest,
			wantErr:    ErrURLRequired.Error(),
		},
		{
			name:       "conflict",
			err:        errors.Wrap(services.ErrConflict, "code abc123"),
			wantStatus: http.StatusConflict,
			wantErr:    ErrCodeExists.Error(),
		},
		{
			name:       "storage",
			err:        errors.Wrap(services.ErrStorage, "create link"),
			wantStatus: http.StatusInternalServerError,
			wantErr:    ErrInternal.Error(),
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.storeMock.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)

			res := makeRequest(s.router, requestFields{
				Method:      http.MethodPost,
				URL:         "/api/links",
				Body:        strings.NewReader(`{"url":"ftp://example.com","code":"abc123"}`),
				ContentType: "application/json",
			})
			defer res.Body.Close()

			s.Equal(tt.wantStatus, res.StatusCode)
			body, err := readBody(res.Body, false)
			s.Require().NoError(err)
			s.Equal(tt.wantErr, s.decodeError(body))
		})
	}
}

func (s *LinksControllerSuite) TestList() {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clicked := now.Add(time.Hour)
	s.storeMock.EXPECT().List(gomock.Any()).Return([]models.Link{
		{Code: "newer1", URL: "https://example.com/2", CreatedAt: now.Add(time.Minute)},
		{Code: "older1", URL: "https://example.com/1", Clicks: 3, LastClicked: &clicked, CreatedAt: now},
	}, nil)

	res := makeRequest(s.router, requestFields{Method: http.MethodGet, URL: "/api/links"})
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	body, err := readBody(res.Body, false)
	s.Require().NoError(err)

	var got []models.Link
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Require().Len(got, 2)
	s.Equal("newer1", got[0].Code)
	s.Equal("older1", got[1].Code)
	s.EqualValues(3, got[1].Clicks)
	s.Require().NotNil(got[1].LastClicked)
	s.True(clicked.Equal(*got[1].LastClicked))
}

func (s *LinksControllerSuite) TestList_StorageError() {
	s.storeMock.EXPECT().List(gomock.Any()).Return(nil, services.ErrStorage)

	res := makeRequest(s.router, requestFields{Method: http.MethodGet, URL: "/api/links"})
	defer res.Body.Close()

	s.Equal(http.StatusInternalServerError, res.StatusCode)
}

func (s *LinksControllerSuite) TestGet() {
	s.storeMock.EXPECT().Get(gomock.Any(), "abc123").
		Return(&models.Link{Code: "abc123", URL: "https://example.com"}, nil)
	s.storeMock.EXPECT().Get(gomock.Any(), "zzz999").
		Return(nil, errors.Wrap(services.ErrNotFound, "code zzz999"))

	res := makeRequest(s.router, requestFields{Method: http.MethodGet, URL: "/api/links/abc123"})
	defer res.Body.Close()
	s.Equal(http.StatusOK, res.StatusCode)

	res = makeRequest(s.router, requestFields{Method: http.MethodGet, URL: "/api/links/zzz999"})
	defer res.Body.Close()
	s.Equal(http.StatusNotFound, res.StatusCode)
	body, err := readBody(res.Body, false)
	s.Require().NoError(err)
	s.Equal(ErrRecordNotFound.Error(), s.decodeError(body))
}

func (s *LinksControllerSuite) TestDelete() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", err: nil, wantStatus: http.StatusNoContent},
		{name: "not found", err: services.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "storage", err: services.ErrStorage, wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.storeMock.EXPECT().Delete(gomock.Any(), "abc123").Return(tt.err)

			res := makeRequest(s.router, requestFields{Method: http.MethodDelete, URL: "/api/links/abc123"})
			defer res.Body.Close()

			s.Equal(tt.wantStatus, res.StatusCode)
		})
	}
}

func (s *LinksControllerSuite) TestRedirect() {
	target := gofakeit.URL()
	s.storeMock.EXPECT().Resolve(gomock.Any(), "abc123").
		Return(&models.Link{Code: "abc123", URL: target, Clicks: 1}, nil)

	res := makeRequest(s.router, requestFields{Method: http.MethodGet, URL: "/abc123"})
	defer res.Body.Close()

	s.Equal(http.StatusTemporaryRedirect, res.StatusCode)
	s.Equal(target, res.Header.Get("Location"))
	s.NotEmpty(res.Header.Get("X-Request-ID"))
}

func (s *LinksControllerSuite) TestRedirect_NotFound() {
	s.storeMock.EXPECT().Resolve(gomock.Any(), "nope12").Return(nil, services.ErrNotFound)

	res := makeRequest(s.router, requestFields{Method: http.MethodGet, URL: "/nope12"})
	defer res.Body.Close()

	s.Equal(http.StatusNotFound, res.StatusCode)
	s.Empty(res.Header.Get("Location"))
}

func (s *LinksControllerSuite) TestRequestIDPropagation() {
	s.storeMock.EXPECT().List(gomock.Any()).Return([]models.Link{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("req-42", w.Header().Get("X-Request-ID"))
	s.JSONEq(`[]`, w.Body.String())
}

func TestLinksController(t *testing.T) {
	suite.Run(t, new(LinksControllerSuite))
}
