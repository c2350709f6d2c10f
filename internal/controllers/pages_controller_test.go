package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fsdevblog/tinylink/internal/config"
	"github.com/fsdevblog/tinylink/internal/controllers/mocksctrl"
	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PagesControllerSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	storeMock *mocksctrl.MockLinkStore
	router    *gin.Engine
}

func (s *PagesControllerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.storeMock = mocksctrl.NewMockLinkStore(s.ctrl)
	s.router = SetupRouter(RouterParams{
		LinkService: s.storeMock,
		AppConf:     config.Config{BaseURL: "https://tiny.test"},
		Logger:      silentLogger(),
	})
}

func (s *PagesControllerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PagesControllerSuite) body(res *http.Response) string {
	b, err := readBody(res.Body, false)
	s.Require().NoError(err)
	return string(b)
}

func (s *PagesControllerSuite) postForm(target string, form url.Values) *http.Response {
	return makeRequest(s.router, requestFields{
		Method:      http.MethodPost,
		URL:         target,
		Body:        strings.NewReader(form.Encode()),
		ContentType: "application/x-www-form-urlencoded",
	})
}

func (s *PagesControllerSuite) TestIndex() {
	clicked := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	s.storeMock.EXPECT().List(gomock.Any()).Return([]models.Link{
		{Code: "abc123", URL: "https://example.com/a", Clicks: 2, LastClicked: &clicked},
		{Code: "qwe789", URL: "https://example.com/b"},
	}, nil)

	res := makeRequest(s.router, requestFields{Method: http.MethodGet, URL: "/"})
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	s.Contains(res.Header.Get("Content-Type"), "text/html")

	body := s.body(res)
	s.Contains(body, `href="/code/abc123"`)
	s.Contains(body, "https://tiny.test/abc123")
	s.Contains(body, "2024-05-02T08:30:00Z")
	s.Contains(body, `action="/code/qwe789/delete"`)
	s.Contains(body, neverClicked)
}

func (s *PagesControllerSuite) TestIndex_Empty() {
	s.storeMock.EXPECT().List(gomock.Any()).Return(nil, nil)

	res := makeRequest(s.router, requestFields{Method: http.MethodGet, URL: "/"})
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	s.Contains(s.body(res), "No links yet")
}

func (s *PagesControllerSuite) TestIndex_StorageError() {
	s.storeMock.EXPECT().List(gomock.Any()).Return(nil, services.ErrStorage)

	res := makeRequest(s.router, requestFields{Method: http.MethodGet, URL: "/"})
	defer res.Body.Close()

	s.Equal(http.StatusInternalServerError, res.StatusCode)
	s.Contains(s.body(res), ErrInternal.Error())
}

func (s *PagesControllerSuite) TestCreate() {
	s.storeMock.EXPECT().Create(gomock.Any(), "https://example.com/a", "abc123").
		Return(&models.Link{Code: "abc123", URL: "https://example.com/a"}, nil)

	res := s.postForm("/", url.Values{"url": {"https://example.com/a"}, "code": {"abc123"}})
	defer res.Body.Close()

	s.Equal(http.StatusSeeOther, res.StatusCode)
	s.Equal("/", res.Header.Get("Location"))
}

func (s *PagesControllerSuite) TestCreate_Errors() {
	s.Run("conflict", func() {
		gomock.InOrder(
			s.storeMock.EXPECT().Create(gomock.Any(), "https://example.com/a", "abc123").
				Return(nil, errors.Wrap(services.ErrConflict, "code abc123")),
			s.storeMock.EXPECT().List(gomock.Any()).Return(nil, nil),
		)

		res := s.postForm("/", url.Values{"url": {"https://example.com/a"}, "code": {"abc123"}})
		defer res.Body.Close()

		s.Equal(http.StatusConflict, res.StatusCode)
		body := s.body(res)
		s.Contains(body, ErrCodeExists.Error())
		s.Contains(body, `value="https://example.com/a"`)
	})

	s.Run("missing url", func() {
		s.storeMock.EXPECT().List(gomock.Any()).Return(nil, nil)

		res := s.postForm("/", url.Values{"code": {"abc123"}})
		defer res.Body.Close()

		s.Equal(http.StatusBadRequest, res.StatusCode)
		s.Contains(s.body(res), ErrURLRequired.Error())
	})

	s.Run("invalid url", func() {
		gomock.InOrder(
			s.storeMock.EXPECT().Create(gomock.Any(), "not a url", "").
				Return(nil, errors.Wrap(services.ErrInvalidURL, "invalid URL format")),
			s.storeMock.EXPECT().List(gomock.Any()).Return(nil, nil),
		)

		res := s.postForm("/", url.Values{"url": {"not a url"}})
		defer res.Body.Close()

		s.Equal(http.StatusBadRequest, res.StatusCode)
		s.Contains(s.body(res), ErrInvalidURL.Error())
	})
}

func (s *PagesControllerSuite) TestStats() {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.storeMock.EXPECT().Get(gomock.Any(), "abc123").
		Return(&models.Link{Code: "abc123", URL: "https://example.com/a", CreatedAt: created}, nil)

	res := makeRequest(s.router, requestFields{Method: http.MethodGet, URL: "/code/abc123"})
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	body := s.body(res)
	s.Contains(body, "https://tiny.test/abc123")
	s.Contains(body, "https://example.com/a")
	s.Contains(body, neverClicked)
	s.Contains(body, "2024-05-01T12:00:00Z")
}

func (s *PagesControllerSuite) TestStats_NotFound() {
	s.storeMock.EXPECT().Get(gomock.Any(), "zzz999").Return(nil, services.ErrNotFound)

	res := makeRequest(s.router, requestFields{Method: http.MethodGet, URL: "/code/zzz999"})
	defer res.Body.Close()

	s.Equal(http.StatusNotFound, res.StatusCode)
	s.Contains(s.body(res), ErrRecordNotFound.Error())
}

func (s *PagesControllerSuite) TestDelete() {
	s.storeMock.EXPECT().Delete(gomock.Any(), "abc123").Return(nil)
	s.storeMock.EXPECT().Delete(gomock.Any(), "abc123").Return(services.ErrNotFound)

	res := s.postForm("/code/abc123/delete", url.Values{})
	defer res.Body.Close()
	s.Equal(http.StatusSeeOther, res.StatusCode)
	s.Equal("/", res.Header.Get("Location"))

	res = s.postForm("/code/abc123/delete", url.Values{})
	defer res.Body.Close()
	s.Equal(http.StatusNotFound, res.StatusCode)
}

func TestPagesController(t *testing.T) {
	suite.Run(t, new(PagesControllerSuite))
}
