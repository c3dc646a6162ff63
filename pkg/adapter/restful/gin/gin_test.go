// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/clean-crud/internal/test/fakerp"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/metrics"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/routes"
	"github.com/momeni/clean-crud/pkg/core/model"
	"github.com/momeni/clean-crud/pkg/core/usecase/carsuc"
	"github.com/momeni/clean-crud/pkg/core/usecase/dirsuc"
	"github.com/momeni/clean-crud/pkg/core/usecase/usersuc"
	"github.com/stretchr/testify/suite"
)

type GinTestSuite struct {
	suite.Suite

	Gin     *gin.Engine
	Metrics *metrics.Metrics
	Cars    *carsuc.UseCase
}

func TestGinTestSuite(t *testing.T) {
	suite.Run(t, new(GinTestSuite))
}

func (gts *GinTestSuite) SetupSuite() {
	gts.Require().NoError(gin.SetMode("test"))
}

func (gts *GinTestSuite) SetupTest() {
	p := &fakerp.Pool{}
	cars, err := carsuc.New()
	gts.Require().NoError(err, "cannot instantiate cars use case")
	gts.Cars = cars
	gts.Gin = gin.New(gin.RequestID(), gin.Recovery())
	gts.Require().NotNil(gts.Gin, "cannot instantiate Gin engine")
	gts.Metrics = metrics.New("crudweb_test")
	gts.Metrics.Register(gts.Gin)
	err = routes.Register(gts.Gin, routes.UseCases{
		Cars:  cars,
		Users: usersuc.New(p, fakerp.NewUsers()),
		Dirs:  dirsuc.New(p, fakerp.NewDirectories()),
	})
	gts.Require().NoError(err, "failed to register Gin routes")
}

func (gts *GinTestSuite) send(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	gts.Gin.ServeHTTP(w, req)
	return w
}

func (gts *GinTestSuite) sendRecv(method, path, body string, res any) int {
	w := gts.send(method, path, body)
	gts.NoError(json.Unmarshal(w.Body.Bytes(), res), "body is not json")
	return w.Code
}

func (gts *GinTestSuite) TestHello() {
	res := map[string]string{}
	gts.Equal(200, gts.sendRecv(http.MethodGet, "/hello", "", &res))
	gts.Equal(map[string]string{"hello": "world"}, res)
}

func (gts *GinTestSuite) TestPlaintext() {
	w := gts.send(http.MethodGet, "/plaintext", "")
	gts.Equal(200, w.Code)
	gts.Equal("Hello, world!", w.Body.String())
	gts.Contains(w.Header().Get("Content-Type"), "text/plain")
}

func (gts *GinTestSuite) TestInfo() {
	for _, path := range []string{"/info", "/description"} {
		gts.Run(path, func() {
			req := httptest.NewRequest(http.MethodGet, path+"?q=1", nil)
			req.Header.Set("X-Beta", "b")
			req.Header.Set("X-Alpha", "a")
			w := httptest.NewRecorder()
			gts.Gin.ServeHTTP(w, req)
			gts.Equal(200, w.Code)
			desc := w.Body.String()
			gts.True(
				strings.HasPrefix(desc, "GET "+path+"?q=1 HTTP/1.1\n"),
				"unexpected request line: %q", desc,
			)
			gts.Contains(desc, "Remote-Address: 192.0.2.1:1234\n")
			alpha := strings.Index(desc, "X-Alpha: a\n")
			beta := strings.Index(desc, "X-Beta: b\n")
			gts.True(alpha >= 0 && beta > alpha, "headers are not sorted")
		})
	}
}

func (gts *GinTestSuite) TestCars() {
	var cars []model.Car
	gts.Equal(200, gts.sendRecv(http.MethodGet, "/api/cars", "", &cars))
	gts.NotNil(cars, "empty list must be serialized as []")
	gts.Empty(cars)

	car := model.Car{}
	code := gts.sendRecv(
		http.MethodPost, "/api/cars",
		`{"name":"Civic","color":"red","milesDriven":12000}`, &car,
	)
	gts.Equal(200, code)
	expected := model.Car{Name: "Civic", Color: "red", MilesDriven: 12000}
	gts.Equal(expected, car)

	gts.Equal(200, gts.sendRecv(http.MethodGet, "/api/cars", "", &cars))
	gts.Equal([]model.Car{expected}, cars)
}

func (gts *GinTestSuite) TestCarPreconditionFailed() {
	for _, tc := range []struct {
		name string
		body string
		errs map[string][]string
	}{
		{
			name: "missing color",
			body: `{"name":"A","milesDriven":5}`,
			errs: map[string][]string{"color": {"Missing color"}},
		},
		{
			name: "mistyped miles",
			body: `{"name":"A","color":"blue","milesDriven":"5"}`,
			errs: map[string][]string{
				"milesDriven": {"Missing milesDriven"},
			},
		},
		{
			name: "null name",
			body: `{"name":null,"color":"blue","milesDriven":5}`,
			errs: map[string][]string{"name": {"Missing name"}},
		},
		{
			name: "empty object",
			body: `{}`,
			errs: map[string][]string{
				"name":        {"Missing name"},
				"color":       {"Missing color"},
				"milesDriven": {"Missing milesDriven"},
			},
		},
		{
			name: "not json",
			body: `name=A`,
			errs: map[string][]string{
				"name":        {"Missing name"},
				"color":       {"Missing color"},
				"milesDriven": {"Missing milesDriven"},
			},
		},
	} {
		gts.Run(tc.name, func() {
			res := map[string][]string{}
			code := gts.sendRecv(http.MethodPost, "/api/cars", tc.body, &res)
			gts.Equal(412, code)
			gts.Equal(tc.errs, res)
		})
	}
	gts.Equal(0, gts.Cars.Len(), "failed requests must not append cars")
}

func (gts *GinTestSuite) TestUserLifecycle() {
	u := model.User{}
	code := gts.sendRecv(http.MethodPost, "/user", `{"name":"Ann"}`, &u)
	gts.Equal(200, code)
	gts.Equal(model.User{ID: 1, Name: "Ann"}, u)

	code = gts.sendRecv(http.MethodGet, "/user/1", "", &u)
	gts.Equal(200, code)
	gts.Equal(model.User{ID: 1, Name: "Ann"}, u)

	code = gts.sendRecv(
		http.MethodPatch, "/user/1", `{"name":"Bo","extra":true}`, &u,
	)
	gts.Equal(200, code)
	gts.Equal(model.User{ID: 1, Name: "Bo"}, u)

	code = gts.sendRecv(http.MethodPut, "/user/1", `{"name":"Cy"}`, &u)
	gts.Equal(200, code)
	gts.Equal(model.User{ID: 1, Name: "Cy"}, u)

	var us []model.User
	gts.Equal(200, gts.sendRecv(http.MethodGet, "/user", "", &us))
	gts.Equal([]model.User{{ID: 1, Name: "Cy"}}, us)

	w := gts.send(http.MethodDelete, "/user/1", "")
	gts.Equal(200, w.Code)
	gts.Empty(w.Body.String())

	res := struct{ Detail string }{}
	gts.Equal(404, gts.sendRecv(http.MethodGet, "/user/1", "", &res))
	gts.Equal("expected one row, but got 0", res.Detail)
}

func (gts *GinTestSuite) TestUserBadRequest() {
	for _, method := range []string{http.MethodPost, http.MethodPut} {
		gts.Run(method, func() {
			u := model.User{}
			code := gts.sendRecv(http.MethodPost, "/user", `{"name":"Ann"}`, &u)
			gts.Require().Equal(200, code)
			path := "/user"
			if method == http.MethodPut {
				path = "/user/" + strconv.FormatUint(u.ID, 10)
			}

			res := map[string][]string{}
			code = gts.sendRecv(method, path, `{"nom":"Ann"}`, &res)
			gts.Equal(400, code)
			gts.Len(res["name"], 1)
			gts.Contains(res["name"][0], "failed on the 'required' tag")

			detail := struct{ Detail string }{}
			code = gts.sendRecv(method, path, `{"name":5}`, &detail)
			gts.Equal(400, code)
			gts.NotEmpty(detail.Detail)
		})
	}
}

func (gts *GinTestSuite) TestEmptyPatchKeepsEntity() {
	u := model.User{}
	gts.Require().Equal(200, gts.sendRecv(
		http.MethodPost, "/user", `{"name":"Ann"}`, &u,
	))
	d := model.Directory{}
	gts.Require().Equal(200, gts.sendRecv(
		http.MethodPost, "/dir", `{"label":"home","phoneNumber":5551234}`, &d,
	))
	for _, body := range []string{"", "{}", " \n"} {
		got := model.User{}
		gts.Equal(200, gts.sendRecv(http.MethodPatch, "/user/1", body, &got))
		gts.Equal(u, got, "body: %q", body)

		gotDir := model.Directory{}
		gts.Equal(200, gts.sendRecv(http.MethodPatch, "/dir/1", body, &gotDir))
		gts.Equal(d, gotDir, "body: %q", body)
	}

	res := struct{ Detail string }{}
	gts.Equal(400, gts.sendRecv(http.MethodPost, "/user", "", &res))
	gts.Equal("request body is empty", res.Detail)
	gts.Equal(400, gts.sendRecv(http.MethodPut, "/dir/1", "", &res))
	gts.Equal("request body is empty", res.Detail)
}

func (gts *GinTestSuite) TestTrailingDataIsRejected() {
	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPost, "/user", `{"name":"Ann"} trailing`},
		{http.MethodPost, "/dir", `{"label":"a","phoneNumber":1}{}`},
	} {
		res := struct{ Detail string }{}
		gts.Equal(400, gts.sendRecv(tc.method, tc.path, tc.body, &res), tc.body)
		gts.NotEmpty(res.Detail)
	}
	var us []model.User
	gts.Equal(200, gts.sendRecv(http.MethodGet, "/user", "", &us))
	gts.Empty(us, "nothing may be created")
}

func (gts *GinTestSuite) TestLoaderNotFound() {
	for _, path := range []string{"/user/abc", "/user/-1", "/dir/7"} {
		gts.Run(path, func() {
			res := struct{ Detail string }{}
			gts.Equal(404, gts.sendRecv(http.MethodGet, path, "", &res))
			gts.NotEmpty(res.Detail)
			code := gts.sendRecv(http.MethodDelete, path, "", &res)
			gts.Equal(404, code)
		})
	}
}

func (gts *GinTestSuite) TestDirectoryPhoneNumberIsImmutable() {
	d := model.Directory{}
	code := gts.sendRecv(
		http.MethodPost, "/dir", `{"label":"home","phoneNumber":5551234}`, &d,
	)
	gts.Equal(200, code)
	gts.Equal(model.Directory{ID: 1, Label: "home", PhoneNumber: 5551234}, d)

	code = gts.sendRecv(
		http.MethodPut, "/dir/1", `{"label":"work","phoneNumber":1}`, &d,
	)
	gts.Equal(200, code)
	gts.Equal(model.Directory{ID: 1, Label: "work", PhoneNumber: 5551234}, d)

	code = gts.sendRecv(
		http.MethodPatch, "/dir/1", `{"label":"cell","phoneNumber":2}`, &d,
	)
	gts.Equal(200, code)
	gts.Equal(model.Directory{ID: 1, Label: "cell", PhoneNumber: 5551234}, d)

	res := map[string][]string{}
	code = gts.sendRecv(http.MethodPut, "/dir/1", `{"label":"x"}`, &res)
	gts.Equal(400, code)
	gts.Contains(res, "phoneNumber")
}

func (gts *GinTestSuite) TestClear() {
	for _, label := range []string{"a", "b"} {
		d := model.Directory{}
		code := gts.sendRecv(
			http.MethodPost, "/dir",
			`{"label":"`+label+`","phoneNumber":1}`, &d,
		)
		gts.Require().Equal(200, code)
	}
	for i := 0; i < 2; i++ {
		w := gts.send(http.MethodDelete, "/dir", "")
		gts.Equal(200, w.Code, "clear must succeed even if empty")
	}
	var ds []model.Directory
	gts.Equal(200, gts.sendRecv(http.MethodGet, "/dir", "", &ds))
	gts.Empty(ds)
}

func (gts *GinTestSuite) TestRequestID() {
	w := gts.send(http.MethodGet, "/hello", "")
	gts.NotEmpty(w.Header().Get(gin.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	req.Header.Set(gin.RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	gts.Gin.ServeHTTP(w, req)
	gts.Equal("req-42", w.Header().Get(gin.RequestIDHeader))
}

func (gts *GinTestSuite) TestMetrics() {
	gts.send(http.MethodGet, "/hello", "")
	gts.send(http.MethodGet, "/user/abc", "")
	gts.send(http.MethodGet, "/no/such/route", "")
	w := gts.send(http.MethodGet, metrics.Path, "")
	gts.Equal(200, w.Code)
	body := w.Body.String()
	gts.Contains(
		body,
		`crudweb_test_http_requests_total{method="GET",route="/hello",status="200"} 1`,
	)
	gts.Contains(
		body,
		`crudweb_test_http_requests_total{method="GET",route="/user/:id",status="404"} 1`,
	)
	gts.Contains(body, `route="unmatched",status="404"`)
}
