package employee_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/auth"
	"github.com/frahmantamala/employee-directory/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-directory/internal/employee/postgres"
	"github.com/frahmantamala/employee-directory/internal/transport/rest"
)

var _ = Describe("Employee API Integration", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
		token  string
	)

	const apiSecret = "integration-test-secret-0123456789abcdef"

	doJSON := func(method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
		GinkgoHelper()
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	doRaw := func(method, path, bearer, body string) *httptest.ResponseRecorder {
		GinkgoHelper()
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	decodeEmployee := func(rec *httptest.ResponseRecorder) employee.EmployeeResponse {
		GinkgoHelper()
		var resp employee.EmployeeResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	createEmployee := func(body interface{}) employee.EmployeeResponse {
		GinkgoHelper()
		rec := doJSON(http.MethodPost, "/api/employees/", token, body)
		Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
		return decodeEmployee(rec)
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&employee.Employee{})).To(Succeed())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		tokenGen := auth.NewJWTTokenGenerator(apiSecret, 30*time.Minute)
		authService, err := auth.NewService(internal.SecurityConfig{
			JWTSecret:           apiSecret,
			AccessTokenDuration: 30 * time.Minute,
			AdminUsername:       "admin",
			AdminPassword:       "admin123",
		}, tokenGen)
		Expect(err).NotTo(HaveOccurred())
		authHandler := auth.NewHandler(authService)

		repo := employeePostgres.NewEmployeeRepository(db)
		service := employee.NewService(repo, slogger)
		employeeHandler := employee.NewHandler(service)

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, sqlDB, authHandler, employeeHandler, "*", slogger)

		rec := doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "admin",
			"password": "admin123",
		})
		Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
		var loginResp auth.AuthToken
		Expect(json.Unmarshal(rec.Body.Bytes(), &loginResp)).To(Succeed())
		Expect(loginResp.TokenType).To(Equal("bearer"))
		token = loginResp.AccessToken
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("liveness endpoints", func() {
		It("answers the root endpoint without auth", func() {
			rec := doJSON(http.MethodGet, "/", "", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("answers the health endpoint without auth", func() {
			rec := doJSON(http.MethodGet, "/health", "", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("login", func() {
		It("rejects bad credentials", func() {
			rec := doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{
				"username": "admin",
				"password": "wrongpassword",
			})
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects a missing username as malformed", func() {
			rec := doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{
				"password": "admin123",
			})
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("rejects a wrong-typed username as malformed", func() {
			rec := doRaw(http.MethodPost, "/api/auth/login", "", `{"username":123,"password":"admin123"}`)
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})
	})

	Describe("authorization gate", func() {
		It("rejects requests without a token and performs no mutation", func() {
			rec := doJSON(http.MethodPost, "/api/employees/", "", map[string]string{
				"name":  "Ghost",
				"email": "ghost@example.com",
			})
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))

			list := doJSON(http.MethodGet, "/api/employees/", token, nil)
			var page employee.ListEmployeesResponse
			Expect(json.Unmarshal(list.Body.Bytes(), &page)).To(Succeed())
			Expect(page.Total).To(BeZero())
		})

		It("rejects a garbage token", func() {
			rec := doJSON(http.MethodGet, "/api/employees/", "garbage", nil)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects an expired token", func() {
			expired, err := auth.NewJWTTokenGenerator(apiSecret, -time.Minute).GenerateAccessToken("admin")
			Expect(err).NotTo(HaveOccurred())

			rec := doJSON(http.MethodGet, "/api/employees/", expired, nil)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects a token signed with another secret", func() {
			forged, err := auth.NewJWTTokenGenerator("a-completely-different-signing-secret!!", 30*time.Minute).GenerateAccessToken("admin")
			Expect(err).NotTo(HaveOccurred())

			rec := doJSON(http.MethodGet, "/api/employees/", forged, nil)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("create", func() {
		It("returns the full record with today's date", func() {
			resp := createEmployee(map[string]interface{}{
				"name":       "John Doe",
				"email":      "john@example.com",
				"department": "Engineering",
				"role":       "Developer",
			})
			Expect(resp.ID).NotTo(BeZero())
			Expect(resp.Name).To(Equal("John Doe"))
			Expect(resp.Email).To(Equal("john@example.com"))
			Expect(*resp.Department).To(Equal("Engineering"))
			Expect(*resp.Role).To(Equal("Developer"))
			Expect(resp.DateJoined).To(Equal(employee.Today().Format(employee.DateOnly)))
		})

		It("defaults department and role to null", func() {
			resp := createEmployee(map[string]string{
				"name":  "Min",
				"email": "min@example.com",
			})
			Expect(resp.Department).To(BeNil())
			Expect(resp.Role).To(BeNil())
		})

		It("rejects a duplicate email with 400", func() {
			createEmployee(map[string]string{"name": "A", "email": "dup@example.com"})

			rec := doJSON(http.MethodPost, "/api/employees/", token, map[string]string{
				"name":  "B",
				"email": "dup@example.com",
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a malformed email with 422", func() {
			rec := doJSON(http.MethodPost, "/api/employees/", token, map[string]string{
				"name":  "Bad",
				"email": "bad-email",
			})
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("rejects a wrong-typed field with 422", func() {
			rec := doRaw(http.MethodPost, "/api/employees/", token, `{"name":123,"email":"typed@example.com"}`)
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity), rec.Body.String())
			Expect(rec.Body.String()).To(ContainSubstring("name"))
		})

		It("rejects an unreadable body with 400", func() {
			rec := doRaw(http.MethodPost, "/api/employees/", token, `{not json`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an unknown department with 422", func() {
			rec := doJSON(http.MethodPost, "/api/employees/", token, map[string]string{
				"name":       "Bad",
				"email":      "bad@example.com",
				"department": "Finance",
			})
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})
	})

	Describe("get", func() {
		It("fetches a created record by id", func() {
			created := createEmployee(map[string]string{"name": "Fetch", "email": "fetch@example.com"})

			rec := doJSON(http.MethodGet, fmt.Sprintf("/api/employees/%d/", created.ID), token, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			fetched := decodeEmployee(rec)
			Expect(fetched).To(Equal(created))
		})

		It("returns 404 for an unknown id", func() {
			rec := doJSON(http.MethodGet, "/api/employees/9999/", token, nil)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for a non-numeric id", func() {
			rec := doJSON(http.MethodGet, "/api/employees/abc/", token, nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("list", func() {
		BeforeEach(func() {
			for i := 0; i < 15; i++ {
				dept := "Engineering"
				if i < 5 {
					dept = "Sales"
				}
				createEmployee(map[string]interface{}{
					"name":       fmt.Sprintf("Emp %d", i),
					"email":      fmt.Sprintf("emp%d@example.com", i),
					"department": dept,
				})
			}
		})

		It("paginates ten per page with totals", func() {
			rec := doJSON(http.MethodGet, "/api/employees/", token, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var page employee.ListEmployeesResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &page)).To(Succeed())
			Expect(page.Items).To(HaveLen(10))
			Expect(page.Total).To(Equal(int64(15)))
			Expect(page.Page).To(Equal(1))
			Expect(page.PageSize).To(Equal(10))
			Expect(page.TotalPages).To(Equal(int64(2)))
		})

		It("returns the remainder on page two", func() {
			rec := doJSON(http.MethodGet, "/api/employees/?page=2", token, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var page employee.ListEmployeesResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &page)).To(Succeed())
			Expect(page.Items).To(HaveLen(5))
		})

		It("resolves filters case-insensitively", func() {
			rec := doJSON(http.MethodGet, "/api/employees/?department=sales", token, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var page employee.ListEmployeesResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &page)).To(Succeed())
			Expect(page.Total).To(Equal(int64(5)))
			for _, item := range page.Items {
				Expect(*item.Department).To(Equal("Sales"))
			}
		})

		It("rejects an unknown filter value with 400", func() {
			rec := doJSON(http.MethodGet, "/api/employees/?department=Marketing", token, nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a non-numeric page with 400", func() {
			rec := doJSON(http.MethodGet, "/api/employees/?page=x", token, nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("update", func() {
		var created employee.EmployeeResponse

		BeforeEach(func() {
			created = createEmployee(map[string]interface{}{
				"name":       "Original",
				"email":      "original@example.com",
				"department": "HR",
				"role":       "Manager",
			})
		})

		It("updates only the supplied field", func() {
			rec := doRaw(http.MethodPut, fmt.Sprintf("/api/employees/%d/", created.ID), token, `{"name":"Renamed"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			updated := decodeEmployee(rec)
			Expect(updated.Name).To(Equal("Renamed"))
			Expect(updated.Email).To(Equal("original@example.com"))
			Expect(*updated.Department).To(Equal("HR"))
			Expect(*updated.Role).To(Equal("Manager"))
			Expect(updated.DateJoined).To(Equal(created.DateJoined))
		})

		It("clears department on explicit null", func() {
			rec := doRaw(http.MethodPut, fmt.Sprintf("/api/employees/%d/", created.ID), token, `{"department":null}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			updated := decodeEmployee(rec)
			Expect(updated.Department).To(BeNil())
			Expect(*updated.Role).To(Equal("Manager"))
		})

		It("answers an empty payload with the current record", func() {
			rec := doRaw(http.MethodPut, fmt.Sprintf("/api/employees/%d/", created.ID), token, `{}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeEmployee(rec)).To(Equal(created))
		})

		It("rejects a duplicate email with 400", func() {
			createEmployee(map[string]string{"name": "Other", "email": "other@example.com"})

			rec := doRaw(http.MethodPut, fmt.Sprintf("/api/employees/%d/", created.ID), token, `{"email":"other@example.com"}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an unknown enum value with 422", func() {
			rec := doRaw(http.MethodPut, fmt.Sprintf("/api/employees/%d/", created.ID), token, `{"role":"Intern"}`)
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("rejects a wrong-typed field with 422", func() {
			rec := doRaw(http.MethodPut, fmt.Sprintf("/api/employees/%d/", created.ID), token, `{"department":123}`)
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity), rec.Body.String())
			Expect(rec.Body.String()).To(ContainSubstring("department"))
		})

		It("returns 404 for an unknown id", func() {
			rec := doRaw(http.MethodPut, "/api/employees/9999/", token, `{"name":"x"}`)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("delete", func() {
		It("removes the record and is not repeatable", func() {
			created := createEmployee(map[string]string{"name": "Gone", "email": "gone@example.com"})
			path := fmt.Sprintf("/api/employees/%d/", created.ID)

			rec := doJSON(http.MethodDelete, path, token, nil)
			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(rec.Body.Len()).To(BeZero())

			rec = doJSON(http.MethodGet, path, token, nil)
			Expect(rec.Code).To(Equal(http.StatusNotFound))

			rec = doJSON(http.MethodDelete, path, token, nil)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})
})
