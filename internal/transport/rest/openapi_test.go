package rest_test

import (
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRestTransport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Transport Suite")
}

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Validate(loader.Context)).To(Succeed())
	})

	It("documents the login endpoint", func() {
		path := doc.Paths.Find("/api/auth/login")
		Expect(path).NotTo(BeNil())
		Expect(path.Post).NotTo(BeNil())
	})

	It("documents every employee operation", func() {
		collection := doc.Paths.Find("/api/employees/")
		Expect(collection).NotTo(BeNil())
		Expect(collection.Post).NotTo(BeNil())
		Expect(collection.Get).NotTo(BeNil())

		item := doc.Paths.Find("/api/employees/{id}/")
		Expect(item).NotTo(BeNil())
		Expect(item.Get).NotTo(BeNil())
		Expect(item.Put).NotTo(BeNil())
		Expect(item.Delete).NotTo(BeNil())
	})

	It("requires bearer auth on employee operations but not on login", func() {
		scheme := doc.Components.SecuritySchemes["bearerAuth"]
		Expect(scheme).NotTo(BeNil())
		Expect(scheme.Value.Scheme).To(Equal("bearer"))

		get := doc.Paths.Find("/api/employees/").Get
		Expect(get.Security).NotTo(BeNil())

		login := doc.Paths.Find("/api/auth/login").Post
		Expect(login.Security).To(BeNil())
	})

	It("declares the documented status codes", func() {
		post := doc.Paths.Find("/api/employees/").Post
		for _, code := range []int{201, 400, 401, 422} {
			Expect(post.Responses.Status(code)).NotTo(BeNil())
		}

		del := doc.Paths.Find("/api/employees/{id}/").Delete
		Expect(del.Responses.Status(http.StatusNoContent)).NotTo(BeNil())
		Expect(del.Responses.Status(http.StatusNotFound)).NotTo(BeNil())
	})
})
