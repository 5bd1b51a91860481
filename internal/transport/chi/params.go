package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// pathID binds the {id} route parameter.
func pathID(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil || id == "" {
		return "", domain.NewInvalidField("id", "invalid id")
	}
	return id, nil
}

// pageQuery binds the optional offset and limit query parameters.
// Absent parameters come back as zero.
func pageQuery(r *http.Request) (offset, limit int, err error) {
	var off, lim *int
	if err := runtime.BindQueryParameter("form", true, false, "offset", r.URL.Query(), &off); err != nil {
		return 0, 0, domain.NewInvalidField("offset", "offset must be an integer")
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &lim); err != nil {
		return 0, 0, domain.NewInvalidField("limit", "limit must be an integer")
	}
	if off != nil {
		offset = *off
	}
	if lim != nil {
		limit = *lim
	}
	return offset, limit, nil
}

// stringQuery binds an optional string query parameter.
func stringQuery(r *http.Request, name string) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return "", domain.NewInvalidField(name, "invalid "+name)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}
